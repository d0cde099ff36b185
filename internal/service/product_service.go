package service

import (
	"context"
	"log"

	"github.com/Aul-rhmn/merchant-order/internal/types"
)

const (
	sourceRemote   = "Real API"
	sourceFallback = "Mock Data"
)

type CatalogReader interface {
	Snapshot() []types.Product
}

type RemoteLister interface {
	ListProducts(ctx context.Context) ([]types.Product, error)
}

type ReachabilityProbe interface {
	IsReachable(ctx context.Context) bool
}

// ProductService decides, per call, which catalog is authoritative: the
// remote API when the probe says it is reachable and the fetch yields a
// usable batch, the local catalog store otherwise. The fallback is silent
// toward the caller; Status exposes the provenance separately.
type ProductService struct {
	catalog CatalogReader
	remote  RemoteLister
	probe   ReachabilityProbe
}

func NewProductService(catalog CatalogReader, remote RemoteLister, probe ReachabilityProbe) *ProductService {
	return &ProductService{
		catalog: catalog,
		remote:  remote,
		probe:   probe,
	}
}

// ListProducts never fails: every remote problem falls back to the local
// catalog. Exactly one source is served per call, never a merge.
func (s *ProductService) ListProducts(ctx context.Context) []types.Product {
	if !s.probe.IsReachable(ctx) {
		return s.catalog.Snapshot()
	}

	products, err := s.remote.ListProducts(ctx)
	if err != nil {
		log.Printf("Remote catalog fetch failed, serving fallback: %v", err)
		return s.catalog.Snapshot()
	}
	if len(products) == 0 {
		log.Printf("Remote catalog empty, serving fallback")
		return s.catalog.Snapshot()
	}
	return products
}

type SourceStatus struct {
	Connected bool   `json:"connected"`
	Source    string `json:"source"`
}

// Status reports where product data is currently coming from.
func (s *ProductService) Status(ctx context.Context) SourceStatus {
	if s.probe.IsReachable(ctx) {
		return SourceStatus{Connected: true, Source: sourceRemote}
	}
	return SourceStatus{Connected: false, Source: sourceFallback}
}
