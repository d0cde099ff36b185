// Package client talks to the remote product API: a bearer-authenticated
// JSON endpoint whose catalog may arrive as a bare array or wrapped in a
// data/products envelope, with ids that are sometimes numbers and sometimes
// strings.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Aul-rhmn/merchant-order/internal/types"
)

const fetchTimeout = 5 * time.Second

type RemoteCatalog struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewRemoteCatalog(baseURL, token string) *RemoteCatalog {
	return &RemoteCatalog{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: fetchTimeout},
	}
}

// remoteProduct is the record shape the remote catalog returns.
type remoteProduct struct {
	ID          flexID `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Stock       int    `json:"stock"`
}

// flexID accepts a JSON number or string and normalizes to string.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("product id %s is neither string nor number", data)
	}
	*f = flexID(n.String())
	return nil
}

func (r remoteProduct) validate() error {
	if r.ID == "" {
		return fmt.Errorf("missing id")
	}
	if r.Name == "" {
		return fmt.Errorf("product %s: missing name", r.ID)
	}
	if r.Description == "" {
		return fmt.Errorf("product %s: missing description", r.ID)
	}
	if r.Price < 0 {
		return fmt.Errorf("product %s: negative price", r.ID)
	}
	if r.Stock < 0 {
		return fmt.Errorf("product %s: negative stock", r.ID)
	}
	return nil
}

// ListProducts fetches and normalizes the remote catalog. One malformed
// record rejects the whole batch: a partially trusted catalog is worse than
// the fallback.
func (c *RemoteCatalog) ListProducts(ctx context.Context) ([]types.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch remote catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("remote catalog returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read remote catalog: %w", err)
	}

	records, err := decodeCatalog(body)
	if err != nil {
		return nil, err
	}

	products := make([]types.Product, 0, len(records))
	for _, record := range records {
		if err := record.validate(); err != nil {
			return nil, fmt.Errorf("remote catalog record rejected: %w", err)
		}
		products = append(products, types.Product{
			ID:          string(record.ID),
			Name:        record.Name,
			Description: record.Description,
			Price:       record.Price,
			Stock:       record.Stock,
		})
	}
	return products, nil
}

func decodeCatalog(body []byte) ([]remoteProduct, error) {
	var records []remoteProduct
	if err := json.Unmarshal(body, &records); err == nil {
		return records, nil
	}

	var envelope struct {
		Data     []remoteProduct `json:"data"`
		Products []remoteProduct `json:"products"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode remote catalog: %w", err)
	}
	if len(envelope.Data) > 0 {
		return envelope.Data, nil
	}
	return envelope.Products, nil
}
