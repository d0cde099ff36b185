package client

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"
)

const probeTimeout = 3 * time.Second

// Probe answers whether the remote product API is worth talking to. Any
// network error, timeout, or non-success status counts as unreachable;
// callers never see an error. A missing bearer token short-circuits to
// unreachable without touching the network.
type Probe struct {
	baseURL string
	token   string
	client  *http.Client
	group   singleflight.Group
}

func NewProbe(baseURL, token string) *Probe {
	return &Probe{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: probeTimeout},
	}
}

// IsReachable performs a HEAD against the product listing. Concurrent
// callers share one in-flight check instead of stacking requests.
func (p *Probe) IsReachable(ctx context.Context) bool {
	if p.token == "" || p.baseURL == "" {
		return false
	}

	v, _, _ := p.group.Do("reachability", func() (interface{}, error) {
		return p.check(), nil
	})
	reachable, _ := v.(bool)
	return reachable
}

// check runs on its own deadline, detached from any caller context: the
// result is shared across the flight, so one caller's cancellation must not
// report the API unreachable to everyone else.
func (p *Probe) check() bool {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.baseURL+"/products", nil)
	if err != nil {
		return false
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
