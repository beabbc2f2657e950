// Package synchttp pushes order snapshots to the external planning system
// over HTTP. The gateway is fire-per-order: one POST per order, outcome
// reported to the caller who records it on the aggregate's sync status.
package synchttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"transtrack/internal/core/domain/model/order"
)

const defaultTimeout = 10 * time.Second

// Gateway implements ports.SyncGateway against a JSON-over-HTTP endpoint.
type Gateway struct {
	client   *http.Client
	endpoint string
	apiKey   string
}

// NewGateway creates a gateway for the given endpoint. The API key is sent
// as a bearer token when non-empty.
func NewGateway(endpoint, apiKey string) *Gateway {
	return &Gateway{
		client:   &http.Client{Timeout: defaultTimeout},
		endpoint: endpoint,
		apiKey:   apiKey,
	}
}

// milestoneSnapshot is one checkpoint in the wire payload.
type milestoneSnapshot struct {
	Name             string    `json:"name"`
	Kind             string    `json:"kind"`
	Sequence         int       `json:"sequence"`
	Status           string    `json:"status"`
	EstimatedArrival time.Time `json:"estimated_arrival"`
}

// orderSnapshot is the wire payload sent to the planning system.
type orderSnapshot struct {
	OrderID        string              `json:"order_id"`
	Number         string              `json:"number"`
	Status         string              `json:"status"`
	Priority       string              `json:"priority"`
	CustomerID     string              `json:"customer_id"`
	CustomerName   string              `json:"customer_name"`
	CargoType      string              `json:"cargo_type"`
	WeightKg       float64             `json:"weight_kg"`
	ScheduledStart time.Time           `json:"scheduled_start"`
	Completion     int                 `json:"completion"`
	ExternalRef    string              `json:"external_ref,omitempty"`
	Milestones     []milestoneSnapshot `json:"milestones"`
}

// Send transmits one order. A non-2xx response is an error; the caller
// decides whether to retry.
func (g *Gateway) Send(ctx context.Context, aggregate *order.Order) error {
	milestones := make([]milestoneSnapshot, 0, len(aggregate.Milestones()))
	for _, m := range aggregate.Milestones() {
		milestones = append(milestones, milestoneSnapshot{
			Name:             m.Name(),
			Kind:             string(m.Kind()),
			Sequence:         m.Sequence(),
			Status:           m.Status().String(),
			EstimatedArrival: m.EstimatedArrival(),
		})
	}

	payload, err := json.Marshal(orderSnapshot{
		OrderID:        aggregate.ID().String(),
		Number:         aggregate.Number(),
		Status:         aggregate.Status().String(),
		Priority:       aggregate.Priority().String(),
		CustomerID:     aggregate.CustomerID(),
		CustomerName:   aggregate.CustomerName(),
		CargoType:      aggregate.Cargo().Type.String(),
		WeightKg:       aggregate.Cargo().WeightKg,
		ScheduledStart: aggregate.ScheduledStart(),
		Completion:     aggregate.CompletionPercent(),
		ExternalRef:    aggregate.ExternalRef(),
		Milestones:     milestones,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("planning system rejected order %s: %s: %s",
			aggregate.Number(), resp.Status, bytes.TrimSpace(body))
	}

	return nil
}
