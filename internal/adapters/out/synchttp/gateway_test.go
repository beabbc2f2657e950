package synchttp_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"transtrack/internal/adapters/out/synchttp"
	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateway_Send_PostsOrderSnapshot(t *testing.T) {
	var (
		gotAuth    string
		gotPayload map[string]any
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	gateway := synchttp.NewGateway(server.URL, "secret-token")
	aggregate := routeOrder(t)

	err := gateway.Send(t.Context(), aggregate)
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, aggregate.Number(), gotPayload["number"])
	assert.Equal(t, "draft", gotPayload["status"])
	assert.Equal(t, "refrigerated", gotPayload["cargo_type"])
	milestones, ok := gotPayload["milestones"].([]any)
	require.True(t, ok)
	assert.Len(t, milestones, 2)
}

func TestGateway_Send_NonSuccessStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "duplicate order number", http.StatusConflict)
	}))
	defer server.Close()

	gateway := synchttp.NewGateway(server.URL, "")
	aggregate := routeOrder(t)

	err := gateway.Send(t.Context(), aggregate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), aggregate.Number())
	assert.Contains(t, err.Error(), "duplicate order number")
}

func TestGateway_Send_ConnectionFailureIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	gateway := synchttp.NewGateway(server.URL, "")

	err := gateway.Send(t.Context(), routeOrder(t))
	require.Error(t, err)
}

func routeOrder(t *testing.T) *order.Order {
	t.Helper()
	start := time.Now().Add(-2 * time.Hour)

	origin, err := order.NewMilestone(kernel.NewUUID(), "Murcia Hub", "Av. del Puerto 12",
		nil, start, start.Add(time.Hour))
	require.NoError(t, err)
	destination, err := order.NewMilestone(kernel.NewUUID(), "Barcelona DC", "Ronda Litoral 88",
		nil, start.Add(6*time.Hour), time.Time{})
	require.NoError(t, err)

	cargo := order.Cargo{
		Description: "citrus pallets",
		Type:        order.CargoTypeRefrigerated,
		WeightKg:    850,
		Quantity:    12,
	}

	aggregate, err := order.NewOrder(kernel.NewUUID(), order.NewOrderNumber(start),
		"CUST-7", "Frutas Levante SL", cargo, order.PriorityHigh,
		start, start.Add(9*time.Hour), []*order.Milestone{origin, destination}, "dispatcher")
	require.NoError(t, err)
	return aggregate
}
