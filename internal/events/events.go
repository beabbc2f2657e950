// Package events defines the messages published on the event bus. Every
// event is a plain JSON-serializable struct; Kind doubles as the topic
// routing key.
package events

import "time"

// Event kinds.
const (
	KindOrderCreated        = "order.created"
	KindOrderStatusChanged  = "order.status_changed"
	KindOrderClosed         = "order.closed"
	KindEscalationTriggered = "escalation.triggered"
	KindImportCompleted     = "import.completed"
)

// OrderCreated is published after an order is committed for the first time.
type OrderCreated struct {
	OrderID    string    `json:"order_id"`
	Number     string    `json:"number"`
	CustomerID string    `json:"customer_id"`
	Priority   string    `json:"priority"`
	WorkflowID string    `json:"workflow_id,omitempty"`
	Milestones int       `json:"milestones"`
	CreatedAt  time.Time `json:"created_at"`
}

func (OrderCreated) Kind() string { return KindOrderCreated }

// OrderStatusChanged is published on every status transition, requested or
// derived.
type OrderStatusChanged struct {
	OrderID    string    `json:"order_id"`
	Number     string    `json:"number"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Actor      string    `json:"actor"`
	Reason     string    `json:"reason,omitempty"`
	Completion int       `json:"completion"`
	ChangedAt  time.Time `json:"changed_at"`
}

func (OrderStatusChanged) Kind() string { return KindOrderStatusChanged }

// OrderClosed is published after administrative closure.
type OrderClosed struct {
	OrderID  string    `json:"order_id"`
	Number   string    `json:"number"`
	ClosedBy string    `json:"closed_by"`
	ClosedAt time.Time `json:"closed_at"`
}

func (OrderClosed) Kind() string { return KindOrderClosed }

// EscalationTriggered is published for every rule that fires during an
// escalation scan.
type EscalationTriggered struct {
	OrderID     string    `json:"order_id"`
	Number      string    `json:"number"`
	RuleName    string    `json:"rule_name"`
	Condition   string    `json:"condition"`
	Message     string    `json:"message"`
	TriggeredAt time.Time `json:"triggered_at"`
}

func (EscalationTriggered) Kind() string { return KindEscalationTriggered }

// ImportCompleted is published once per bulk import batch.
type ImportCompleted struct {
	TotalRows   int       `json:"total_rows"`
	ValidRows   int       `json:"valid_rows"`
	WarningRows int       `json:"warning_rows"`
	InvalidRows int       `json:"invalid_rows"`
	Created     int       `json:"created"`
	CompletedAt time.Time `json:"completed_at"`
}

func (ImportCompleted) Kind() string { return KindImportCompleted }
