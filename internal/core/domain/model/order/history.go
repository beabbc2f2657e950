package order

import (
	"time"

	"transtrack/internal/pkg/errs"
)

// StatusChange is one entry in an order's status history. Every transition,
// whether requested by an actor or derived from milestone states, appends
// one entry.
type StatusChange struct {
	From   Status
	To     Status
	At     time.Time
	Actor  string
	Reason string
}

// ClosureRecord captures the administrative closure of a completed order.
type ClosureRecord struct {
	Observations     string
	Incidents        []string
	DeviationReasons []string
	ClosedBy         string
	ClosedAt         time.Time
}

// SyncStatus tracks delivery of the order to the external planning system.
// Failures are recorded here instead of failing the originating operation.
type SyncStatus int

const (
	SyncStatusNotSent SyncStatus = iota
	SyncStatusPending
	SyncStatusSending
	SyncStatusSent
	SyncStatusFailed
	SyncStatusRetry
)

func getSyncStatusStrings() map[SyncStatus]string {
	return map[SyncStatus]string{
		SyncStatusNotSent: "not_sent",
		SyncStatusPending: "pending",
		SyncStatusSending: "sending",
		SyncStatusSent:    "sent",
		SyncStatusFailed:  "error",
		SyncStatusRetry:   "retry",
	}
}

// Validate checks that the SyncStatus holds one of the defined values.
func (s SyncStatus) Validate() error {
	if _, ok := getSyncStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("sync status")
	}
	return nil
}

// String returns the wire name of the sync status. Safe on any value.
func (s SyncStatus) String() string {
	if str, ok := getSyncStatusStrings()[s]; ok {
		return str
	}
	return "not_sent"
}

// SyncStatusFromString maps a wire name back to a SyncStatus.
func SyncStatusFromString(raw string) (SyncStatus, error) {
	for status, str := range getSyncStatusStrings() {
		if str == raw {
			return status, nil
		}
	}
	return SyncStatusNotSent, errs.NewValueIsInvalidError("sync status")
}
