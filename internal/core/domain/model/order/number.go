package order

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewOrderNumber generates a human-readable order number of the form
// ORD-YYYYMMDD-XXXXXX, where the suffix is a random hex token. Numbers are
// unique in practice but uniqueness is ultimately enforced by storage.
func NewOrderNumber(at time.Time) string {
	token := uuid.New()
	return fmt.Sprintf("ORD-%s-%s", at.Format("20060102"),
		hex.EncodeToString(token[:3]))
}
