package common

import (
	"github.com/google/uuid"
)

// NewCorrelationID generates the ID attached to every log line of one tool call
// Format: call_<uuid>
func NewCorrelationID() string {
	return "call_" + uuid.New().String()
}
