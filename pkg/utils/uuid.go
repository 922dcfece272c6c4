package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// GenerateProNumber generates a PRO number with the given prefix, e.g.
// "PRO-7F3A2C1B". PRO numbers are normally keyed in from the carrier's
// paperwork; this is used for walk-in jobs without one.
func GenerateProNumber(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.New().String()[:8])
}
