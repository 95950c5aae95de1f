package util

import (
	"github.com/google/uuid"
)

// GenerateUUID returns a random entry id for journal and intent records.
func GenerateUUID() string {
	return uuid.NewString()
}
