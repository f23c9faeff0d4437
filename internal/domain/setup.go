package domain

import (
	"time"

	"github.com/google/uuid"
)

// Setup is a persisted RateConfig preset. The dashboard keeps the most
// recently saved setup as the "current" one and offers the rest as a list.
type Setup struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Params    RateConfig `json:"params"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Validate ensures the setup adheres to domain rules
func (s *Setup) Validate() error {
	if s.Name == "" {
		return &InvalidConfigError{Field: "name", Reason: "cannot be empty"}
	}
	return s.Params.Validate()
}
