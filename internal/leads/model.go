package leads

import (
	"time"
)

// Lead represents one captured visitor contact record.
type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// Candidate is a (name, email, phone) triple that has not yet been
// persisted. A candidate only becomes a Lead through the Sink.
type Candidate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Validate checks that all three contact fields are present. Partial
// triples are never persisted.
func (c Candidate) Validate() error {
	if c.Name == "" {
		return ErrMissingName
	}
	if c.Email == "" {
		return ErrMissingEmail
	}
	if c.Phone == "" {
		return ErrMissingPhone
	}
	return nil
}

// Extraction sources, used for logging and metrics labels.
const (
	SourcePattern = "pattern"
	SourceModel   = "model"
)
