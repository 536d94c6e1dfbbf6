// Package store keeps each browser session's latest submission: the name
// and the raw pasted text. Schedules are never stored; they are parsed
// again from the text whenever they are needed.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Submission is what a student entered in the import form.
type Submission struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
}

// Store holds at most one submission per id. Put replaces whatever was
// there. Get returns errors.ErrNotFound for an unknown or expired id.
type Store interface {
	Put(ctx context.Context, sub Submission) error
	Get(ctx context.Context, id string) (Submission, error)
	Delete(ctx context.Context, id string) error
}

// DefaultTTL is how long a submission is kept after it was last written.
const DefaultTTL = 24 * time.Hour

// NewID returns a fresh session id.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id could have come from NewID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
