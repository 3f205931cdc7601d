package domain

import (
	"time"

	"github.com/google/uuid"
)

// Thought is a user-authored text post. The authoring username is a
// denormalized copy, not a reference. Reactions are embedded in the
// thought row as a JSONB array, so Reaction carries JSON tags.
type Thought struct {
	ID          uuid.UUID
	ThoughtText string
	Username    string
	Reactions   []Reaction
	CreatedAt   time.Time
}

// Reaction is a short text response embedded within a Thought.
type Reaction struct {
	ID           uuid.UUID `json:"id"`
	ReactionBody string    `json:"reactionBody"`
	Username     string    `json:"username"`
	CreatedAt    time.Time `json:"createdAt"`
}
