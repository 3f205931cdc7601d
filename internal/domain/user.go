package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an application user. The stored credential hash never
// appears here; it is read only by the auth queries.
type User struct {
	ID        uuid.UUID
	Username  string
	Email     string
	CreatedAt time.Time
}
