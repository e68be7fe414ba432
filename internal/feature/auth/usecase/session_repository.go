package usecase

import (
	"context"

	"patient_backend/internal/feature/auth/domain/entity"
)

// SessionRepository abstracts the persistence layer for session entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SessionRepository interface {
	// Create persists a new session to the storage.
	Create(ctx context.Context, session *entity.Session) error

	// FindByToken retrieves a session by its opaque token.
	FindByToken(ctx context.Context, token string) (*entity.Session, error)

	// Delete removes a session from storage. Deleting a session that no
	// longer exists is not an error; only an unconfirmed delete is.
	Delete(ctx context.Context, token string) error
}
