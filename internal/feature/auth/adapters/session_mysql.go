// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"patient_backend/internal/feature/auth/domain/entity"
	"patient_backend/internal/feature/auth/usecase"

	"gorm.io/gorm"
)

// sessionMySQL is a MySQL implementation of the SessionRepository interface.
type sessionMySQL struct {
	db *gorm.DB
}

// Compile-time check to ensure sessionMySQL implements SessionRepository.
var _ usecase.SessionRepository = (*sessionMySQL)(nil)

// NewSessionMySQL creates a new instance of sessionMySQL.
func NewSessionMySQL(db *gorm.DB) *sessionMySQL {
	return &sessionMySQL{db: db}
}

// Create persists a new session to the database.
func (r *sessionMySQL) Create(ctx context.Context, session *entity.Session) error {
	model := SessionModelFromEntity(session)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByToken retrieves a session by its token.
// Rows that have already expired are treated as not found.
func (r *sessionMySQL) FindByToken(ctx context.Context, token string) (*entity.Session, error) {
	var model SessionModel
	if err := r.db.WithContext(ctx).
		Where("token = ? AND expires_at > ?", token, time.Now()).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

// Delete removes a session by its token. Deleting a session that is already
// gone succeeds; only a database failure is reported.
func (r *sessionMySQL) Delete(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&SessionModel{}).Error
}
