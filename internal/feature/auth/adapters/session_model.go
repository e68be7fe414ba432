package adapters

import (
	"time"

	"patient_backend/internal/feature/auth/domain/entity"
)

// SessionModel is the GORM model for the sessions table.
// It is only used when Redis is unavailable and sessions fall back to MySQL.
type SessionModel struct {
	Token     string    `gorm:"primaryKey;size:64"`
	PatientID uint      `gorm:"index;not null"`
	Email     string    `gorm:"size:255;not null"`
	FirstName string    `gorm:"size:100"`
	LastName  string    `gorm:"size:100"`
	CreatedAt time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
}

// TableName returns the table name for GORM.
func (SessionModel) TableName() string {
	return "sessions"
}

// ToEntity converts the GORM model to a domain entity.
func (m *SessionModel) ToEntity() *entity.Session {
	return &entity.Session{
		Token:     m.Token,
		PatientID: m.PatientID,
		Email:     m.Email,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		CreatedAt: m.CreatedAt,
		ExpiresAt: m.ExpiresAt,
	}
}

// SessionModelFromEntity converts a domain entity to a GORM model.
func SessionModelFromEntity(s *entity.Session) *SessionModel {
	return &SessionModel{
		Token:     s.Token,
		PatientID: s.PatientID,
		Email:     s.Email,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	}
}
