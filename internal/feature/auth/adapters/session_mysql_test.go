package adapters

import (
	"context"
	"testing"
	"time"

	"patient_backend/internal/feature/auth/domain/entity"
	"patient_backend/internal/feature/auth/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupSessionTestDB prepares an in-memory SQLite database for session testing.
func setupSessionTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	// Create sessions table
	err = db.AutoMigrate(&SessionModel{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

// seedSession creates a test session in the database for testing.
func seedSession(t *testing.T, db *gorm.DB, token string, patientID uint, expiresAt time.Time) *entity.Session {
	t.Helper()

	now := time.Now()
	session := &SessionModel{
		Token:     token,
		PatientID: patientID,
		Email:     "ada@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}
	err := db.Create(session).Error
	require.NoError(t, err, "failed to seed session")

	return session.ToEntity()
}

func TestNewSessionMySQL(t *testing.T) {
	db := setupSessionTestDB(t)

	repo := NewSessionMySQL(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestSessionMySQL_Create(t *testing.T) {
	db := setupSessionTestDB(t)
	repo := NewSessionMySQL(db)

	now := time.Now()
	session := &entity.Session{
		Token:     "session-token-001",
		PatientID: 1,
		Email:     "ada@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		CreatedAt: now,
		ExpiresAt: now.Add(24 * time.Hour),
	}

	err := repo.Create(context.Background(), session)

	assert.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&SessionModel{}).Where("token = ?", session.Token).Count(&count).Error)
	assert.Equal(t, int64(1), count, "session row was not written")
}

func TestSessionMySQL_FindByToken(t *testing.T) {
	t.Run("active session", func(t *testing.T) {
		db := setupSessionTestDB(t)
		repo := NewSessionMySQL(db)

		seeded := seedSession(t, db, "active-token", 1, time.Now().Add(time.Hour))

		found, err := repo.FindByToken(context.Background(), "active-token")

		require.NoError(t, err)
		assert.Equal(t, seeded.Token, found.Token)
		assert.Equal(t, seeded.PatientID, found.PatientID)
		assert.Equal(t, "ada@example.com", found.Email)
		assert.Equal(t, "Ada", found.FirstName)
		assert.Equal(t, "Lovelace", found.LastName)
	})

	t.Run("unknown token", func(t *testing.T) {
		db := setupSessionTestDB(t)
		repo := NewSessionMySQL(db)

		_, err := repo.FindByToken(context.Background(), "missing-token")

		assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	})

	t.Run("expired session is not found", func(t *testing.T) {
		db := setupSessionTestDB(t)
		repo := NewSessionMySQL(db)

		seedSession(t, db, "expired-token", 1, time.Now().Add(-time.Hour))

		_, err := repo.FindByToken(context.Background(), "expired-token")

		assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	})
}

func TestSessionMySQL_Delete(t *testing.T) {
	t.Run("existing session", func(t *testing.T) {
		db := setupSessionTestDB(t)
		repo := NewSessionMySQL(db)

		seedSession(t, db, "delete-me", 1, time.Now().Add(time.Hour))

		err := repo.Delete(context.Background(), "delete-me")

		require.NoError(t, err)

		_, err = repo.FindByToken(context.Background(), "delete-me")
		assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	})

	t.Run("deleting a missing session is not an error", func(t *testing.T) {
		db := setupSessionTestDB(t)
		repo := NewSessionMySQL(db)

		err := repo.Delete(context.Background(), "never-existed")

		assert.NoError(t, err)
	})
}
