package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"patient_backend/internal/feature/auth/domain/entity"
	"patient_backend/internal/feature/auth/usecase"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis instance for testing.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return client, mr
}

// createTestSession creates a session entity for testing.
func createTestSession(token string, patientID uint, expiresIn time.Duration) *entity.Session {
	now := time.Now()
	return &entity.Session{
		Token:     token,
		PatientID: patientID,
		Email:     "ada@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		CreatedAt: now,
		ExpiresAt: now.Add(expiresIn),
	}
}

func TestNewSessionRedis(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.client, "client is nil")
	assert.Equal(t, "session", repo.prefix)
}

func TestSessionRedis_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		session *entity.Session
		wantErr bool
	}{
		{
			name:    "success: create session",
			session: createTestSession("session-001", 1, 24*time.Hour),
			wantErr: false,
		},
		{
			name:    "failure: expired session",
			session: createTestSession("expired-session", 1, -1*time.Hour),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, mr := setupTestRedis(t)
			repo := NewSessionRedis(client, "session")

			err := repo.Create(context.Background(), tt.session)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)

				// Verify session exists in Redis
				data, err := client.Get(context.Background(), repo.sessionKey(tt.session.Token)).Result()
				assert.NoError(t, err)
				assert.NotEmpty(t, data)

				// Verify a TTL was set from ExpiresAt
				ttl := mr.TTL(repo.sessionKey(tt.session.Token))
				assert.Greater(t, ttl, time.Duration(0), "key must carry a TTL")
			}
		})
	}
}

func TestSessionRedis_FindByToken(t *testing.T) {
	t.Parallel()

	t.Run("success: find session", func(t *testing.T) {
		t.Parallel()

		client, _ := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")

		created := createTestSession("find-me", 7, 24*time.Hour)
		require.NoError(t, repo.Create(context.Background(), created))

		found, err := repo.FindByToken(context.Background(), "find-me")

		require.NoError(t, err)
		assert.Equal(t, created.Token, found.Token)
		assert.Equal(t, uint(7), found.PatientID)
		assert.Equal(t, "ada@example.com", found.Email)
		assert.Equal(t, "Ada", found.FirstName)
		assert.Equal(t, "Lovelace", found.LastName)
	})

	t.Run("failure: unknown token", func(t *testing.T) {
		t.Parallel()

		client, _ := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")

		_, err := repo.FindByToken(context.Background(), "missing")

		assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	})

	t.Run("failure: session expired via TTL", func(t *testing.T) {
		t.Parallel()

		client, mr := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")

		created := createTestSession("short-lived", 1, time.Minute)
		require.NoError(t, repo.Create(context.Background(), created))

		// Let the key expire inside miniredis
		mr.FastForward(2 * time.Minute)

		_, err := repo.FindByToken(context.Background(), "short-lived")

		assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	})

	t.Run("failure: corrupt payload", func(t *testing.T) {
		t.Parallel()

		client, _ := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")

		require.NoError(t, client.Set(context.Background(), repo.sessionKey("corrupt"), "not-json", time.Minute).Err())

		_, err := repo.FindByToken(context.Background(), "corrupt")

		assert.Error(t, err)
		assert.NotErrorIs(t, err, usecase.ErrSessionNotFound)
	})
}

func TestSessionRedis_Delete(t *testing.T) {
	t.Parallel()

	t.Run("success: delete session", func(t *testing.T) {
		t.Parallel()

		client, _ := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")

		created := createTestSession("delete-me", 1, 24*time.Hour)
		require.NoError(t, repo.Create(context.Background(), created))

		err := repo.Delete(context.Background(), "delete-me")

		require.NoError(t, err)

		_, err = repo.FindByToken(context.Background(), "delete-me")
		assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	})

	t.Run("success: deleting a missing session is not an error", func(t *testing.T) {
		t.Parallel()

		client, _ := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")

		err := repo.Delete(context.Background(), "never-existed")

		assert.NoError(t, err)
	})
}

// Error-path tests use redismock to simulate Redis infrastructure failures
// that miniredis cannot produce.
func TestSessionRedis_RedisFailures(t *testing.T) {
	t.Parallel()

	t.Run("Set failure surfaces on Create", func(t *testing.T) {
		t.Parallel()

		db, mock := redismock.NewClientMock()
		repo := NewSessionRedis(db, "session")

		session := createTestSession("session-001", 1, 24*time.Hour)
		data, err := json.Marshal(session)
		require.NoError(t, err)

		// The TTL is computed inside Create, so match on key and value only
		mock.CustomMatch(func(expected, actual []interface{}) error {
			return nil
		}).ExpectSet(repo.sessionKey("session-001"), data, 0).
			SetErr(errors.New("connection refused"))

		err = repo.Create(context.Background(), session)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, usecase.ErrSessionNotFound)
	})

	t.Run("Get failure surfaces on FindByToken", func(t *testing.T) {
		t.Parallel()

		db, mock := redismock.NewClientMock()
		repo := NewSessionRedis(db, "session")

		mock.ExpectGet(repo.sessionKey("session-001")).SetErr(errors.New("connection refused"))

		_, err := repo.FindByToken(context.Background(), "session-001")

		assert.Error(t, err)
		assert.NotErrorIs(t, err, usecase.ErrSessionNotFound)
	})

	t.Run("Del failure surfaces on Delete", func(t *testing.T) {
		t.Parallel()

		db, mock := redismock.NewClientMock()
		repo := NewSessionRedis(db, "session")

		mock.ExpectDel(repo.sessionKey("session-001")).SetErr(errors.New("connection refused"))

		err := repo.Delete(context.Background(), "session-001")

		assert.Error(t, err)
	})
}
