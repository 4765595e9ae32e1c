package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/navdurga/steeldesk/internal/domain"
)

// Keys held in the credentials table. Nothing else is persisted locally;
// the backend owns all business data.
const (
	keyAuthToken   = "auth_token"
	keyCurrentUser = "current_user"
)

// CredentialsRepo persists the current session to the local SQLite
// database so a restart resumes without re-authenticating.
type CredentialsRepo struct {
	db *sql.DB
}

// NewCredentialsRepo creates a CredentialsRepo over an open database.
func NewCredentialsRepo(db *sql.DB) *CredentialsRepo {
	return &CredentialsRepo{db: db}
}

// Save stores the session, replacing any previous one.
func (r *CredentialsRepo) Save(ctx context.Context, s domain.Session) error {
	if err := r.set(ctx, keyAuthToken, s.Token); err != nil {
		return err
	}
	return r.set(ctx, keyCurrentUser, s.Username)
}

// Load returns the persisted session, or nil when none is stored.
func (r *CredentialsRepo) Load(ctx context.Context) (*domain.Session, error) {
	token, err := r.get(ctx, keyAuthToken)
	if err != nil {
		return nil, err
	}
	username, err := r.get(ctx, keyCurrentUser)
	if err != nil {
		return nil, err
	}
	if token == "" || username == "" {
		return nil, nil
	}
	return &domain.Session{Username: username, Token: token}, nil
}

// Clear removes any persisted session.
func (r *CredentialsRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM credentials`); err != nil {
		return fmt.Errorf("clearing credentials: %w", err)
	}
	return nil
}

func (r *CredentialsRepo) set(ctx context.Context, key, value string) error {
	query := `INSERT OR REPLACE INTO credentials (key, value) VALUES (?, ?)`
	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("storing %s: %w", key, err)
	}
	return nil
}

func (r *CredentialsRepo) get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", key, err)
	}
	return value, nil
}
