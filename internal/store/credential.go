package store

import (
	"database/sql"
	"fmt"
)

// CredentialRepo persists the API bearer credential across runs.
// A missing or unreadable store always reads back as an empty
// credential; startup never fails on it.
type CredentialRepo interface {
	// Save stores the credential, replacing any previous one.
	Save(token string) error

	// Load returns the stored credential, or "" when none is stored or
	// the store is unreadable.
	Load() string

	// Clear removes the stored credential. No-op when nothing is stored.
	Clear() error
}

type credentialRepo struct {
	db *sql.DB
}

func (r *credentialRepo) Save(token string) error {
	_, err := r.db.Exec(
		`INSERT INTO credential (id, token, saved_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (id) DO UPDATE SET token = excluded.token, saved_at = excluded.saved_at`,
		token,
	)
	if err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

func (r *credentialRepo) Load() string {
	var token string
	if err := r.db.QueryRow(`SELECT token FROM credential WHERE id = 1`).Scan(&token); err != nil {
		return ""
	}
	return token
}

func (r *credentialRepo) Clear() error {
	if _, err := r.db.Exec(`DELETE FROM credential WHERE id = 1`); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}
