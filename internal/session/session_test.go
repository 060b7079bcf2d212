package session

import (
	"context"
	"errors"
	"testing"

	"github.com/abhisek/edusuite/internal/api"
)

// fakeAuth is a canned AuthAPI recording calls.
type fakeAuth struct {
	token    string
	tokenErr error
	user     *api.User
	meErr    error
	meCalls  int
}

func (f *fakeAuth) ObtainToken(_ context.Context, username, password string) (string, error) {
	if f.tokenErr != nil {
		return "", f.tokenErr
	}
	return f.token, nil
}

func (f *fakeAuth) Me(_ context.Context) (*api.User, error) {
	f.meCalls++
	if f.meErr != nil {
		return nil, f.meErr
	}
	return f.user, nil
}

// memCreds is an in-memory credential repo.
type memCreds struct {
	token    string
	saveErr  error
	clearErr error
}

func (m *memCreds) Save(token string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.token = token
	return nil
}

func (m *memCreds) Load() string { return m.token }

func (m *memCreds) Clear() error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.token = ""
	return nil
}

func TestSession_LoginThenLogoutScenario(t *testing.T) {
	auth := &fakeAuth{token: "tok-abc", user: &api.User{ID: 1, Username: "admin"}}
	creds := &memCreds{}
	s := New(auth, creds)

	if err := s.Login(context.Background(), "admin", "adminpass"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !s.Authenticated() {
		t.Fatal("expected authenticated session")
	}
	if s.Identity().Username != "admin" {
		t.Fatalf("expected identity admin, got %q", s.Identity().Username)
	}
	if creds.token != "tok-abc" {
		t.Fatalf("credential not persisted, got %q", creds.token)
	}

	if err := s.Logout(context.Background()); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if s.Credential() != "" || s.Identity() != nil {
		t.Fatal("expected cleared session after logout")
	}
	if creds.token != "" {
		t.Fatal("expected cleared storage after logout")
	}

	// Second logout is a no-op with the same result.
	if err := s.Logout(context.Background()); err != nil {
		t.Fatalf("repeated logout failed: %v", err)
	}
	if s.Credential() != "" || s.Identity() != nil {
		t.Fatal("expected session to stay cleared")
	}
}

func TestSession_RejectedCredentialsLeaveNoPartialState(t *testing.T) {
	auth := &fakeAuth{tokenErr: &api.ErrValidation{Detail: "invalid credentials"}}
	creds := &memCreds{}
	s := New(auth, creds)

	err := s.Login(context.Background(), "admin", "wrong")
	if err == nil {
		t.Fatal("expected login error")
	}
	var ve *api.ErrValidation
	if !errors.As(err, &ve) {
		t.Fatalf("expected wrapped ErrValidation, got %T", err)
	}
	if s.Credential() != "" || s.Identity() != nil {
		t.Fatal("expected unauthenticated session after rejection")
	}
	if auth.meCalls != 0 {
		t.Fatal("identity check must not run after rejected login")
	}
	if creds.token != "" {
		t.Fatal("no credential must be stored after rejected login")
	}
}

func TestSession_LoadRecoversStoredCredential(t *testing.T) {
	auth := &fakeAuth{user: &api.User{ID: 2, Username: "maya"}}
	creds := &memCreds{token: "stored-tok"}
	s := New(auth, creds)

	s.Load(context.Background())
	if !s.Authenticated() {
		t.Fatal("expected authenticated session from stored credential")
	}
	if s.Credential() != "stored-tok" {
		t.Fatalf("expected stored credential, got %q", s.Credential())
	}
	if auth.meCalls != 1 {
		t.Fatalf("expected exactly one identity check, got %d", auth.meCalls)
	}
}

func TestSession_LoadWithExpiredCredentialDemotes(t *testing.T) {
	auth := &fakeAuth{meErr: &api.ErrUnauthorized{Detail: "invalid token"}}
	creds := &memCreds{token: "expired"}
	s := New(auth, creds)

	s.Load(context.Background())
	if s.Authenticated() || s.Credential() != "" {
		t.Fatal("expected demotion to unauthenticated")
	}
	if auth.meCalls != 1 {
		t.Fatalf("demotion must not retry, got %d checks", auth.meCalls)
	}
	// Stored credential is Logout's to clear, not the failed check's.
	if creds.token != "expired" {
		t.Fatal("stored credential should survive a failed check")
	}
}

func TestSession_LoadWithEmptyStorageSkipsCheck(t *testing.T) {
	auth := &fakeAuth{}
	s := New(auth, &memCreds{})

	s.Load(context.Background())
	if s.Authenticated() {
		t.Fatal("expected unauthenticated session")
	}
	if auth.meCalls != 0 {
		t.Fatal("no identity check without a credential")
	}
}
