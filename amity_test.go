package amity

import (
	"errors"
	"testing"

	"github.com/rjcastillo/amity/core"
	"github.com/rjcastillo/amity/pkg/crypto"
)

const (
	testAccessSecret  = "access-secret-0123456789abcdef01"
	testRefreshSecret = "refresh-secret-0123456789abcdef0"
)

// stubHTTPAdapter records the registration call without binding a
// framework.
type stubHTTPAdapter struct {
	registered *Amity
	err        error
}

func (s *stubHTTPAdapter) RegisterRoutes(a *Amity) error {
	s.registered = a
	return s.err
}

var _ HTTPAdapter = (*stubHTTPAdapter)(nil)

func testHasher() *crypto.Argon2 {
	return &crypto.Argon2{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
}

func TestNew_ConfigValidation(t *testing.T) {
	storage := core.NewFakeStorage()
	http := &stubHTTPAdapter{}

	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "missing access secret",
			config:  Config{RefreshSecret: testRefreshSecret, Database: storage, HTTP: http},
			wantErr: ErrSecretRequired,
		},
		{
			name:    "missing refresh secret",
			config:  Config{AccessSecret: testAccessSecret, Database: storage, HTTP: http},
			wantErr: ErrSecretRequired,
		},
		{
			name:    "short secret",
			config:  Config{AccessSecret: "short", RefreshSecret: testRefreshSecret, Database: storage, HTTP: http},
			wantErr: ErrSecretTooShort,
		},
		{
			name:    "identical secrets",
			config:  Config{AccessSecret: testAccessSecret, RefreshSecret: testAccessSecret, Database: storage, HTTP: http},
			wantErr: ErrSecretsNotDistinct,
		},
		{
			name:    "missing storage",
			config:  Config{AccessSecret: testAccessSecret, RefreshSecret: testRefreshSecret, HTTP: http},
			wantErr: ErrStorageRequired,
		},
		{
			name:    "missing http adapter",
			config:  Config{AccessSecret: testAccessSecret, RefreshSecret: testRefreshSecret, Database: storage},
			wantErr: ErrHTTPAdapterRequired,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := New(test.config); err != test.wantErr {
				t.Errorf("New() error = %v, want %v", err, test.wantErr)
			}
		})
	}
}

func TestNew_WiresAndRegistersRoutes(t *testing.T) {
	http := &stubHTTPAdapter{}

	a, err := New(Config{
		AccessSecret:  testAccessSecret,
		RefreshSecret: testRefreshSecret,
		Database:      core.NewFakeStorage(),
		HTTP:          http,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if a.Auth == nil || a.Contacts == nil {
		t.Fatal("New() left a service unwired")
	}
	if a.BasePath != "/api" {
		t.Errorf("BasePath = %q, want %q", a.BasePath, "/api")
	}
	if http.registered != a {
		t.Error("HTTP adapter was not handed the wired instance")
	}
}

func TestNew_RegistrationFailureAborts(t *testing.T) {
	boom := errors.New("route conflict")

	_, err := New(Config{
		AccessSecret:  testAccessSecret,
		RefreshSecret: testRefreshSecret,
		Database:      core.NewFakeStorage(),
		HTTP:          &stubHTTPAdapter{err: boom},
	})
	if !errors.Is(err, boom) {
		t.Errorf("New() error = %v, want %v", err, boom)
	}
}

func TestNew_CustomBasePath(t *testing.T) {
	a, err := New(Config{
		AccessSecret:  testAccessSecret,
		RefreshSecret: testRefreshSecret,
		Database:      core.NewFakeStorage(),
		HTTP:          &stubHTTPAdapter{},
		BasePath:      "/v2",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if a.BasePath != "/v2" {
		t.Errorf("BasePath = %q, want %q", a.BasePath, "/v2")
	}
}

// Full lifecycle through the facade: register, log in, request, accept,
// remove, and start over, with the timestamp invariants observable at
// each step.
func TestAmity_ContactLifecycle(t *testing.T) {
	a, err := New(Config{
		AccessSecret:   testAccessSecret,
		RefreshSecret:  testRefreshSecret,
		Database:       core.NewFakeStorage(),
		HTTP:           &stubHTTPAdapter{},
		PasswordHasher: testHasher(),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	alice, err := a.Auth.CreateAccount(core.CreateAccountInput{
		Name: "Alice", Username: "alice", Email: "alice@example.com", Password: "pw",
	})
	if err != nil {
		t.Fatalf("CreateAccount(alice) error = %v", err)
	}
	bob, err := a.Auth.CreateAccount(core.CreateAccountInput{
		Name: "Bob", Username: "bob", Email: "bob@example.com", Password: "pw",
	})
	if err != nil {
		t.Fatalf("CreateAccount(bob) error = %v", err)
	}

	login, err := a.Auth.Login(core.LoginInput{Username: "alice", Email: "alice@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	authCtx, _, err := a.Auth.Authenticate(login.Credential.AccessToken)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if authCtx.UserID != alice.ID {
		t.Fatalf("authenticated as %q, want %q", authCtx.UserID, alice.ID)
	}

	contact, err := a.Contacts.RequestContact(authCtx.UserID, bob.ID)
	if err != nil {
		t.Fatalf("RequestContact() error = %v", err)
	}
	if contact.Status != StatusRequested || contact.AcceptedAt != nil {
		t.Fatalf("new contact: status %q, acceptedAt %v", contact.Status, contact.AcceptedAt)
	}

	accepted, err := a.Contacts.Accept(bob.ID, contact.ID)
	if err != nil {
		t.Fatalf("Accept() error = %v", err)
	}
	if accepted.Status != StatusAccepted || accepted.AcceptedAt == nil {
		t.Fatalf("accepted contact: status %q, acceptedAt %v", accepted.Status, accepted.AcceptedAt)
	}

	removed, err := a.Contacts.Remove(alice.ID, contact.ID)
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if removed.Status != StatusRemoved || removed.AcceptedAt != nil {
		t.Fatalf("removed contact: status %q, acceptedAt %v", removed.Status, removed.AcceptedAt)
	}

	renewed, err := a.Contacts.RequestContact(bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("RequestContact() after removal error = %v", err)
	}
	if renewed.ID == contact.ID {
		t.Error("re-request reused the removed contact")
	}
}

// Credentials survive rotation: the refreshed access token authenticates
// exactly like the original.
func TestAmity_CredentialRotation(t *testing.T) {
	a, err := New(Config{
		AccessSecret:   testAccessSecret,
		RefreshSecret:  testRefreshSecret,
		Database:       core.NewFakeStorage(),
		HTTP:           &stubHTTPAdapter{},
		PasswordHasher: testHasher(),
		DisableCache:   true,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	user, err := a.Auth.CreateAccount(core.CreateAccountInput{
		Name: "Alice", Username: "alice", Email: "alice@example.com", Password: "pw",
	})
	if err != nil {
		t.Fatalf("CreateAccount() error = %v", err)
	}

	login, err := a.Auth.Login(core.LoginInput{Username: "alice", Email: "alice@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	rotated, err := a.Auth.Refresh(login.Credential.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	authCtx, _, err := a.Auth.Authenticate(rotated.AccessToken)
	if err != nil {
		t.Fatalf("Authenticate(rotated) error = %v", err)
	}
	if authCtx.UserID != user.ID {
		t.Errorf("rotated token authenticated as %q, want %q", authCtx.UserID, user.ID)
	}

	// The refresh token itself never authenticates a request.
	if _, _, err := a.Auth.Authenticate(rotated.RefreshToken); err != ErrInvalidToken {
		t.Errorf("Authenticate(refresh token) error = %v, want %v", err, ErrInvalidToken)
	}
}
