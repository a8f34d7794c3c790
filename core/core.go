package core

import (
	"time"

	"github.com/rjcastillo/amity/pkg/crypto"
)

// SessionConfig controls credential lifetimes. Access tokens are
// short-lived; refresh tokens carry the long tail.
type SessionConfig struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		AccessTTL:  time.Hour,
		RefreshTTL: 7 * 24 * time.Hour,
	}
}

type Config struct {
	// AccessSecret and RefreshSecret sign the two token kinds. They must
	// be distinct so a refresh token can never verify as an access token.
	AccessSecret  string
	RefreshSecret string

	Database StorageAdapter

	HTTP HTTPAdapter

	// Optional config
	SessionConfig  *SessionConfig
	PasswordHasher crypto.PasswordHandler
	UserCache      Cache
	DisableCache   bool
	BasePath       string
}

// Amity bundles the wired services handed to HTTP adapters.
type Amity struct {
	Auth     *AuthService
	Contacts *ContactEngine
	BasePath string
}
