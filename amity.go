// Package amity manages bidirectional contact relationships between user
// accounts and the stateless access/refresh credentials that gate them.
// Storage and HTTP frameworks plug in through adapters.
package amity

import (
	"github.com/rjcastillo/amity/core"
	"github.com/rjcastillo/amity/pkg/crypto"
	"github.com/rjcastillo/amity/pkg/token"
)

// interfaces
type (
	StorageAdapter = core.StorageAdapter
	UserStorage    = core.UserStorage
	ContactStorage = core.ContactStorage
	Cache          = core.Cache

	HTTPAdapter = core.HTTPAdapter

	AuthProvider    = core.AuthProvider
	ContactProvider = core.ContactProvider

	PasswordHandler = crypto.PasswordHandler
)

// structs
type (
	Amity         = core.Amity
	Config        = core.Config
	SessionConfig = core.SessionConfig
	CacheConfig   = core.CacheConfig
)

type (
	User           = core.User
	Contact        = core.Contact
	ContactView    = core.ContactView
	Status         = core.Status
	AuthContext    = core.AuthContext
	Credential     = core.Credential
	SearchCriteria = core.SearchCriteria
)

const (
	StatusPending   = core.StatusPending
	StatusRequested = core.StatusRequested
	StatusAccepted  = core.StatusAccepted
	StatusRejected  = core.StatusRejected
	StatusBlocked   = core.StatusBlocked
	StatusRemoved   = core.StatusRemoved
)

const (
	defaultBasePath  = "/api"
	defaultSecretLen = 32
)

// Constructors & helpers (convenience re-exports)
var (
	NewInMemoryCache     = core.NewInMemoryCache
	NewArgon2            = crypto.NewArgon2
	DefaultSessionConfig = core.DefaultSessionConfig
	ByID                 = core.ByID
	ByUsername           = core.ByUsername
)

var (
	ErrFieldsRequired   = core.ErrFieldsRequired
	ErrInvalidEmail     = core.ErrInvalidEmail
	ErrInvalidStatus    = core.ErrInvalidStatus
	ErrNoSearchCriteria = core.ErrNoSearchCriteria
)

var (
	ErrUserExists    = core.ErrUserExists
	ErrSelfContact   = core.ErrSelfContact
	ErrContactExists = core.ErrContactExists
)

var (
	ErrUserNotFound    = core.ErrUserNotFound
	ErrContactNotFound = core.ErrContactNotFound
)

var (
	ErrMissingToken       = core.ErrMissingToken
	ErrInvalidToken       = core.ErrInvalidToken
	ErrTokenExpired       = core.ErrTokenExpired
	ErrWrongTokenKind     = core.ErrWrongTokenKind
	ErrUnknownSubject     = core.ErrUnknownSubject
	ErrInvalidCredentials = core.ErrInvalidCredentials
)

var (
	ErrStorageRequired     = core.ErrStorageRequired
	ErrHTTPAdapterRequired = core.ErrHTTPAdapterRequired
	ErrSecretRequired      = core.ErrSecretRequired
	ErrSecretTooShort      = core.ErrSecretTooShort
	ErrSecretsNotDistinct  = core.ErrSecretsNotDistinct
)

// New validates the config, wires the contact engine and auth service,
// and asks the HTTP adapter to register its routes.
func New(config Config) (*Amity, error) {
	if config.AccessSecret == "" || config.RefreshSecret == "" {
		return nil, ErrSecretRequired
	}
	if len(config.AccessSecret) < defaultSecretLen || len(config.RefreshSecret) < defaultSecretLen {
		return nil, ErrSecretTooShort
	}
	if config.AccessSecret == config.RefreshSecret {
		return nil, ErrSecretsNotDistinct
	}
	if config.Database == nil {
		return nil, ErrStorageRequired
	}
	if config.HTTP == nil {
		return nil, ErrHTTPAdapterRequired
	}

	codec, err := token.New([]byte(config.AccessSecret), []byte(config.RefreshSecret))
	if err != nil {
		return nil, err
	}

	// Set Defaults

	sessionConfig := DefaultSessionConfig()
	if config.SessionConfig != nil {
		sessionConfig = *config.SessionConfig
	}

	passwordHasher := config.PasswordHasher
	if passwordHasher == nil {
		passwordHasher = crypto.NewArgon2()
	}

	userCache := config.UserCache
	if userCache == nil && !config.DisableCache {
		userCache = core.NewInMemoryCache(core.CacheConfig{})
	}

	basePath := config.BasePath
	if basePath == "" {
		basePath = defaultBasePath
	}

	a := &Amity{
		Auth:     core.NewAuthService(config.Database, codec, passwordHasher, userCache, sessionConfig),
		Contacts: core.NewContactEngine(config.Database, config.Database),
		BasePath: basePath,
	}

	if err := config.HTTP.RegisterRoutes(a); err != nil {
		return nil, err
	}

	return a, nil
}
