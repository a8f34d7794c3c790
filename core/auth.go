package core

import (
	"fmt"
	"strings"

	"github.com/rjcastillo/amity/pkg/crypto"
	"github.com/rjcastillo/amity/pkg/token"
)

// CreateAccountInput contains the data needed to register a new user.
type CreateAccountInput struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput contains the credentials for authentication.
type LoginInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult contains the authenticated user and a fresh token pair.
type LoginResult struct {
	User       *User       `json:"user"`
	Credential *Credential `json:"credential"`
}

// AuthService owns the credential lifecycle: account creation, login,
// per-request verification, and refresh rotation. Tokens are stateless;
// the service keeps no record of what it has issued.
type AuthService struct {
	users     UserStorage
	codec     *token.Codec
	passwords crypto.PasswordHandler
	cache     Cache
	config    SessionConfig
}

// Ensure AuthService implements AuthProvider
var _ AuthProvider = (*AuthService)(nil)

func NewAuthService(users UserStorage, codec *token.Codec, passwords crypto.PasswordHandler, cache Cache, config SessionConfig) *AuthService {
	return &AuthService{
		users:     users,
		codec:     codec,
		passwords: passwords,
		cache:     cache,
		config:    config,
	}
}

// CreateAccount registers a new user after validating the input and
// checking username/email uniqueness.
func (s *AuthService) CreateAccount(input CreateAccountInput) (*User, error) {
	if input.Name == "" || input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, ErrFieldsRequired
	}
	if !strings.Contains(input.Email, "@") {
		return nil, ErrInvalidEmail
	}

	existing, err := s.users.GetUserByUsernameOrEmail(input.Username, input.Email)
	if err != nil && err != ErrUserNotFound {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hash, err := s.passwords.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Name:         input.Name,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies the submitted credentials and issues a token pair.
func (s *AuthService) Login(input LoginInput) (*LoginResult, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, ErrFieldsRequired
	}

	user, err := s.users.GetUserByLogin(input.Username, input.Email)
	if err != nil {
		if err == ErrUserNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	ok, err := s.passwords.Verify(input.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	cred, err := s.issuePair(user.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Credential: cred}, nil
}

// Authenticate verifies an access token and resolves its subject to a
// live user. It is the only way request identity is established; no
// operation re-derives identity from payload fields.
func (s *AuthService) Authenticate(accessToken string) (*AuthContext, *User, error) {
	if accessToken == "" {
		return nil, nil, ErrMissingToken
	}

	claims, err := s.codec.Decode(accessToken, token.KindAccess)
	if err != nil {
		return nil, nil, mapTokenError(err)
	}

	user, err := s.lookupSubject(claims.UserID)
	if err != nil {
		return nil, nil, err
	}

	return &AuthContext{UserID: user.ID, TokenKind: string(token.KindAccess)}, user, nil
}

// Refresh rotates a valid refresh token into a brand-new token pair
// bound to the same subject. The old refresh token is not tracked or
// blacklisted; it simply ages out at its natural expiry.
func (s *AuthService) Refresh(refreshToken string) (*Credential, error) {
	if refreshToken == "" {
		return nil, ErrMissingToken
	}

	claims, err := s.codec.Decode(refreshToken, token.KindRefresh)
	if err != nil {
		return nil, mapTokenError(err)
	}

	// The subject must still exist; a deleted account must not be able
	// to mint fresh credentials from an old refresh token.
	if _, err := s.lookupSubject(claims.UserID); err != nil {
		return nil, err
	}

	return s.issuePair(claims.UserID)
}

// ListUsers returns every registered user.
func (s *AuthService) ListUsers() ([]*User, error) {
	users, err := s.users.ListUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *AuthService) issuePair(userID string) (*Credential, error) {
	access, accessExp, err := s.codec.Issue(userID, token.KindAccess, s.config.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refresh, refreshExp, err := s.codec.Issue(userID, token.KindRefresh, s.config.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return &Credential{
		UserID:           userID,
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// lookupSubject resolves a user ID through the read cache when one is
// configured, falling back to storage.
func (s *AuthService) lookupSubject(userID string) (*User, error) {
	if s.cache != nil {
		if user, err := s.cache.Get(userID); err == nil && user != nil {
			return user, nil
		}
	}

	user, err := s.users.GetUserByID(userID)
	if err != nil {
		if err == ErrUserNotFound {
			return nil, ErrUnknownSubject
		}
		return nil, fmt.Errorf("failed to resolve token subject: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(userID, user)
	}
	return user, nil
}

// mapTokenError translates codec failures into the auth error taxonomy.
func mapTokenError(err error) error {
	switch err {
	case token.ErrExpired:
		return ErrTokenExpired
	case token.ErrWrongKind:
		return ErrWrongTokenKind
	default:
		return ErrInvalidToken
	}
}
