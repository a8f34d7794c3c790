package core

// Ports define interfaces for external dependencies

// ============================================
// STORAGE PORTS (Database operations)
// ============================================

// UserStorage defines user-related database operations.
type UserStorage interface {
	// CreateUser persists a new user and assigns its ID and timestamps.
	CreateUser(u *User) error
	// GetUserByID returns ErrUserNotFound when no user matches.
	GetUserByID(id string) (*User, error)
	// GetUserByUsername returns ErrUserNotFound when no user matches.
	GetUserByUsername(username string) (*User, error)
	// GetUserByLogin matches both username and email, the shape login
	// forms submit. Returns ErrUserNotFound when no user matches.
	GetUserByLogin(username, email string) (*User, error)
	// GetUserByUsernameOrEmail matches either field, used for duplicate
	// checks at registration. Returns ErrUserNotFound when no user matches.
	GetUserByUsernameOrEmail(username, email string) (*User, error)
	ListUsers() ([]*User, error)
}

// ContactStorage defines contact-related database operations.
//
// All single-row writes must be atomic: either the full status/timestamp
// mutation commits or nothing does.
type ContactStorage interface {
	// InsertContact persists a new contact and assigns its ID. It must
	// enforce the live-pair invariant: if a live contact already exists
	// for the same unordered pair, it returns ErrContactExists even when
	// a concurrent insert won the race after the caller's duplicate check.
	InsertContact(c *Contact) error
	// FindLiveContact returns the live (REQUESTED or ACCEPTED) contact
	// for the unordered pair, or ErrContactNotFound.
	FindLiveContact(userA, userB string) (*Contact, error)
	// GetContactByID returns ErrContactNotFound when no contact matches.
	GetContactByID(id string) (*Contact, error)
	// GetContactByParticipantUsername returns the most recent contact
	// having a participant with the given username, or ErrContactNotFound.
	GetContactByParticipantUsername(username string) (*Contact, error)
	// UpdateContactStatus applies a status change plus its timestamp
	// effects in a single atomic write and returns the updated row.
	UpdateContactStatus(id string, change StatusChange) (*Contact, error)
	// ListContactsByUser returns contacts where the user is either
	// participant, newest first, optionally filtered by status.
	ListContactsByUser(userID string, status *Status) ([]*Contact, error)
}

// StorageAdapter is the full persistence boundary amity needs.
type StorageAdapter interface {
	UserStorage
	ContactStorage
}

// ============================================
// CACHE PORT
// ============================================

// Cache defines read-side caching of users by ID, used to soften the
// per-request identity lookup. Implementations must be safe for
// concurrent use.
type Cache interface {
	Get(userID string) (*User, error)
	Set(userID string, u *User) error
	Delete(userID string) error
	Clear() error
}

// ============================================
// PROVIDER PORTS (for HTTP adapters)
// ============================================

// AuthProvider provides account and credential operations to HTTP
// adapters.
type AuthProvider interface {
	CreateAccount(input CreateAccountInput) (*User, error)
	Login(input LoginInput) (*LoginResult, error)
	Authenticate(accessToken string) (*AuthContext, *User, error)
	Refresh(refreshToken string) (*Credential, error)
	ListUsers() ([]*User, error)
}

// ContactProvider provides contact operations to HTTP adapters. The
// callerID on every method comes from a verified AuthContext, never from
// the request payload.
type ContactProvider interface {
	RequestContact(callerID, friendID string) (*Contact, error)
	Transition(callerID, contactID string, target Status) (*Contact, error)
	ListContacts(callerID string, filter *Status) ([]*ContactView, error)
	RequestsSent(callerID string) ([]*ContactView, error)
	RequestsReceived(callerID string) ([]*ContactView, error)
	FindContact(criteria SearchCriteria) (*Contact, error)
}

// ============================================
// HTTP PORT
// ============================================

type HTTPAdapter interface {
	RegisterRoutes(a *Amity) error
}
