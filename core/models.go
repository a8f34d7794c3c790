package core

import "time"

// User represents an account in the system.
//
// amity does not own account data beyond creation and lookup; a user is
// treated as immutable for the duration of a request.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Contact represents a directed-then-mutual relationship between the
// initiator (the user who sent the request) and the target.
//
// Contacts are never physically deleted; history is retained through the
// terminal statuses (REJECTED, BLOCKED, REMOVED).
type Contact struct {
	ID          string     `json:"id"`
	InitiatorID string     `json:"initiatorId"`
	TargetID    string     `json:"targetId"`
	Status      Status     `json:"status"`
	AcceptedAt  *time.Time `json:"acceptedAt,omitempty"`
	LastUpdated time.Time  `json:"lastUpdated"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Participant reports whether the given user is one of the two parties
// on this contact.
func (c *Contact) Participant(userID string) bool {
	return c.InitiatorID == userID || c.TargetID == userID
}

// OtherParty returns the participant that is not the given user.
// Callers must check Participant first.
func (c *Contact) OtherParty(userID string) string {
	if c.InitiatorID == userID {
		return c.TargetID
	}
	return c.InitiatorID
}

// ContactView is a Contact annotated with the "other party" relative to
// the user who asked for the listing. The annotation is derived per
// request and never stored.
type ContactView struct {
	Contact
	OtherUserID string `json:"otherUserId"`
}

// AuthContext is the request-scoped identity derived from a verified
// access token. It is the only source of caller identity for every
// downstream operation.
type AuthContext struct {
	UserID    string `json:"userId"`
	TokenKind string `json:"tokenKind"`
}

// Credential is a freshly issued access/refresh token pair. Tokens are
// bearer values; validity is determined entirely by signature and expiry
// at verification time, nothing is persisted server-side.
type Credential struct {
	UserID           string    `json:"userId"`
	AccessToken      string    `json:"accessToken"`
	AccessExpiresAt  time.Time `json:"accessExpiresAt"`
	RefreshToken     string    `json:"refreshToken"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
}
