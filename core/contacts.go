package core

import (
	"fmt"
	"time"
)

// StatusChange is the atomic write a status transition asks of storage.
//
// TouchAccepted false leaves accepted_at untouched; true overwrites it
// with AcceptedAt (which may be nil to clear). LastUpdated is always
// written.
type StatusChange struct {
	Status        Status
	AcceptedAt    *time.Time
	TouchAccepted bool
	LastUpdated   time.Time
}

// ContactEngine is the contact state machine. It validates preconditions,
// computes the new state and timestamps, and delegates the atomic write
// to storage. It holds no mutable state of its own.
type ContactEngine struct {
	contacts ContactStorage
	users    UserStorage
	now      func() time.Time
}

// Ensure ContactEngine implements ContactProvider
var _ ContactProvider = (*ContactEngine)(nil)

func NewContactEngine(contacts ContactStorage, users UserStorage) *ContactEngine {
	return &ContactEngine{
		contacts: contacts,
		users:    users,
		now:      time.Now,
	}
}

// RequestContact creates a new contact in REQUESTED status from the
// caller to friendID.
//
// Checks run in a fixed order callers can rely on: empty field, then
// self-contact, then duplicate live contact, then target existence.
func (e *ContactEngine) RequestContact(callerID, friendID string) (*Contact, error) {
	if friendID == "" {
		return nil, ErrFieldsRequired
	}
	if callerID == friendID {
		return nil, ErrSelfContact
	}

	_, err := e.contacts.FindLiveContact(callerID, friendID)
	switch {
	case err == nil:
		return nil, ErrContactExists
	case err != ErrContactNotFound:
		return nil, fmt.Errorf("failed to check existing contact: %w", err)
	}

	if _, err := e.users.GetUserByID(friendID); err != nil {
		if err == ErrUserNotFound {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up contact target: %w", err)
	}

	now := e.now()
	contact := &Contact{
		InitiatorID: callerID,
		TargetID:    friendID,
		Status:      StatusRequested,
		LastUpdated: now,
		CreatedAt:   now,
	}

	// InsertContact re-enforces the live-pair invariant, so two racing
	// requests for the same pair cannot both commit.
	if err := e.contacts.InsertContact(contact); err != nil {
		if err == ErrContactExists {
			return nil, ErrContactExists
		}
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	return contact, nil
}

// Transition moves a contact the caller participates in to the target
// status and applies that status's timestamp effect.
//
// Any participant may move a contact to any status from any prior
// status; only participation is checked. A caller who is not a
// participant gets the same ErrContactNotFound as for a missing contact.
func (e *ContactEngine) Transition(callerID, contactID string, target Status) (*Contact, error) {
	if !target.Valid() {
		return nil, ErrInvalidStatus
	}

	contact, err := e.contacts.GetContactByID(contactID)
	if err != nil {
		if err == ErrContactNotFound {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to look up contact: %w", err)
	}
	if !contact.Participant(callerID) {
		return nil, ErrContactNotFound
	}

	now := e.now()
	change := StatusChange{Status: target, LastUpdated: now}
	switch statusEffects[target] {
	case effectSetAccepted:
		change.AcceptedAt = &now
		change.TouchAccepted = true
	case effectClearAccepted:
		change.TouchAccepted = true
	}

	updated, err := e.contacts.UpdateContactStatus(contact.ID, change)
	if err != nil {
		if err == ErrContactNotFound {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	return updated, nil
}

// Accept marks a contact request as accepted and stamps AcceptedAt.
func (e *ContactEngine) Accept(callerID, contactID string) (*Contact, error) {
	return e.Transition(callerID, contactID, StatusAccepted)
}

// Reject declines a contact request.
func (e *ContactEngine) Reject(callerID, contactID string) (*Contact, error) {
	return e.Transition(callerID, contactID, StatusRejected)
}

// Block blocks a contact and clears AcceptedAt.
func (e *ContactEngine) Block(callerID, contactID string) (*Contact, error) {
	return e.Transition(callerID, contactID, StatusBlocked)
}

// Unblock returns a blocked contact to the PENDING resting state.
func (e *ContactEngine) Unblock(callerID, contactID string) (*Contact, error) {
	return e.Transition(callerID, contactID, StatusPending)
}

// Remove removes a contact and clears AcceptedAt. The pair is then free
// to request each other again with a fresh contact.
func (e *ContactEngine) Remove(callerID, contactID string) (*Contact, error) {
	return e.Transition(callerID, contactID, StatusRemoved)
}

// ListContacts returns contacts where the caller is either participant,
// optionally filtered by status, each annotated with the other party.
func (e *ContactEngine) ListContacts(callerID string, filter *Status) ([]*ContactView, error) {
	if filter != nil && !filter.Valid() {
		return nil, ErrInvalidStatus
	}

	contacts, err := e.contacts.ListContactsByUser(callerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return annotate(contacts, callerID), nil
}

// RequestsSent returns open requests where the caller is the initiator.
func (e *ContactEngine) RequestsSent(callerID string) ([]*ContactView, error) {
	return e.listRequests(callerID, true)
}

// RequestsReceived returns open requests where the caller is the target.
func (e *ContactEngine) RequestsReceived(callerID string) ([]*ContactView, error) {
	return e.listRequests(callerID, false)
}

func (e *ContactEngine) listRequests(callerID string, sent bool) ([]*ContactView, error) {
	status := StatusRequested
	contacts, err := e.contacts.ListContactsByUser(callerID, &status)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact requests: %w", err)
	}

	filtered := contacts[:0]
	for _, c := range contacts {
		if (c.InitiatorID == callerID) == sent {
			filtered = append(filtered, c)
		}
	}
	return annotate(filtered, callerID), nil
}

// FindContact looks up a single contact by exactly one criterion.
func (e *ContactEngine) FindContact(criteria SearchCriteria) (*Contact, error) {
	if err := criteria.validate(); err != nil {
		return nil, err
	}

	var (
		contact *Contact
		err     error
	)
	if id, ok := criteria.ID(); ok {
		contact, err = e.contacts.GetContactByID(id)
	} else if username, ok := criteria.Username(); ok {
		contact, err = e.contacts.GetContactByParticipantUsername(username)
	}

	if err != nil {
		if err == ErrContactNotFound {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to search contact: %w", err)
	}
	return contact, nil
}

func annotate(contacts []*Contact, callerID string) []*ContactView {
	views := make([]*ContactView, 0, len(contacts))
	for _, c := range contacts {
		views = append(views, &ContactView{
			Contact:     *c,
			OtherUserID: c.OtherParty(callerID),
		})
	}
	return views
}
