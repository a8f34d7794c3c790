package core

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FakeStorage is a test-only in-memory StorageAdapter. It enforces the
// same live-pair invariant a real database does and exposes error fields
// for behavior injection.
type FakeStorage struct {
	mu       sync.RWMutex
	users    map[string]*User
	contacts map[string]*Contact

	CreateUserErr  error
	GetUserErr     error
	InsertErr      error
	GetContactErr  error
	UpdateErr      error
	ListErr        error
}

// Ensure FakeStorage implements StorageAdapter
var _ StorageAdapter = (*FakeStorage)(nil)

func NewFakeStorage() *FakeStorage {
	return &FakeStorage{
		users:    make(map[string]*User),
		contacts: make(map[string]*Contact),
	}
}

// SeedUser inserts a user directly, bypassing validation.
func (f *FakeStorage) SeedUser(u *User) *User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	f.users[u.ID] = u
	return u
}

func (f *FakeStorage) CreateUser(u *User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateUserErr != nil {
		return f.CreateUserErr
	}
	u.ID = uuid.NewString()
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	f.users[u.ID] = u
	return nil
}

func (f *FakeStorage) GetUserByID(id string) (*User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.GetUserErr != nil {
		return nil, f.GetUserErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (f *FakeStorage) GetUserByUsername(username string) (*User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.GetUserErr != nil {
		return nil, f.GetUserErr
	}
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *FakeStorage) GetUserByLogin(username, email string) (*User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.GetUserErr != nil {
		return nil, f.GetUserErr
	}
	for _, u := range f.users {
		if u.Username == username && u.Email == email {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *FakeStorage) GetUserByUsernameOrEmail(username, email string) (*User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.GetUserErr != nil {
		return nil, f.GetUserErr
	}
	for _, u := range f.users {
		if u.Username == username || u.Email == email {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *FakeStorage) ListUsers() ([]*User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]*User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (f *FakeStorage) InsertContact(c *Contact) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.InsertErr != nil {
		return f.InsertErr
	}
	// live-pair invariant, same as the partial unique index in postgres
	for _, existing := range f.contacts {
		if existing.Status.Live() && samePair(existing, c) {
			return ErrContactExists
		}
	}
	c.ID = uuid.NewString()
	f.contacts[c.ID] = copyContact(c)
	return nil
}

func (f *FakeStorage) FindLiveContact(userA, userB string) (*Contact, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.GetContactErr != nil {
		return nil, f.GetContactErr
	}
	probe := &Contact{InitiatorID: userA, TargetID: userB}
	for _, c := range f.contacts {
		if c.Status.Live() && samePair(c, probe) {
			return copyContact(c), nil
		}
	}
	return nil, ErrContactNotFound
}

func (f *FakeStorage) GetContactByID(id string) (*Contact, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.GetContactErr != nil {
		return nil, f.GetContactErr
	}
	c, ok := f.contacts[id]
	if !ok {
		return nil, ErrContactNotFound
	}
	return copyContact(c), nil
}

func (f *FakeStorage) GetContactByParticipantUsername(username string) (*Contact, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.GetContactErr != nil {
		return nil, f.GetContactErr
	}

	var user *User
	for _, u := range f.users {
		if u.Username == username {
			user = u
			break
		}
	}
	if user == nil {
		return nil, ErrContactNotFound
	}

	var newest *Contact
	for _, c := range f.contacts {
		if !c.Participant(user.ID) {
			continue
		}
		if newest == nil || c.LastUpdated.After(newest.LastUpdated) {
			newest = c
		}
	}
	if newest == nil {
		return nil, ErrContactNotFound
	}
	return copyContact(newest), nil
}

func (f *FakeStorage) UpdateContactStatus(id string, change StatusChange) (*Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	c, ok := f.contacts[id]
	if !ok {
		return nil, ErrContactNotFound
	}
	c.Status = change.Status
	if change.TouchAccepted {
		c.AcceptedAt = change.AcceptedAt
	}
	c.LastUpdated = change.LastUpdated
	return copyContact(c), nil
}

func (f *FakeStorage) ListContactsByUser(userID string, status *Status) ([]*Contact, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]*Contact, 0)
	for _, c := range f.contacts {
		if !c.Participant(userID) {
			continue
		}
		if status != nil && c.Status != *status {
			continue
		}
		out = append(out, copyContact(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastUpdated.After(out[j].LastUpdated) })
	return out, nil
}

func samePair(a, b *Contact) bool {
	return (a.InitiatorID == b.InitiatorID && a.TargetID == b.TargetID) ||
		(a.InitiatorID == b.TargetID && a.TargetID == b.InitiatorID)
}

func copyContact(c *Contact) *Contact {
	dup := *c
	if c.AcceptedAt != nil {
		t := *c.AcceptedAt
		dup.AcceptedAt = &t
	}
	return &dup
}
