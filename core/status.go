package core

// Status is the lifecycle state of a Contact.
//
// REQUESTED and ACCEPTED are the "live" statuses: as long as a pair of
// users shares a live contact, no new contact may be created for that
// pair. Every other status leaves the pair free to start over.
type Status string

const (
	StatusPending   Status = "PENDING"   // resting state after an unblock
	StatusRequested Status = "REQUESTED" // initial state of a new contact
	StatusAccepted  Status = "ACCEPTED"
	StatusRejected  Status = "REJECTED"
	StatusBlocked   Status = "BLOCKED"
	StatusRemoved   Status = "REMOVED"
)

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusRequested, StatusAccepted, StatusRejected, StatusBlocked, StatusRemoved:
		return true
	}
	return false
}

// Live reports whether a contact in this status blocks the creation of a
// new contact for the same pair of users.
func (s Status) Live() bool {
	return s == StatusRequested || s == StatusAccepted
}

// LiveStatuses lists the statuses that make a contact "live". Storage
// adapters use it to build duplicate checks and uniqueness constraints.
var LiveStatuses = []Status{StatusRequested, StatusAccepted}

// timestampEffect describes what a transition into a status does to the
// AcceptedAt timestamp. LastUpdated is always refreshed, regardless of
// effect.
type timestampEffect int

const (
	effectNone timestampEffect = iota
	effectSetAccepted
	effectClearAccepted
)

// statusEffects maps each target status to its timestamp side effect.
// Evaluated exactly once per transition.
var statusEffects = map[Status]timestampEffect{
	StatusPending:   effectNone,
	StatusRequested: effectNone,
	StatusAccepted:  effectSetAccepted,
	StatusRejected:  effectNone,
	StatusBlocked:   effectClearAccepted,
	StatusRemoved:   effectClearAccepted,
}
