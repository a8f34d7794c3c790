package core

// SearchCriteria selects exactly one way to look up a contact. The two
// variants are mutually exclusive; construct values through ByID or
// ByUsername so no ambiguous criteria can be built.
type SearchCriteria struct {
	id       string
	username string
}

// ByID builds criteria matching a contact by its identifier.
func ByID(id string) SearchCriteria {
	return SearchCriteria{id: id}
}

// ByUsername builds criteria matching a contact by the username of one
// of its participants.
func ByUsername(username string) SearchCriteria {
	return SearchCriteria{username: username}
}

// ID returns the id variant and whether it is the one set.
func (c SearchCriteria) ID() (string, bool) {
	return c.id, c.id != ""
}

// Username returns the username variant and whether it is the one set.
func (c SearchCriteria) Username() (string, bool) {
	return c.username, c.username != ""
}

// validate returns ErrNoSearchCriteria unless exactly one variant is set.
func (c SearchCriteria) validate() error {
	if (c.id == "") == (c.username == "") {
		return ErrNoSearchCriteria
	}
	return nil
}
