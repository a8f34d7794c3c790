package core

import "fmt"

// Endpoint is a framework-agnostic description of one HTTP operation.
// Adapters bind their own handler for each OperationID, so multiple
// frameworks can share the same route table.
type Endpoint struct {
	Path        string
	Method      string
	OperationID string
	Description string
	// Protected endpoints sit behind the auth middleware. Everything
	// else is the public allow-list: account creation, login, refresh.
	Protected bool
}

// BaseEndpoints returns the full route table. The unprotected entries
// are exactly the operations a caller can reach without a credential.
func BaseEndpoints() []Endpoint {
	return []Endpoint{
		{Path: "/user/create-account", Method: "POST", OperationID: "createAccount", Description: "Register a new user account"},
		{Path: "/user/login", Method: "POST", OperationID: "login", Description: "Authenticate with username, email, and password"},
		{Path: "/user/refresh-token", Method: "POST", OperationID: "refreshToken", Description: "Rotate a refresh token into a new token pair"},

		{Path: "/user/logout", Method: "POST", OperationID: "logout", Description: "Clear the caller's credentials", Protected: true},
		{Path: "/user/current-user", Method: "GET", OperationID: "currentUser", Description: "Return the authenticated user", Protected: true},
		{Path: "/user/all-users", Method: "GET", OperationID: "listUsers", Description: "List all registered users", Protected: true},

		{Path: "/contact/add-contact", Method: "POST", OperationID: "addContact", Description: "Send a contact request", Protected: true},
		{Path: "/contact/accept-contact/:id", Method: "PUT", OperationID: "acceptContact", Description: "Accept a contact request", Protected: true},
		{Path: "/contact/reject-contact/:id", Method: "PUT", OperationID: "rejectContact", Description: "Reject a contact request", Protected: true},
		{Path: "/contact/block-contact/:id", Method: "PUT", OperationID: "blockContact", Description: "Block a contact", Protected: true},
		{Path: "/contact/unblock-contact/:id", Method: "PUT", OperationID: "unblockContact", Description: "Unblock a contact", Protected: true},
		{Path: "/contact/remove-contact/:id", Method: "PUT", OperationID: "removeContact", Description: "Remove a contact", Protected: true},
		{Path: "/contact/all-contacts", Method: "GET", OperationID: "listContacts", Description: "List the caller's contacts, optionally filtered by status", Protected: true},
		{Path: "/contact/my-contacts", Method: "GET", OperationID: "myContacts", Description: "List the caller's accepted contacts", Protected: true},
		{Path: "/contact/blocked-contacts", Method: "GET", OperationID: "blockedContacts", Description: "List the caller's blocked contacts", Protected: true},
		{Path: "/contact/requests-sent", Method: "GET", OperationID: "requestsSent", Description: "List open requests sent by the caller", Protected: true},
		{Path: "/contact/requests-received", Method: "GET", OperationID: "requestsReceived", Description: "List open requests addressed to the caller", Protected: true},
		{Path: "/contact/get-contact", Method: "GET", OperationID: "getContact", Description: "Find a contact by id or participant username", Protected: true},
	}
}

// EndpointRegistry holds the endpoints an adapter should register, with
// conflict detection for duplicate METHOD:PATH combinations.
type EndpointRegistry struct {
	endpoints map[string]*Endpoint // key: "METHOD:PATH"
	order     []string
}

// NewEndpointRegistry creates a registry pre-loaded with BaseEndpoints.
func NewEndpointRegistry() *EndpointRegistry {
	reg := &EndpointRegistry{endpoints: make(map[string]*Endpoint)}

	base := BaseEndpoints()
	for i := range base {
		// base endpoints are curated by hand; a conflict here is a bug
		if err := reg.register(&base[i]); err != nil {
			panic(err)
		}
	}
	return reg
}

func (r *EndpointRegistry) register(ep *Endpoint) error {
	key := fmt.Sprintf("%s:%s", ep.Method, ep.Path)
	if _, exists := r.endpoints[key]; exists {
		return fmt.Errorf("endpoint conflict: %s %s already registered", ep.Method, ep.Path)
	}
	r.endpoints[key] = ep
	r.order = append(r.order, key)
	return nil
}

// Register adds extra endpoints, rejecting the whole batch on any
// conflict with existing entries or within the batch itself.
func (r *EndpointRegistry) Register(endpoints []Endpoint) error {
	seen := make(map[string]bool)
	for i := range endpoints {
		key := fmt.Sprintf("%s:%s", endpoints[i].Method, endpoints[i].Path)
		if _, exists := r.endpoints[key]; exists {
			return fmt.Errorf("endpoint conflict: %s %s already registered", endpoints[i].Method, endpoints[i].Path)
		}
		if seen[key] {
			return fmt.Errorf("duplicate endpoint in batch: %s %s", endpoints[i].Method, endpoints[i].Path)
		}
		seen[key] = true
	}

	for i := range endpoints {
		if err := r.register(&endpoints[i]); err != nil {
			return err
		}
	}
	return nil
}

// Endpoints returns all registered endpoints in registration order.
func (r *EndpointRegistry) Endpoints() []Endpoint {
	out := make([]Endpoint, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, *r.endpoints[key])
	}
	return out
}
