package core

import "errors"

// Validation errors (client input)
var (
	ErrFieldsRequired   = errors.New("all required fields must be filled") // 400
	ErrInvalidEmail     = errors.New("invalid email format")               // 400
	ErrInvalidStatus    = errors.New("invalid contact status")             // 400
	ErrNoSearchCriteria = errors.New("exactly one search criterion must be provided") // 400
)

// Conflict errors
var (
	ErrUserExists    = errors.New("email and/or username already registered") // 409
	ErrSelfContact   = errors.New("cannot add yourself as a contact")         // 409
	ErrContactExists = errors.New("user is already in your contact list")     // 409
)

// Not-found errors.
//
// ErrContactNotFound deliberately covers both "no such contact" and
// "caller is not a participant" so that existence of a contact is never
// leaked to a non-participant.
var (
	ErrUserNotFound    = errors.New("user does not exist")    // 404
	ErrContactNotFound = errors.New("contact does not exist") // 404
)

// Authentication errors
var (
	ErrMissingToken       = errors.New("missing credentials")          // 401
	ErrInvalidToken       = errors.New("invalid token")                // 401
	ErrTokenExpired       = errors.New("token expired")                // 401
	ErrWrongTokenKind     = errors.New("invalid token type")           // 403
	ErrUnknownSubject     = errors.New("token subject does not exist") // 401
	ErrInvalidCredentials = errors.New("incorrect login details")      // 401
)

// Config errors (server-side configuration)
var (
	ErrStorageRequired     = errors.New("storage adapter is required")               // 500
	ErrHTTPAdapterRequired = errors.New("http adapter is required")                  // 500
	ErrSecretRequired      = errors.New("access and refresh secrets are required")   // 500
	ErrSecretTooShort      = errors.New("secret too short")                          // 500
	ErrSecretsNotDistinct  = errors.New("access and refresh secrets must differ")    // 500
)

// Cache errors
var (
	ErrCacheMiss = errors.New("entry not found in cache")
)
