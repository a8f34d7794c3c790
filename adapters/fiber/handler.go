package fiber

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/rjcastillo/amity/core"
)

func (a *Adapter) createAccount(c fiber.Ctx) error {
	var input core.CreateAccountInput
	if err := c.Bind().Body(&input); err != nil {
		return badRequest(c, "invalid request body")
	}

	user, err := a.auth.CreateAccount(input)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(user)
}

func (a *Adapter) login(c fiber.Ctx) error {
	var input core.LoginInput
	if err := c.Bind().Body(&input); err != nil {
		return badRequest(c, "invalid request body")
	}

	result, err := a.auth.Login(input)
	if err != nil {
		return respondError(c, err)
	}

	setCredentialCookies(c, result.Credential)
	return c.Status(http.StatusOK).JSON(result)
}

func (a *Adapter) refreshToken(c fiber.Ctx) error {
	cred, err := a.auth.Refresh(c.Cookies(refreshCookie))
	if err != nil {
		return respondError(c, err)
	}

	// Both cookies are replaced; the old refresh token simply ages out.
	setCredentialCookies(c, cred)
	return c.Status(http.StatusOK).JSON(cred)
}

func (a *Adapter) logout(c fiber.Ctx) error {
	c.ClearCookie(accessCookie, refreshCookie)

	user, _ := c.Locals("user").(*core.User)
	return c.Status(http.StatusOK).JSON(user)
}

func (a *Adapter) currentUser(c fiber.Ctx) error {
	user, _ := c.Locals("user").(*core.User)
	return c.Status(http.StatusOK).JSON(user)
}

func (a *Adapter) listUsers(c fiber.Ctx) error {
	users, err := a.auth.ListUsers()
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(users)
}

func (a *Adapter) addContact(c fiber.Ctx) error {
	var input struct {
		FriendID string `json:"friendId"`
	}
	if err := c.Bind().Body(&input); err != nil {
		return badRequest(c, "invalid request body")
	}

	contact, err := a.contacts.RequestContact(authContext(c).UserID, input.FriendID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(contact)
}

// transitionTo builds the handler for one status-changing route.
func (a *Adapter) transitionTo(target core.Status) fiber.Handler {
	return func(c fiber.Ctx) error {
		contact, err := a.contacts.Transition(authContext(c).UserID, c.Params("id"), target)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(http.StatusOK).JSON(contact)
	}
}

func (a *Adapter) listContacts(c fiber.Ctx) error {
	var filter *core.Status
	if raw := c.Query("status"); raw != "" {
		status := core.Status(raw)
		filter = &status
	}

	views, err := a.contacts.ListContacts(authContext(c).UserID, filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(views)
}

// listContactsWith builds the handler for a fixed-status listing route.
func (a *Adapter) listContactsWith(status core.Status) fiber.Handler {
	return func(c fiber.Ctx) error {
		views, err := a.contacts.ListContacts(authContext(c).UserID, &status)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(http.StatusOK).JSON(views)
	}
}

func (a *Adapter) requestsSent(c fiber.Ctx) error {
	views, err := a.contacts.RequestsSent(authContext(c).UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(views)
}

func (a *Adapter) requestsReceived(c fiber.Ctx) error {
	views, err := a.contacts.RequestsReceived(authContext(c).UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(views)
}

func (a *Adapter) getContact(c fiber.Ctx) error {
	id := c.Query("id")
	username := c.Query("username")
	if id != "" && username != "" {
		return respondError(c, core.ErrNoSearchCriteria)
	}

	criteria := core.ByUsername(username)
	if id != "" {
		criteria = core.ByID(id)
	}

	contact, err := a.contacts.FindContact(criteria)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(contact)
}

// setCredentialCookies installs a token pair as httpOnly cookies.
func setCredentialCookies(c fiber.Ctx, cred *core.Credential) {
	c.Cookie(&fiber.Cookie{
		Name:     accessCookie,
		Value:    cred.AccessToken,
		Expires:  cred.AccessExpiresAt,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	})
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookie,
		Value:    cred.RefreshToken,
		Expires:  cred.RefreshExpiresAt,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	})
}

func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// respondError maps amity errors to appropriate HTTP responses.
func respondError(c fiber.Ctx, err error) error {
	return c.Status(mapErrorToStatus(err)).JSON(fiber.Map{"error": err.Error()})
}

// mapErrorToStatus maps the error taxonomy to HTTP status codes.
// Anything unrecognized is an internal fault and stays a 500.
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, core.ErrFieldsRequired),
		errors.Is(err, core.ErrInvalidEmail),
		errors.Is(err, core.ErrInvalidStatus),
		errors.Is(err, core.ErrNoSearchCriteria):
		return http.StatusBadRequest

	case errors.Is(err, core.ErrUserExists),
		errors.Is(err, core.ErrSelfContact),
		errors.Is(err, core.ErrContactExists):
		return http.StatusConflict

	case errors.Is(err, core.ErrUserNotFound),
		errors.Is(err, core.ErrContactNotFound):
		return http.StatusNotFound

	case errors.Is(err, core.ErrWrongTokenKind):
		return http.StatusForbidden

	case errors.Is(err, core.ErrMissingToken),
		errors.Is(err, core.ErrInvalidToken),
		errors.Is(err, core.ErrTokenExpired),
		errors.Is(err, core.ErrUnknownSubject),
		errors.Is(err, core.ErrInvalidCredentials):
		return http.StatusUnauthorized

	default:
		return http.StatusInternalServerError
	}
}
