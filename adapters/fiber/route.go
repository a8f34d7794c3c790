// Package fiber adapts amity to the Fiber web framework: it registers
// the shared endpoint table, guards protected routes with the auth
// middleware, and maps domain errors to HTTP statuses.
package fiber

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/rjcastillo/amity/core"
)

type Adapter struct {
	app      *fiber.App
	auth     core.AuthProvider
	contacts core.ContactProvider
}

var _ core.HTTPAdapter = (*Adapter)(nil)

func New(app *fiber.App) *Adapter {
	return &Adapter{app: app}
}

// RegisterRoutes mounts every endpoint from the shared table under the
// configured base path. Protected endpoints get the auth gate; the rest
// form the public allow-list.
func (a *Adapter) RegisterRoutes(amity *core.Amity) error {
	a.auth = amity.Auth
	a.contacts = amity.Contacts

	handlers := map[string]fiber.Handler{
		"createAccount": a.createAccount,
		"login":         a.login,
		"refreshToken":  a.refreshToken,

		"logout":      a.logout,
		"currentUser": a.currentUser,
		"listUsers":   a.listUsers,

		"addContact":       a.addContact,
		"acceptContact":    a.transitionTo(core.StatusAccepted),
		"rejectContact":    a.transitionTo(core.StatusRejected),
		"blockContact":     a.transitionTo(core.StatusBlocked),
		"unblockContact":   a.transitionTo(core.StatusPending),
		"removeContact":    a.transitionTo(core.StatusRemoved),
		"listContacts":     a.listContacts,
		"myContacts":       a.listContactsWith(core.StatusAccepted),
		"blockedContacts":  a.listContactsWith(core.StatusBlocked),
		"requestsSent":     a.requestsSent,
		"requestsReceived": a.requestsReceived,
		"getContact":       a.getContact,
	}

	api := a.app.Group(amity.BasePath, recoverFault)

	for _, ep := range core.NewEndpointRegistry().Endpoints() {
		handler, ok := handlers[ep.OperationID]
		if !ok {
			return fmt.Errorf("no handler bound for operation %q", ep.OperationID)
		}

		if ep.Protected {
			api.Add([]string{ep.Method}, ep.Path, a.requireAuth, handler)
		} else {
			api.Add([]string{ep.Method}, ep.Path, handler)
		}
	}

	return nil
}
