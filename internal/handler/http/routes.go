package http

import (
	"errors"

	"github.com/MKhiriev/go-forum/internal/guard"
	"github.com/MKhiriev/go-forum/internal/router"
	"github.com/MKhiriev/go-forum/models"
)

// Register adds every forum route to table. All routes are attempted; the
// returned error joins every registration failure (e.g. a
// [router.ConflictError]).
func (h *Handler) Register(table *router.Table) error {
	routes := []router.Route{
		{Method: router.GET, Pattern: "/", Handler: h.index, Name: "index"},
		{Method: router.GET, Pattern: "/version", Handler: h.getServerVersion, Name: "version"},
		{Method: router.OPTIONS, Pattern: "/<path..>", Handler: h.preflight, Name: "preflight"},

		// users and authentication
		{
			Method: router.POST, Pattern: "/users", Handler: h.register, Name: "register",
			Guards: []guard.Guard{guard.JSON[models.NewUser](userGuardName)},
		},
		{
			Method: router.POST, Pattern: "/login", Handler: h.login, Name: "login",
			Guards: []guard.Guard{
				guard.RateLimit("login_rate", h.loginLimiter),
				guard.JSON[models.LoginRequest](loginGuardName),
			},
		},
		{
			Method: router.POST, Pattern: "/logout", Handler: h.logout, Name: "logout",
			Guards: []guard.Guard{auth()},
		},
		{
			Method: router.GET, Pattern: "/users/<id>", Handler: h.getUserByID, Name: "user_by_id",
			Guards: []guard.Guard{guard.Forwarding(guard.PositiveInt(idParam))},
		},
		{
			Method: router.GET, Pattern: "/users/<username>", Handler: h.getUserByUsername, Name: "user_by_username",
			Guards: []guard.Guard{guard.PathString(usernameParam)},
		},

		// threads
		{Method: router.GET, Pattern: "/threads", Handler: h.listThreads, Name: "list_threads"},
		{
			Method: router.GET, Pattern: "/threads/<id>", Handler: h.getThread, Name: "get_thread",
			Guards: []guard.Guard{guard.PositiveInt(idParam)},
		},
		{
			Method: router.POST, Pattern: "/threads", Handler: h.createThread, Name: "create_thread",
			Guards: []guard.Guard{auth(), guard.JSON[models.NewThread](threadGuardName)},
		},
		{
			Method: router.DELETE, Pattern: "/threads/<id>", Handler: h.deleteThread, Name: "delete_thread",
			Guards: []guard.Guard{auth(), guard.PositiveInt(idParam)},
		},

		// comments
		{
			Method: router.GET, Pattern: "/threads/<id>/comments", Handler: h.listComments, Name: "list_comments",
			Guards: []guard.Guard{guard.PositiveInt(idParam)},
		},
		{
			Method: router.POST, Pattern: "/threads/<id>/comments", Handler: h.createComment, Name: "create_comment",
			Guards: []guard.Guard{auth(), guard.PositiveInt(idParam), guard.JSON[models.NewComment](commentGuardName)},
		},
		{
			Method: router.DELETE, Pattern: "/comments/<id>", Handler: h.deleteComment, Name: "delete_comment",
			Guards: []guard.Guard{auth(), guard.PositiveInt(idParam)},
		},
	}

	var errs []error
	for _, route := range routes {
		if err := table.Register(route); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	h.logger.Info().Int("routes", len(routes)).Msg("forum routes registered")
	return nil
}
