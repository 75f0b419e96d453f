// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	authfeature "github.com/rjinka/mytennisteam/internal/app/features/auth"
	courtsfeature "github.com/rjinka/mytennisteam/internal/app/features/courts"
	groupsfeature "github.com/rjinka/mytennisteam/internal/app/features/groups"
	healthfeature "github.com/rjinka/mytennisteam/internal/app/features/health"
	invitationsfeature "github.com/rjinka/mytennisteam/internal/app/features/invitations"
	playersfeature "github.com/rjinka/mytennisteam/internal/app/features/players"
	schedulesfeature "github.com/rjinka/mytennisteam/internal/app/features/schedules"
	usersfeature "github.com/rjinka/mytennisteam/internal/app/features/users"
	sysauth "github.com/rjinka/mytennisteam/internal/app/system/auth"
	"github.com/rjinka/mytennisteam/internal/app/system/events"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// The API splits into a public surface (health, signup/login) and a
// token-gated surface. Group-scoped resources mount under /groups/{id};
// per-schedule operations live at /schedules/{scheduleID} so clients can
// address a schedule without carrying its group id around.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens := sysauth.NewManager(appCfg.JWTSecret, appCfg.JWTIssuer, appCfg.TokenTTL, logger)

	// Lineup change notifications. Swap in a push transport here when
	// one is deployed.
	publisher := &events.LogPublisher{Log: logger}

	db := deps.MongoDatabase

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Signup and login issue the bearer tokens everything else requires.
	authHandler := authfeature.NewHandler(db, tokens, logger)
	r.Mount("/auth", authfeature.Routes(authHandler))

	// Everything below requires a signed-in user.
	r.Group(func(r chi.Router) {
		r.Use(tokens.RequireSignedIn)

		usersHandler := usersfeature.NewHandler(db, logger)
		r.Mount("/users", usersfeature.Routes(usersHandler))

		courtsHandler := courtsfeature.NewHandler(db, logger)
		playersHandler := playersfeature.NewHandler(db, logger)
		invitationsHandler := invitationsfeature.NewHandler(db, logger)
		schedulesHandler := schedulesfeature.NewHandler(db, publisher, logger)

		// Group management plus its nested resources. The nested
		// routers all read the group from the {id} parameter.
		groupsHandler := groupsfeature.NewHandler(db, logger)
		groupsRouter := groupsfeature.Routes(groupsHandler)
		groupsRouter.Mount("/{id}/courts", courtsfeature.Routes(courtsHandler))
		groupsRouter.Mount("/{id}/players", playersfeature.Routes(playersHandler))
		groupsRouter.Mount("/{id}/invitations", invitationsfeature.GroupRoutes(invitationsHandler))
		groupsRouter.Mount("/{id}/schedules", schedulesfeature.GroupRoutes(schedulesHandler))
		r.Mount("/groups", groupsRouter)

		// Per-schedule operations, addressed without the group id.
		r.Mount("/schedules", schedulesfeature.Routes(schedulesHandler))

		// Read-only history projections.
		r.Route("/stats", func(r chi.Router) {
			r.Get("/schedule/{scheduleID}", schedulesHandler.ServeStats)
			r.Get("/player/{playerID}", playersHandler.ServeStats)
		})

		// Token redemption for invited players.
		r.Mount("/invitations", invitationsfeature.Routes(invitationsHandler))
	})

	return r, nil
}
