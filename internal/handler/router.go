/*
Package handler provides the HTTP surface of the local dashboard.

This file builds the chi router: global middleware, the HTML views, the config download,
the browser status socket and the JSON API used by the page scripts.
*/
package handler

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"wgdash/internal/pkg/auth/jwt"
	"wgdash/internal/pkg/errs"
	"wgdash/internal/pkg/limiter"
	"wgdash/internal/pkg/logx"
	"wgdash/internal/pkg/resp"
)

const (
	LoginRate  = 0.2
	LoginBurst = 5
)

// Router sets up the dashboard's routing table. ctx bounds background work such as the
// rate limiter cleanup.
func Router(ctx context.Context, deps *AppDeps) http.Handler {
	loginLimiter := limiter.NewIPRateLimiter(ctx, rate.Limit(LoginRate), LoginBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	wsUpgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || deps.Config.IsDevelopment() {
				return true
			}

			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := deps.Config.AllowedOrigins
	if deps.Config.IsDevelopment() {
		corsAllowedOrigins = []string{"*"}
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, map[string]string{
			"status":  "ok",
			"service": "wgdash",
			"channel": deps.Status.State().String(),
		})
	})

	r.Get("/login", HandleLoginView(deps))
	r.With(loginLimiter.Middleware).Post("/login", HandleLoginSubmit(deps))
	r.With(requireSameOrigin(allowedOrigins)).Post("/logout", HandleLogout(deps))

	r.Get("/", HandleHome(deps))

	r.Group(func(authed chi.Router) {
		authed.Use(jwt.SessionMiddleware(deps.Session, respondSessionError))

		authed.Get("/connection.conf", HandleConfigDownload(deps))
		authed.Get("/ws", HandleWebSocket(wsUpgrader, deps))
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(c.Handler)
		api.Use(jwt.SessionMiddleware(deps.Session, respondSessionError))

		api.Get("/me", HandleMe(deps))
		api.Get("/peers", HandlePeers(deps))
		api.Get("/status", HandleStatus(deps))
		api.Post("/copy", HandleCopy(deps))
	})

	return r
}

// respondSessionError answers requests without a usable session.
func respondSessionError(w http.ResponseWriter, r *http.Request, err error) {
	customErr := *errs.From(err)
	if customErr.Status < http.StatusInternalServerError {
		customErr.Status = http.StatusUnauthorized
	}
	resp.RespondError(w, r, &customErr)
}

// requireSameOrigin rejects browser requests whose Origin is neither the dashboard's own
// host nor one of allowed. Requests without an Origin header pass.
func requireSameOrigin(allowed map[string]struct{}) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if _, ok := allowed[origin]; ok {
				next.ServeHTTP(w, r)
				return
			}

			if u, err := url.Parse(origin); err == nil && u.Host == r.Host {
				next.ServeHTTP(w, r)
				return
			}

			logx.Warn("Cross-origin request rejected.", "origin", origin, "path", r.URL.Path)
			resp.RespondError(w, r, errs.NewError(errs.ErrOriginNotAllowed))
		})
	}
}
