package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/quill/internal/blog/service"
	"github.com/aussiebroadwan/quill/internal/blog/store"
	"github.com/aussiebroadwan/quill/pkg/httpx"
	"github.com/aussiebroadwan/quill/pkg/jwtx"
	"github.com/aussiebroadwan/quill/pkg/slogx"

	_ "github.com/aussiebroadwan/quill/api/blog" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       jwtx.Signer
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store       store.Store
	AuthService *service.AuthService
	UserService *service.UserService
}

func NewRouter(
	signer jwtx.Signer,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Quill Blog API
//	@version		0.1.0
//	@description	Account service for the Quill blog: email/password login, registration and JWT rotation.
//	@description
//	@description				Access tokens live for 5 minutes, refresh tokens for 1 hour. Both are HS256 JWTs.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/quill
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT token. Format: "Bearer {token}".
//
//	@securityDefinitions.basic	BasicAuth
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	r.Mux.Handle("POST /auth/token/access", &TokenHandler{AuthService: r.AuthService})
	r.Mux.Handle("POST /auth/token/refresh", &TokenHandler{AuthService: r.AuthService, Refresh: true})
	r.Mux.Handle("POST /auth/login/email", &LoginHandler{AuthService: r.AuthService})
	r.Mux.Handle("POST /auth/register/email", &RegisterHandler{AuthService: r.AuthService})
}

func (r *Router) registerUsers() {
	h := &MeHandler{UserService: r.UserService}

	// Access token required, refresh tokens are refused by the middleware.
	r.Mux.Handle("GET /users/me", httpx.Chain(h, httpx.AuthnMiddleware(r.verifier)))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.signer))
}
