// Package kernel assembles the HTTP handler: global middleware, operational
// endpoints, and the application route table with its dependencies.
package kernel

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/eduportal/app/controllers"
	"github.com/shashiranjanraj/eduportal/app/listeners"
	"github.com/shashiranjanraj/eduportal/app/repositories"
	"github.com/shashiranjanraj/eduportal/app/routes"
	"github.com/shashiranjanraj/eduportal/app/services"
	"github.com/shashiranjanraj/eduportal/config"
	"github.com/shashiranjanraj/eduportal/pkg/auth"
	"github.com/shashiranjanraj/eduportal/pkg/cache"
	"github.com/shashiranjanraj/eduportal/pkg/ctx"
	"github.com/shashiranjanraj/eduportal/pkg/event"
	"github.com/shashiranjanraj/eduportal/pkg/metrics"
	"github.com/shashiranjanraj/eduportal/pkg/middleware"
	"github.com/shashiranjanraj/eduportal/pkg/reqid"
	"github.com/shashiranjanraj/eduportal/pkg/response"
	"github.com/shashiranjanraj/eduportal/pkg/router"
)

// Deps are the collaborators the kernel wires into services.
type Deps struct {
	Store    *repositories.Store
	Cache    *cache.Cache
	CacheTTL time.Duration
	Hasher   *auth.Hasher
	Tokens   *auth.Issuer
	Admin    services.AdminAccount

	// AdminGuard protects admin screens and order state changes with the
	// admin session token.
	AdminGuard bool
	// Ping reports store health on /health; nil for the in-memory store.
	Ping controllers.Pinger
}

// DepsFromConfig fills everything except the store side from config.
func DepsFromConfig(store *repositories.Store, c *cache.Cache, ping controllers.Pinger) Deps {
	return Deps{
		Store:    store,
		Cache:    c,
		CacheTTL: config.CacheTTL(),
		Hasher:   auth.NewHasher(config.BcryptCost()),
		Tokens:   auth.NewIssuer(config.JWTSecret()),
		Admin: services.AdminAccount{
			Username:     config.AdminUsername(),
			Password:     config.AdminPassword(),
			PasswordHash: config.AdminPasswordHash(),
		},
		AdminGuard: config.AdminGuard(),
		Ping:       ping,
	}
}

type HTTPKernel struct {
	router *router.Router
}

func NewHTTPKernel(d Deps) *HTTPKernel {
	if d.Cache == nil {
		d.Cache = &cache.Cache{}
	}

	events := event.NewDispatcher()
	listeners.Register(events, d.Cache)

	r := router.New()

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics  outermost for accurate total latency
	//  2. Request ID          inject unique ID before anything logs
	//  3. Logger              logs request_id from context
	//  4. Recovery            panics are logged with the request's logger
	//  5. CORS                answers preflight before routing
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { response.NotFound(w) })
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) { response.MethodNotAllowed(w) })

	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/health", "health", ctx.Wrap(controllers.NewHealthController(d.Ping).Show))

	routes.RegisterAPI(r, routes.Controllers{
		Auth:   controllers.NewAuthController(services.NewAuthService(d.Store.Users, d.Hasher, d.Tokens, d.Admin)),
		Admin:  controllers.NewAdminController(services.NewStudentService(d.Store.Users, events)),
		Course: controllers.NewCourseController(services.NewCourseService(d.Store.Courses, d.Cache, d.CacheTTL, events)),
		Order:  controllers.NewOrderController(services.NewOrderService(d.Store.Orders, d.Store.Users, events)),
	}, routes.Options{
		AdminGuard: d.AdminGuard,
		Tokens:     d.Tokens,
	})

	return &HTTPKernel{router: r}
}

func (k *HTTPKernel) Handler() http.Handler {
	return k.router.Handler()
}

// Routes lists the registered routes for route:list.
func (k *HTTPKernel) Routes() []router.RouteInfo {
	return k.router.Routes()
}
