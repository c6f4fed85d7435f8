package router

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"contact-manager/internal/config"
	"contact-manager/internal/domains/contact/handler"
	"contact-manager/internal/shared/middleware"
	"contact-manager/internal/shared/response"
	"contact-manager/pkg/container"
)

const (
	ServerBasePath   = "/api/contacts"
	FunctionBasePath = "/contacts"

	apiPrefix = "/api"
)

// Options configures the engine independently of the container
type Options struct {
	Mode           config.DeployMode
	AllowedOrigins []string

	// Store is connected before every request in function mode
	Store middleware.StoreConnector
}

// BasePath is the contacts collection path for mode
func BasePath(mode config.DeployMode) string {
	if mode == config.DeployFunction {
		return FunctionBasePath
	}
	return ServerBasePath
}

// Setup builds the HTTP handler for the container's deploy mode
func Setup(c *container.Container) http.Handler {
	engine := New(c.ContactHandler, Options{
		Mode:           c.Config.App.DeployMode,
		AllowedOrigins: c.Config.CORS.AllowedOrigins,
		Store:          c.Store,
	})

	if c.Config.App.DeployMode == config.DeployFunction {
		return StripAPIPrefix(engine)
	}
	return engine
}

// New returns the gin engine with the fixed contacts route table
func New(h *handler.ContactHandler, opts Options) *gin.Engine {
	engine := gin.New()

	// Unknown shapes such as a trailing slash must reach NoRoute, not redirect
	engine.RedirectTrailingSlash = false
	engine.RedirectFixedPath = false
	engine.HandleMethodNotAllowed = false

	// Global middlewares
	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.ClientIP(),
		middleware.Logger(),
		middleware.CORS(opts.AllowedOrigins),
		middleware.ErrorHandler(),
	)

	if opts.Mode == config.DeployFunction && opts.Store != nil {
		engine.Use(middleware.EnsureStore(opts.Store))
	}

	setupContactRoutes(engine, h, BasePath(opts.Mode))

	engine.NoRoute(response.RouteNotFound)
	engine.NoMethod(response.RouteNotFound)

	return engine
}

// ========================================
// CONTACT ROUTES
// ========================================
func setupContactRoutes(engine *gin.Engine, h *handler.ContactHandler, basePath string) {
	contacts := engine.Group(basePath)
	{
		contacts.POST("", h.CreateContact)
		contacts.GET("", h.ListContacts)
		contacts.DELETE("/:id", h.DeleteContact)
	}
}

// StripAPIPrefix removes a leading /api segment so a function mounted under
// /api sees /contacts. Other paths pass through untouched.
func StripAPIPrefix(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if path != apiPrefix && !strings.HasPrefix(path, apiPrefix+"/") {
			next.ServeHTTP(w, r)
			return
		}

		stripped := strings.TrimPrefix(path, apiPrefix)
		if stripped == "" {
			stripped = "/"
		}

		r2 := new(http.Request)
		*r2 = *r
		r2.URL = new(url.URL)
		*r2.URL = *r.URL
		r2.URL.Path = stripped
		r2.URL.RawPath = ""

		next.ServeHTTP(w, r2)
	})
}
