package router

import (
	"html/template"

	"github.com/codewithomar/LPWC/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// Paths served by the label admin
const (
	ListPath     = "/admin/labels"
	GeneratePath = "/admin/labels/generate"
	LegacyPath   = "/admin-post.php"
	AssetsPath   = "/assets"
	HealthPath   = "/healthz"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	templates  *template.Template
	assetsDir  string
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithTemplates sets the HTML templates used for pages
func WithTemplates(tmpl *template.Template) RouterOption {
	return func(r *Router) {
		r.templates = tmpl
	}
}

// WithAssets serves files from dir under /assets
func WithAssets(dir string) RouterOption {
	return func(r *Router) {
		r.assetsDir = dir
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		registrars: make([]RouteRegistrar, 0),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers templates, static assets and all routes with the engine
func (r *Router) Setup() {
	if r.templates != nil {
		r.engine.SetHTMLTemplate(r.templates)
	}
	if r.assetsDir != "" {
		r.engine.Static(AssetsPath, r.assetsDir)
	}

	root := r.engine.Group("")
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(root)
	}
}

// LabelRoutes registers the label admin pages
type LabelRoutes struct {
	Handler *handler.LabelHandler
}

// RegisterRoutes implements RouteRegistrar
func (l LabelRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET(ListPath, l.Handler.ListProducts)
	rg.GET(GeneratePath, l.Handler.GenerateLabel)
	// Links printed by the old admin page
	rg.GET(LegacyPath, l.Handler.GenerateLabel)
}

// HealthRoutes registers the liveness endpoint
type HealthRoutes struct {
	Handler *handler.HealthHandler
}

// RegisterRoutes implements RouteRegistrar
func (h HealthRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET(HealthPath, h.Handler.Check)
}
