// Package inkpost is a single-author blog engine built with Go, Echo, and templ.
// It provides post CRUD with server-side form validation, static pages, RSS,
// and a sitemap out of the box.
//
// Users provide their own templ components via the ViewFuncs struct, and
// inkpost handles the handler logic, middleware, and database operations.
package inkpost

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// ViewFuncs holds user-provided templ components that the engine calls when
// rendering pages. This is the inversion-of-control mechanism that lets users
// own and customize all templates. Handlers hand over plain data objects —
// records, form state with errors, a heading — and never render HTML
// themselves.
type ViewFuncs struct {
	Home     func(posts []BlogPost, flash string) templ.Component
	Post     func(post BlogPost) templ.Component
	PostForm func(form PostForm, errs []FieldError, heading string, csrfToken string) templ.Component
	About    func() templ.Component
	Contact  func() templ.Component

	NotFound    func() templ.Component
	ServerError func() templ.Component
}

// App is the central inkpost application. It wires together the store, cache,
// handlers, middleware, and user-provided templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	Views  ViewFuncs

	writeLimiter *WriteLimiter
	customRoutes []func(*App)
	staticDir    string
}

// New creates a new inkpost App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the database, cache, middleware, routes, and starts the
// server. It blocks until the server stops.
func (a *App) Start() error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("inkpost: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("inkpost: init store: %w", err)
	}
	a.Store = store

	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)
	a.writeLimiter = NewWriteLimiter(30, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/", a.handleHome)
	e.GET("/post/:id", a.handlePost)
	e.GET("/new-post", a.handleNewPostForm)
	e.POST("/new-post", a.handleCreatePost)
	e.GET("/edit-post/:id", a.handleEditPostForm)
	e.POST("/edit-post/:id", a.handleEditPost)
	e.PATCH("/edit-post/:id", a.handleEditPost)
	e.GET("/delete/:id", a.handleDeletePost)
	e.GET("/about", a.handleAbout)
	e.GET("/contact", a.handleContact)

	e.POST("/upload-image", a.handleImageUpload)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("inkpost: required environment variable %s is not set", key)
	}
	return v
}
