package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/junalkadhav/library-management/internal/api/http/handlers"
	"github.com/junalkadhav/library-management/internal/auth"
	"github.com/junalkadhav/library-management/internal/domain"
)

// Operation names referenced by the policy tables and routes. Each operation
// appears exactly once in a table, so the allow-sets cannot drift between
// call sites.
const (
	OpFavouriteBooks  = "favourite-books"
	OpAddFavourite    = "add-favourite-book"
	OpRemoveFavourite = "remove-favourite-book"
	OpChangeRole      = "change-role"
	OpChangeStatus    = "change-status"

	OpGetBooks   = "get-books"
	OpGetBook    = "get-book"
	OpCreateBook = "create-book"
	OpUpdateBook = "update-book"
	OpDeleteBook = "delete-book"
)

// UserPolicy is the user service's declared role policy.
var UserPolicy = auth.Policy{
	OpFavouriteBooks:  {domain.RoleUser, domain.RoleAdmin, domain.RoleSuperAdmin},
	OpAddFavourite:    {domain.RoleUser, domain.RoleAdmin, domain.RoleSuperAdmin},
	OpRemoveFavourite: {domain.RoleUser, domain.RoleAdmin, domain.RoleSuperAdmin},
	OpChangeRole:      {domain.RoleSuperAdmin},
	OpChangeStatus:    {domain.RoleSuperAdmin},
}

// BookPolicy is the book service's declared role policy.
var BookPolicy = auth.Policy{
	OpGetBooks:   {domain.RoleUser, domain.RoleAdmin, domain.RoleSuperAdmin},
	OpGetBook:    {domain.RoleUser, domain.RoleAdmin, domain.RoleSuperAdmin},
	OpCreateBook: {domain.RoleAdmin, domain.RoleSuperAdmin},
	OpUpdateBook: {domain.RoleAdmin, domain.RoleSuperAdmin},
	OpDeleteBook: {domain.RoleAdmin, domain.RoleSuperAdmin},
}

// UserRouteConfig bundles dependencies for user service routes.
type UserRouteConfig struct {
	Health     *handlers.HealthHandler
	Users      *handlers.UsersHandler
	Favourites *handlers.FavouritesHandler
	Auth       *auth.Middleware
}

// RegisterUserRoutes wires the user service's HTTP routes.
func RegisterUserRoutes(app *fiber.App, cfg UserRouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	user := app.Group("/user")
	user.Post("/register", cfg.Users.Register)
	user.Post("/login", cfg.Users.Login)

	// Identity resolution for peer services. Authentication only; every role
	// may resolve itself.
	user.Get("/authorize", cfg.Auth.Handle, cfg.Users.Authorize)

	// Cascade cleanup, reachable from the book service over the internal
	// network. Not behind the gateway: the book service holds no credential
	// of its own and the operation is an idempotent no-op for absent ids.
	user.Post("/internal/cascade-remove", cfg.Favourites.CascadeRemove)

	protected := user.Group("", cfg.Auth.Handle)
	protected.Get("/favourite-books",
		auth.RequireOperation(UserPolicy, OpFavouriteBooks), cfg.Favourites.List)
	protected.Post("/add-favourite-book",
		auth.RequireOperation(UserPolicy, OpAddFavourite), cfg.Favourites.Add)
	protected.Post("/remove-favourite-book",
		auth.RequireOperation(UserPolicy, OpRemoveFavourite), cfg.Favourites.Remove)
	protected.Patch("/:userId/role",
		auth.RequireOperation(UserPolicy, OpChangeRole), cfg.Users.UpdateRole)
	protected.Patch("/:userId/status",
		auth.RequireOperation(UserPolicy, OpChangeStatus), cfg.Users.UpdateStatus)
}

// BookRouteConfig bundles dependencies for book service routes.
type BookRouteConfig struct {
	Health *handlers.HealthHandler
	Books  *handlers.BooksHandler
	Auth   *auth.Middleware
}

// RegisterBookRoutes wires the book service's HTTP routes. Every catalog
// route authenticates through the delegated resolver.
func RegisterBookRoutes(app *fiber.App, cfg BookRouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	book := app.Group("/book", cfg.Auth.Handle)
	book.Get("/get-books",
		auth.RequireOperation(BookPolicy, OpGetBooks), cfg.Books.List)
	book.Get("/get-book/:bookId",
		auth.RequireOperation(BookPolicy, OpGetBook), cfg.Books.Get)
	book.Post("/create-book",
		auth.RequireOperation(BookPolicy, OpCreateBook), cfg.Books.Create)
	book.Put("/update-book/:bookId",
		auth.RequireOperation(BookPolicy, OpUpdateBook), cfg.Books.Update)
	book.Delete("/delete-book/:bookId",
		auth.RequireOperation(BookPolicy, OpDeleteBook), cfg.Books.Delete)
}
