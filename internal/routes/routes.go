package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/wendarnation/quimerabackend/internal/config"
	"github.com/wendarnation/quimerabackend/internal/handlers"
	"github.com/wendarnation/quimerabackend/internal/middleware"
	"github.com/wendarnation/quimerabackend/internal/services"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authService *services.AuthService,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	usuariosHandler *handlers.UsuariosHandler,
	zapatillasHandler *handlers.ZapatillasHandler,
	tiendasHandler *handlers.TiendasHandler,
	listingsHandler *handlers.ZapatillasTiendaHandler,
	tallasHandler *handlers.TallasHandler,
	listasHandler *handlers.ListasFavoritosHandler,
	comentariosHandler *handlers.ComentariosHandler,
	valoracionesHandler *handlers.ValoracionesHandler,
) {
	api := app.Group("/api")

	api.Use(limiter.New(limiter.Config{
		Max:               cfg.RateLimitAPI,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// The token pipeline: signature check, then reconciliation against
	// the local store.
	jwtProtected := middleware.JWTProtected(cfg)
	syncUser := middleware.SyncUser(authService, cfg)

	adminOnly := middleware.RequireAccess([]string{"admin"}, nil)
	catalogWrite := middleware.RequireAccess([]string{"admin"}, []string{"admin:zapatillas"})

	// Auth sync, stricter rate limit than the rest of the API.
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               cfg.RateLimitAuth,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/sync-user", jwtProtected, syncUser, authHandler.SyncUser)

	// Usuarios. Profile routes act on the caller; the rest is admin.
	usuarios := api.Group("/usuarios")
	usuarios.Post("/", jwtProtected, syncUser, adminOnly, usuariosHandler.Create)
	usuarios.Get("/", jwtProtected, syncUser, adminOnly, usuariosHandler.FindAll)
	usuarios.Get("/profile", jwtProtected, syncUser, usuariosHandler.Profile)
	usuarios.Get("/profile/status", jwtProtected, syncUser, usuariosHandler.ProfileStatus)
	usuarios.Patch("/profile", jwtProtected, syncUser, usuariosHandler.UpdateProfile)
	usuarios.Delete("/profile", jwtProtected, syncUser, usuariosHandler.DeleteProfile)
	usuarios.Get("/check-admin-role/:auth0Id", usuariosHandler.CheckAdminRole)
	usuarios.Patch("/change-role/:id", jwtProtected, syncUser, adminOnly, usuariosHandler.ChangeRole)
	usuarios.Get("/:id", jwtProtected, syncUser, adminOnly, usuariosHandler.FindOne)
	usuarios.Patch("/:id", jwtProtected, syncUser, adminOnly, usuariosHandler.Update)
	usuarios.Delete("/:id", jwtProtected, syncUser, adminOnly, usuariosHandler.Remove)

	// Zapatillas. Reads are public, mutations need the catalog permission.
	zapatillas := api.Group("/zapatillas")
	zapatillas.Post("/", jwtProtected, syncUser, catalogWrite, zapatillasHandler.Create)
	zapatillas.Get("/", zapatillasHandler.FindAll)
	zapatillas.Get("/paginated/40", zapatillasHandler.SearchPaginated(40))
	zapatillas.Get("/paginated/15", zapatillasHandler.SearchPaginated(15))
	zapatillas.Get("/search", zapatillasHandler.Search)
	zapatillas.Get("/search/paginated/40", zapatillasHandler.SearchPaginated(40))
	zapatillas.Get("/search/paginated/15", zapatillasHandler.SearchPaginated(15))
	zapatillas.Get("/sku/:sku", zapatillasHandler.FindBySku)
	zapatillas.Get("/buscar-exacto", zapatillasHandler.FindBySkuExacto)
	zapatillas.Get("/:id", zapatillasHandler.FindOne)
	zapatillas.Patch("/:id", jwtProtected, syncUser, catalogWrite, zapatillasHandler.Update)
	zapatillas.Delete("/:id", jwtProtected, syncUser, catalogWrite, zapatillasHandler.Remove)
	zapatillas.Get("/:id/tiendas", zapatillasHandler.Tiendas)
	zapatillas.Get("/:id/tallas", zapatillasHandler.Tallas)
	zapatillas.Get("/:id/valoraciones", zapatillasHandler.Valoraciones)
	zapatillas.Get("/:id/comentarios", zapatillasHandler.Comentarios)

	// Tiendas.
	tiendas := api.Group("/tiendas")
	tiendas.Post("/", jwtProtected, syncUser, adminOnly, tiendasHandler.Create)
	tiendas.Get("/", tiendasHandler.FindAll)
	tiendas.Get("/:id", tiendasHandler.FindOne)
	tiendas.Patch("/:id", jwtProtected, syncUser, adminOnly, tiendasHandler.Update)
	tiendas.Delete("/:id", jwtProtected, syncUser, adminOnly, tiendasHandler.Remove)

	// Listings (zapatilla x tienda).
	listings := api.Group("/zapatillas-tienda")
	listings.Post("/", jwtProtected, syncUser, catalogWrite, listingsHandler.Create)
	listings.Get("/", listingsHandler.FindAll)
	listings.Get("/zapatilla/:id", listingsHandler.FindByZapatilla)
	listings.Get("/tienda/:id", listingsHandler.FindByTienda)
	listings.Get("/:id", listingsHandler.FindOne)
	listings.Patch("/:id", jwtProtected, syncUser, catalogWrite, listingsHandler.Update)
	listings.Delete("/:id", jwtProtected, syncUser, catalogWrite, listingsHandler.Remove)

	// Tallas.
	tallas := api.Group("/tallas")
	tallas.Post("/", jwtProtected, syncUser, catalogWrite, tallasHandler.Create)
	tallas.Get("/", tallasHandler.FindAll)
	tallas.Get("/zapatilla-tienda/:id", tallasHandler.FindByZapatillaTienda)
	tallas.Get("/:id", tallasHandler.FindOne)
	tallas.Patch("/:id", jwtProtected, syncUser, catalogWrite, tallasHandler.Update)
	tallas.Delete("/:id", jwtProtected, syncUser, catalogWrite, tallasHandler.Remove)

	// Listas de favoritos, always scoped to the caller.
	listas := api.Group("/listas-favoritos", jwtProtected, syncUser)
	listas.Post("/", listasHandler.Create)
	listas.Get("/", listasHandler.FindAll)
	listas.Get("/:id", listasHandler.FindOne)
	listas.Patch("/:id", listasHandler.Update)
	listas.Delete("/:id", listasHandler.Remove)
	listas.Post("/:id/zapatillas", listasHandler.AddZapatilla)
	listas.Delete("/:id/zapatillas/:zapatillaId", listasHandler.RemoveZapatilla)

	// Comentarios. Reads public, writes owner-scoped.
	comentarios := api.Group("/comentarios")
	comentarios.Post("/", jwtProtected, syncUser, comentariosHandler.Create)
	comentarios.Get("/", comentariosHandler.FindAll)
	comentarios.Get("/zapatilla/:id", comentariosHandler.FindByZapatilla)
	comentarios.Get("/:id", comentariosHandler.FindOne)
	comentarios.Patch("/:id", jwtProtected, syncUser, comentariosHandler.Update)
	comentarios.Delete("/:id", jwtProtected, syncUser, comentariosHandler.Remove)

	// Valoraciones. Reads public, writes owner-scoped.
	valoraciones := api.Group("/valoraciones")
	valoraciones.Post("/", jwtProtected, syncUser, valoracionesHandler.Create)
	valoraciones.Get("/", valoracionesHandler.FindAll)
	valoraciones.Get("/zapatilla/:id", valoracionesHandler.FindByZapatilla)
	valoraciones.Get("/zapatilla/:id/average", valoracionesHandler.Average)
	valoraciones.Get("/:id", valoracionesHandler.FindOne)
	valoraciones.Patch("/:id", jwtProtected, syncUser, valoracionesHandler.Update)
	valoraciones.Delete("/:id", jwtProtected, syncUser, valoracionesHandler.Remove)
}
