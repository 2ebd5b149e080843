package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mbodji/boutique-api/internal/application/auth"
	"github.com/mbodji/boutique-api/internal/application/usecase"
	"github.com/mbodji/boutique-api/internal/domain/entity"
	"github.com/mbodji/boutique-api/internal/domain/repository"
)

// RouterDeps dépendances du routeur.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CategoryUC *usecase.CategoryUseCase
	ProductUC  *usecase.ProductUseCase
	UserRepo   repository.UserRepository
	Store      ImageSaver
	Limits     UploadLimits
	JWTSecret  string
}

// Router enregistre les routes de l'API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	protect := AuthMiddleware(deps.JWTSecret, deps.UserRepo)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/profile", protect, authHandler.GetProfile)
	authGroup.Put("/profile", protect, authHandler.UpdateProfile)
	authGroup.Post("/verify-password", protect, authHandler.VerifyPassword)
	authGroup.Put("/change-password", protect, authHandler.ChangePassword)

	// Catégories : lecture publique, mutations admin
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.Store, deps.Limits)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", protect, adminOnly, categoryHandler.Create)
	categories.Put("/:id", protect, adminOnly, categoryHandler.Update)
	categories.Delete("/:id", protect, adminOnly, categoryHandler.SoftDelete)
	categories.Delete("/:id/permanent", protect, adminOnly, categoryHandler.HardDelete)

	// Produits : lecture publique, mutations admin
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Store, deps.Limits)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", protect, adminOnly, productHandler.Create)
	products.Put("/:id/reactivate", protect, adminOnly, productHandler.Reactivate)
	products.Put("/:id/stock", protect, adminOnly, productHandler.UpdateStock)
	products.Put("/:id", protect, adminOnly, productHandler.Update)
	products.Delete("/:id/permanent", protect, adminOnly, productHandler.HardDelete)
	products.Delete("/:id", protect, adminOnly, productHandler.SoftDelete)
}
