package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mbodji/boutique-api/internal/application/auth"
	"github.com/mbodji/boutique-api/internal/application/usecase"
	"github.com/mbodji/boutique-api/internal/infrastructure/postgres"
	"github.com/mbodji/boutique-api/internal/infrastructure/storage"
	httpRouter "github.com/mbodji/boutique-api/internal/interfaces/http"
	"github.com/mbodji/boutique-api/pkg/config"
	"github.com/mbodji/boutique-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("charger la configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("démarrage de l'application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connexion à PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migration du schéma")
	}

	store, err := storage.NewLocalStore(cfg.Upload.Dir, cfg.Upload.PublicPath)
	if err != nil {
		log.Fatal().Err(err).Msg("initialisation du stockage d'images")
	}

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:   cfg.JWT.Secret,
		ExpHours: cfg.JWT.ExpHours,
		Issuer:   cfg.JWT.Issuer,
	})
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, store, log.Zerolog())
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, store, log.Zerolog())

	// Seed admin idempotent : ne fait rien si un admin existe déjà
	// ou si ADMIN_PASSWORD n'est pas renseigné.
	created, err := authUC.EnsureDefaultAdmin(ctx, auth.BootstrapConfig{
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
		Nom:      cfg.Admin.Nom,
		Prenom:   cfg.Admin.Prenom,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed du compte admin")
	}
	if created {
		log.Warn().Str("email", cfg.Admin.Email).Msg("compte admin par défaut créé, changez ces identifiants")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    int(cfg.Upload.MaxFileSize)*cfg.Upload.MaxFiles + 1024*1024,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger UI en local : http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Boutique API",
	}))

	// Montage statique des images uploadées
	app.Static(cfg.Upload.PublicPath, store.Dir())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CategoryUC: categoryUC,
		ProductUC:  productUC,
		UserRepo:   userRepo,
		Store:      store,
		Limits: httpRouter.UploadLimits{
			MaxFileSize: cfg.Upload.MaxFileSize,
			MaxFiles:    cfg.Upload.MaxFiles,
		},
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("serveur HTTP terminé")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("signal d'arrêt reçu, fermeture du serveur...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arrêt du serveur")
	}

	log.Info().Msg("application arrêtée")
}
