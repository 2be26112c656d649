package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"perfume-shop-backend/internal/config"
	"perfume-shop-backend/internal/handlers"
	"perfume-shop-backend/internal/media"
	"perfume-shop-backend/internal/models"
	"perfume-shop-backend/internal/render"
	"perfume-shop-backend/internal/repository"
	"perfume-shop-backend/internal/seed"
	"perfume-shop-backend/internal/service"
	"perfume-shop-backend/pkg/cache"
	"perfume-shop-backend/pkg/logger"
	"perfume-shop-backend/pkg/validator"
)

type Application struct {
	cfg *config.Config

	db    *gorm.DB
	cache *cache.Cache

	repositories repositoryContainer
	services     serviceContainer
	handlers     handlerContainer

	renderer *render.Renderer
	router   *gin.Engine
	server   *http.Server
}

type repositoryContainer struct {
	User    repository.UserRepository
	Product repository.ProductRepository
	Layout  repository.LayoutRepository
}

type serviceContainer struct {
	Auth    *service.AuthService
	Product *service.ProductService
	Layout  *service.LayoutService
	Upload  *service.UploadService
}

type handlerContainer struct {
	Auth       *handlers.AuthHandler
	Product    *handlers.ProductHandler
	Layout     *handlers.LayoutHandler
	Storefront *handlers.StorefrontHandler
	Upload     *handlers.UploadHandler
}

func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	app := &Application{cfg: cfg}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.runMigrations(); err != nil {
		return nil, err
	}

	app.initCache()

	if err := app.initServices(); err != nil {
		return nil, err
	}

	seed.EnsureAdminUser(app.repositories.User)
	seed.EnsureStarterCatalog(app.repositories.Product)

	app.initRouter()

	return app, nil
}

func (a *Application) initDatabase() error {
	db, err := gorm.Open(postgres.Open(a.cfg.DatabaseURL), &gorm.Config{
		Logger: logger.NewGormLogger(),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	a.db = db
	return nil
}

func (a *Application) runMigrations() error {
	if err := a.db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Layout{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (a *Application) initCache() {
	c, err := cache.NewCache(a.cfg.RedisURL, a.cfg.EnableRedis && a.cfg.EnableCache)
	if err != nil {
		logger.Warn("Cache unavailable, continuing without it", map[string]interface{}{
			"error": err.Error(),
		})
		c, _ = cache.NewCache("", false)
	}
	a.cache = c
}

func (a *Application) initServices() error {
	a.repositories = repositoryContainer{
		User:    repository.NewUserRepository(a.db),
		Product: repository.NewProductRepository(a.db),
		Layout:  repository.NewLayoutRepository(a.db),
	}

	storage, err := media.NewDiskStorage(a.cfg.UploadDir)
	if err != nil {
		return err
	}

	a.services = serviceContainer{
		Auth:    service.NewAuthService(a.repositories.User, a.cfg.JWTSecret),
		Product: service.NewProductService(a.repositories.Product, a.cache),
		Layout:  service.NewLayoutService(a.repositories.Layout, a.cache),
		Upload: service.NewUploadService(
			storage,
			a.cfg.MaxImageUploadSize,
			a.cfg.MaxVideoUploadSize,
			a.cfg.ImageUploadTimeout,
			a.cfg.VideoUploadTimeout,
		),
	}

	a.renderer = render.New(validator.SanitizeHTML)

	a.handlers = handlerContainer{
		Auth:       handlers.NewAuthHandler(a.services.Auth),
		Product:    handlers.NewProductHandler(a.services.Product),
		Layout:     handlers.NewLayoutHandler(a.services.Layout, a.services.Product, a.renderer),
		Storefront: handlers.NewStorefrontHandler(a.services.Layout, a.services.Product, a.renderer, a.cache, handlers.SiteMeta{
			Name: a.cfg.SiteName,
			URL:  a.cfg.SiteURL,
		}),
		Upload:     handlers.NewUploadHandler(a.services.Upload),
	}

	return nil
}

func (a *Application) initRouter() {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	a.router = router
	a.registerRoutes()

	// No ReadTimeout: video uploads legitimately take minutes; the upload
	// service enforces its own per-kind deadlines.
	a.server = &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           a.router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func (a *Application) Run() error {
	logger.Info("Server listening", map[string]interface{}{"port": a.cfg.Port})
	return a.server.ListenAndServe()
}

func (a *Application) Shutdown(ctx context.Context) error {
	if err := a.server.Shutdown(ctx); err != nil {
		return err
	}
	return a.cache.Close()
}
