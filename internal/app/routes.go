package app

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"perfume-shop-backend/internal/middleware"
)

func (a *Application) registerRoutes() {
	if a.cfg.EnableMetrics {
		a.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	a.router.Static("/uploads", a.cfg.UploadDir)

	api := a.router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login", a.handlers.Auth.Login)
		auth.GET("/me", middleware.AuthMiddleware(a.cfg.JWTSecret), a.handlers.Auth.Me)
	}

	storefront := api.Group("/storefront")
	{
		storefront.GET("/page", a.handlers.Storefront.GetPage)
		storefront.GET("/products", a.handlers.Storefront.GetProducts)
		storefront.GET("/products/:id", a.handlers.Storefront.GetProduct)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(a.cfg.JWTSecret), middleware.AdminMiddleware())
	{
		layouts := admin.Group("/layouts")
		{
			layouts.GET("", a.handlers.Layout.GetAllLayouts)
			layouts.GET("/pages", a.handlers.Layout.GetPages)
			layouts.GET("/:pageId", a.handlers.Layout.GetLayout)
			layouts.PUT("/:pageId", a.handlers.Layout.SaveLayout)
			layouts.GET("/:pageId/preview", a.handlers.Layout.PreviewLayout)
			layouts.POST("/:pageId/sections", a.handlers.Layout.AddSection)
			layouts.PUT("/:pageId/sections/:sectionId", a.handlers.Layout.UpdateSection)
			layouts.POST("/:pageId/sections/:sectionId/move", a.handlers.Layout.MoveSection)
			layouts.DELETE("/:pageId/sections/:sectionId", a.handlers.Layout.RemoveSection)
		}

		products := admin.Group("/products")
		{
			products.GET("", a.handlers.Product.GetAll)
			products.POST("", a.handlers.Product.Create)
			products.GET("/:id", a.handlers.Product.GetByID)
			products.PUT("/:id", a.handlers.Product.Update)
			products.DELETE("/:id", a.handlers.Product.Delete)
		}

		admin.POST("/uploads", a.handlers.Upload.Upload)
	}
}
