package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/shared/middleware"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/container"
)

func setupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())

	router.GET("/health", func(ctx *gin.Context) {
		status := gin.H{
			"status":  "ok",
			"version": c.Config.App.Version,
		}
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
			ctx.JSON(http.StatusServiceUnavailable, status)
			return
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			status["cache"] = "unavailable"
		}
		ctx.JSON(http.StatusOK, status)
	})

	v1 := router.Group("/api/v1")

	auth := middleware.AuthMiddleware(c.JWTManager)
	admin := middleware.AdminMiddleware()

	// Auth
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", c.UserHandler.Register)
		authGroup.POST("/login", c.UserHandler.Login)
		authGroup.POST("/refresh", c.UserHandler.Refresh)
	}

	// Profile
	users := v1.Group("/users", auth)
	{
		users.GET("/me", c.UserHandler.GetProfile)
		users.PUT("/me", c.UserHandler.UpdateProfile)
		users.POST("/me/change-password", c.UserHandler.ChangePassword)
	}

	// Catalog
	products := v1.Group("/products")
	{
		products.GET("", c.ProductHandler.List)
		products.GET("/:slug", c.ProductHandler.Get)
	}

	// Discount codes
	discounts := v1.Group("/discounts")
	{
		discounts.POST("/validate", c.DiscountPublicHandler.ValidateCode)
		discounts.POST("/use", c.DiscountPublicHandler.UseCode)
	}

	// Shipping
	shipping := v1.Group("/shipping-settings")
	{
		shipping.GET("", c.ShippingHandler.GetSettings)
		shipping.GET("/quote", c.ShippingHandler.Quote)
	}

	// Thai address lookups
	addresses := v1.Group("/addresses")
	{
		addresses.GET("/provinces", c.AddressHandler.Provinces)
		addresses.GET("/provinces/:id/districts", c.AddressHandler.Districts)
		addresses.GET("/districts/:id/subdistricts", c.AddressHandler.Subdistricts)
		addresses.GET("/zip/:code", c.AddressHandler.ZipLookup)
	}

	// Orders
	orders := v1.Group("/orders", auth)
	{
		orders.POST("", c.OrderHandler.Checkout)
		orders.GET("", c.OrderHandler.List)
		orders.GET("/:id", c.OrderHandler.Get)
		orders.POST("/:id/cancel", c.OrderHandler.Cancel)
	}

	// Payments
	payments := v1.Group("/payments", auth)
	{
		payments.POST("", c.PaymentHandler.Create)
		payments.GET("/orders/:orderId", c.PaymentHandler.Status)
	}

	// Provider callbacks, no auth: verification happens by re-fetching
	// the charge from the provider.
	v1.POST("/webhooks/omise", c.PaymentHandler.Webhook)

	// Back office
	adminGroup := v1.Group("/admin", auth, admin)
	{
		adminGroup.POST("/discounts", c.DiscountAdminHandler.Create)
		adminGroup.GET("/discounts", c.DiscountAdminHandler.List)
		adminGroup.GET("/discounts/:id", c.DiscountAdminHandler.Get)
		adminGroup.PUT("/discounts/:id", c.DiscountAdminHandler.Update)
		adminGroup.DELETE("/discounts/:id", c.DiscountAdminHandler.Deactivate)
		adminGroup.GET("/discount-usage/:code/export", c.DiscountAdminHandler.ExportUsage)

		adminGroup.POST("/shipping-settings", c.ShippingHandler.UpdateSettings)
		adminGroup.GET("/shipping-settings/history", c.ShippingHandler.History)

		adminGroup.POST("/products", c.ProductHandler.Create)
		adminGroup.GET("/products", c.ProductHandler.AdminList)
		adminGroup.PUT("/products/:id", c.ProductHandler.Update)
		adminGroup.DELETE("/products/:id", c.ProductHandler.Delete)

		adminGroup.GET("/orders", c.OrderHandler.AdminList)
		adminGroup.GET("/orders/:id", c.OrderHandler.AdminGet)
		adminGroup.PUT("/orders/:id/status", c.OrderHandler.UpdateStatus)
	}

	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "Route not found")
	})

	return router
}
