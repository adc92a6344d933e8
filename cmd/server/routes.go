package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"nafs-registration.backend/internal/interfaces/http/handlers"
	"nafs-registration.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	registrationHandler *handlers.RegistrationHandler
	paymentHandler      *handlers.PaymentHandler
	authHandler         *handlers.AuthHandler
	adminHandler        *handlers.AdminHandler
	schoolHandler       *handlers.SchoolHandler
	authMiddleware      gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Registration routes (public)
		registrations := v1.Group("/registrations")
		{
			registrations.POST("", middleware.IdempotencyMiddleware(), d.registrationHandler.CreateRegistration)
			registrations.GET("/lookup", d.registrationHandler.LookupRegistration)
			registrations.POST("/lookup", d.registrationHandler.SearchRegistration)
		}

		// Pricing routes (public)
		pricing := v1.Group("/pricing")
		{
			pricing.GET("", d.registrationHandler.GetPricing)
			pricing.GET("/school", d.registrationHandler.QuoteSchoolPrice)
		}

		// Payment routes (public, hit by the checkout page and the
		// gateway redirect)
		payments := v1.Group("/payments")
		{
			payments.POST("/confirm", middleware.IdempotencyMiddleware(), d.paymentHandler.ConfirmPayment)
			payments.GET("/callback", d.paymentHandler.PaymentCallback)
		}

		// Auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/admin/login", d.authHandler.AdminLogin)
			auth.POST("/admin/setup", d.authHandler.AdminSetup)
			auth.POST("/admin/reset-password", d.authHandler.AdminResetPassword)
			auth.POST("/school/login", d.authHandler.SchoolLogin)
			auth.POST("/school/signup", d.authHandler.SchoolSignup)
			auth.POST("/school/reset-password", d.authHandler.SchoolResetPassword)
			auth.GET("/me", d.authMiddleware, d.authHandler.GetMe)
		}

		// Admin routes (protected)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/registrations", d.adminHandler.ListRegistrations)
			admin.GET("/registrations/:id", d.adminHandler.GetRegistration)
			admin.GET("/stats", d.adminHandler.GetStats)
		}

		// School portal routes (protected)
		school := v1.Group("/school")
		school.Use(d.authMiddleware, middleware.RequireSchool())
		{
			school.GET("/registration", d.schoolHandler.GetOwnRegistration)
		}
	}
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "nafs-registration-backend",
		})
	})
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, Idempotency-Key, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}
