package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
	"library-backend/pkg/container"
)

// setupRouter wires all routes and returns the engine along with a
// cleanup func stopping the rate limiters' background goroutines.
func setupRouter(c *container.Container) (*gin.Engine, func()) {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())

	authRequired := middleware.AuthMiddleware(c.JWT)

	// Credential endpoints get a tighter per-IP budget than the rest of
	// the API.
	authLimiter := middleware.NewRateLimiter(rate.Every(time.Second), 10)
	apiLimiter := middleware.NewRateLimiter(rate.Every(10*time.Millisecond), 100)

	v1 := router.Group("/api/v1")
	v1.Use(apiLimiter.Middleware())
	{
		v1.GET("/health", func(ctx *gin.Context) {
			status := gin.H{
				"name":    c.Config.App.Name,
				"version": c.Config.App.Version,
				"status":  "ok",
			}
			if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
				status["status"] = "degraded"
				status["database"] = err.Error()
				ctx.JSON(http.StatusServiceUnavailable, status)
				return
			}
			response.Success(ctx, http.StatusOK, status)
		})

		auth := v1.Group("/auth")
		auth.Use(authLimiter.Middleware())
		{
			auth.POST("/register", c.UserHandler.Register)
			auth.POST("/login", c.UserHandler.Login)
			auth.POST("/refresh", c.UserHandler.Refresh)
			auth.POST("/logout", authRequired, c.UserHandler.Logout)
		}

		users := v1.Group("/users", authRequired)
		{
			users.GET("/me", c.UserHandler.Me)
			users.PUT("/me", c.UserHandler.UpdateProfile)
			users.PUT("/me/password", c.UserHandler.ChangePassword)
		}

		books := v1.Group("/books")
		{
			books.GET("", c.BookHandler.List)
			books.GET("/:id", c.BookHandler.GetByID)
			books.POST("", authRequired, c.BookHandler.Create)
			books.PUT("/:id", authRequired, c.BookHandler.Update)
			books.DELETE("/:id", authRequired, c.BookHandler.Delete)
		}

		authors := v1.Group("/authors")
		{
			authors.GET("", c.AuthorHandler.List)
			authors.GET("/:id", c.AuthorHandler.GetByID)
			authors.POST("", authRequired, c.AuthorHandler.Create)
			authors.PUT("/:id", authRequired, c.AuthorHandler.Update)
			authors.DELETE("/:id", authRequired, c.AuthorHandler.Delete)
		}

		genres := v1.Group("/genres")
		{
			genres.GET("", c.GenreHandler.List)
			genres.GET("/:id", c.GenreHandler.GetByID)
			genres.POST("", authRequired, c.GenreHandler.Create)
			genres.PUT("/:id", authRequired, c.GenreHandler.Update)
			genres.DELETE("/:id", authRequired, c.GenreHandler.Delete)
		}

		publishers := v1.Group("/publishers")
		{
			publishers.GET("", c.PublisherHandler.List)
			publishers.GET("/:id", c.PublisherHandler.GetByID)
			publishers.POST("", authRequired, c.PublisherHandler.Create)
			publishers.PUT("/:id", authRequired, c.PublisherHandler.Update)
			publishers.DELETE("/:id", authRequired, c.PublisherHandler.Delete)
		}

		loans := v1.Group("/loans", authRequired)
		{
			loans.POST("", c.LoanHandler.Borrow)
			loans.GET("", c.LoanHandler.List)
			loans.GET("/:id", c.LoanHandler.GetByID)
			loans.POST("/:id/return", c.LoanHandler.Return)
		}
	}

	cleanup := func() {
		authLimiter.Stop()
		apiLimiter.Stop()
	}
	return router, cleanup
}
