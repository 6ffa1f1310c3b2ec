package router

import (
	"net/http"

	"github.com/amanabooks/bookstore-backend/config"
	"github.com/amanabooks/bookstore-backend/internal/app/controller"
	"github.com/amanabooks/bookstore-backend/internal/db"
	apperrors "github.com/amanabooks/bookstore-backend/internal/errors"
	"github.com/amanabooks/bookstore-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Router struct {
	bookController       *controller.BookController
	reviewController     *controller.ReviewController
	cartController       *controller.CartController
	cartSocketController *controller.CartSocketController
	uploadController     *controller.UploadController
	gdb                  *gorm.DB
	config               *config.Config
}

func NewRouter(
	bookController *controller.BookController,
	reviewController *controller.ReviewController,
	cartController *controller.CartController,
	cartSocketController *controller.CartSocketController,
	uploadController *controller.UploadController,
	gdb *gorm.DB,
	cfg *config.Config,
) *Router {
	return &Router{
		bookController:       bookController,
		reviewController:     reviewController,
		cartController:       cartController,
		cartSocketController: cartSocketController,
		uploadController:     uploadController,
		gdb:                  gdb,
		config:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	// Health reports unhealthy when the database is unreachable so the load
	// balancer stops routing to this instance.
	router.GET("/health", func(c *gin.Context) {
		if err := db.HealthCheck(r.gdb); err != nil {
			apperrors.ServiceUnavailable(c, "Database is unreachable")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Amana Bookstore API is running",
		})
	})

	router.GET("/ws/cart", r.cartSocketController.Subscribe)

	v1 := router.Group("/api/v1")
	{
		books := v1.Group("/books")
		{
			books.GET("", r.bookController.ListBooks)
			books.GET("/featured", r.bookController.ListFeatured)
			books.GET("/:id", r.bookController.GetBook)
			books.GET("/:id/reviews", r.reviewController.ListBookReviews)
			books.POST("", r.bookController.CreateBook)
		}

		cart := v1.Group("/cart")
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.DELETE("", r.cartController.ClearCart)
			cart.GET("/badge", r.cartController.Badge)
			cart.PUT("/items/:book_id", r.cartController.UpdateCartItem)
			cart.DELETE("/items/:book_id", r.cartController.RemoveFromCart)
		}

		upload := v1.Group("/upload")
		{
			upload.POST("/cover", r.uploadController.PresignCover)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
