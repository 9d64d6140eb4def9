// Package server assembles the HTTP API.
package server

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"clima-be/internal/apperrors"
	"clima-be/internal/config"
	"clima-be/internal/controllers"
	"clima-be/internal/jwt"
	"clima-be/internal/logging"
	"clima-be/internal/middleware"
	"clima-be/internal/models"
	"clima-be/internal/service"
)

// Services are the business dependencies behind the routes.
type Services struct {
	Auth    service.AuthService
	Users   service.UserService
	Cities  service.FavoriteCityService
	Weather service.WeatherService
}

// Router is the gin engine plus the rate limiters it owns.
type Router struct {
	*gin.Engine
	limiters []*middleware.RateLimiter
}

// NewRouter wires middleware, controllers and routes.
func NewRouter(cfg *config.Config, logger logging.Logger, db *gorm.DB, jwtService *jwt.JWTService, svc Services) *Router {
	configureValidator()

	authController := controllers.NewAuthController(svc.Auth)
	userController := controllers.NewUserController(svc.Users)
	cityController := controllers.NewFavoriteCityController(svc.Cities)
	qrcodeController := controllers.NewQRCodeController(svc.Cities, cfg.FrontendURL)
	weatherController := controllers.NewWeatherController(svc.Weather)

	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	authRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)
	weatherRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitWeatherRPS), cfg.RateLimitWeatherBurst)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.ErrorHandler(logger, cfg.IsProduction()),
	)
	router.NoRoute(middleware.NotFound())

	// Health check endpoint (no rate limiting)
	router.GET("/health", healthHandler(db))

	api := router.Group("/api")
	api.Use(generalRateLimiter.LimitMiddleware())
	{
		// Login and registration with stricter rate limiting
		api.POST("/login", authRateLimiter.LimitMiddleware(), authController.Login)
		api.POST("/users", authRateLimiter.LimitMiddleware(), userController.Create)

		// Protected routes - require JWT authentication
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(jwtService))
		{
			protected.GET("/users", userController.List)
			protected.GET("/users/filter/:name", userController.Filter)
			protected.GET("/users/order", userController.Order)
			protected.GET("/users/page", userController.Page)
			protected.GET("/users/:id", userController.Get)
			protected.PUT("/users/:id", userController.Update)
			protected.DELETE("/users/:id", userController.Delete)

			protected.GET("/favorite-cities", cityController.List)
			protected.GET("/favorite-cities/user/:userId", cityController.ListByUser)
			protected.GET("/favorite-cities/filter/:name", cityController.Filter)
			protected.GET("/favorite-cities/order", cityController.Order)
			protected.GET("/favorite-cities/page", cityController.Page)

			protected.POST("/favorite-city", cityController.Create)
			protected.GET("/favorite-city/:id", cityController.Get)
			protected.PUT("/favorite-city/:id", cityController.Update)
			protected.DELETE("/favorite-city/:id", cityController.Delete)
			protected.GET("/favorite-city/:id/qrcode", qrcodeController.FavoriteCityQRCode)

			// Each lookup fans out to the weather provider, so it gets its own budget
			clima := protected.Group("/clima")
			clima.Use(weatherRateLimiter.LimitMiddleware())
			{
				clima.POST("", weatherController.GetWeather)
				clima.POST("/coordenadas", weatherController.GetCoordinates)
			}
		}
	}

	return &Router{
		Engine:   router,
		limiters: []*middleware.RateLimiter{generalRateLimiter, authRateLimiter, weatherRateLimiter},
	}
}

// Close stops the rate limiters' background cleanup.
func (r *Router) Close() {
	for _, l := range r.limiters {
		l.Stop()
	}
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			_ = c.Error(apperrors.ServiceUnavailable(apperrors.MsgDatabaseUnavailable, nil).Wrap(err))
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	}
}

// configureValidator registers the request validations and makes
// validation errors name fields as clients send them.
func configureValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	if err := models.RegisterValidations(v); err != nil {
		panic(err)
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}
