package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/metroticket/internal/service/booking"
	"github.com/Domenick1991/metroticket/internal/service/stations"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type RouterDeps struct {
	Stations       stations.StationUseCase
	Bookings       booking.BookingUseCase
	Auth           Authenticator
	Tokens         TokenValidator
	Line           LineStations
	Train          PositionSource
	Stream         LiveStream
	LoginLimiter   gin.HandlerFunc
	AllowedOrigins []string
	SwaggerDir     string
	Log            *zap.Logger
}

// NewRouter assembles the public HTTP API.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(deps.Log), corsMiddleware(deps.AllowedOrigins))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if deps.SwaggerDir != "" {
		router.Static("/swagger", deps.SwaggerDir)
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/metro.swagger.json"))))
	}

	v1 := router.Group("/api/v1")

	authHandler := NewAuthHandler(deps.Auth)
	var limit []gin.HandlerFunc
	if deps.LoginLimiter != nil {
		limit = append(limit, deps.LoginLimiter)
	}
	authHandler.RegisterPublic(v1.Group("/auth"), limit...)

	NewStationHandler(deps.Stations).Register(v1.Group("/stations"))
	NewFareHandler(deps.Bookings).Register(v1.Group("/fares"))
	NewMapHandler(deps.Line, deps.Train, deps.Stream, deps.Log).Register(v1.Group("/map"))

	protected := v1.Group("", RequireSession(deps.Tokens))
	authHandler.RegisterProtected(protected.Group("/auth"))
	NewBookingHandler(deps.Bookings).Register(protected.Group("/bookings"))

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key"},
		ExposeHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
