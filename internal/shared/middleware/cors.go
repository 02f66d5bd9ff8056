package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/library-circulation/go-api-server/internal/config"
)

// CORS builds the gin-contrib/cors handler from cfg.CORS; "*" allows every origin
func CORS(cfg *config.Config) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		ExposeHeaders:    []string{RequestIDHeader}, // 503 재시도 문의 시 request id 확인용
		MaxAge:           time.Duration(cfg.CORS.MaxAge) * time.Second,
	}

	if slices.Contains(cfg.CORS.AllowedOrigins, "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	}

	return cors.New(corsConfig)
}
