// Package server は MTCLIM の計算を HTTP で提供します。
package server

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/udawtr/mtclim-go/mtclim"
)

// 計算定数 params を用いるルーターを作成します。
func SetupRouter(params mtclim.Params) *gin.Engine {
	router := gin.Default()

	// CORS: 環境変数 CORS_ALLOWED_ORIGINS（カンマ区切り）が無ければ全て許可
	corsConfig := cors.DefaultConfig()
	allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if allowedOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(allowedOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	handler := NewHandler(params)

	v1 := router.Group("/v1")
	v1.POST("/mtclim", handler.PostMtclim)

	router.GET("/health", handler.HealthCheck)

	return router
}
