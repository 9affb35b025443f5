package config

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

// InitApp builds the router and websocket hub
func InitApp(cfg Config) (*gin.Engine, *melody.Melody) {
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", "X-Request-ID")
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false
	configCors.AllowOriginFunc = func(origin string) bool {
		for _, allowed := range cfg.CORSOrigins {
			if allowed == "*" || allowed == origin {
				return true
			}
		}
		return false
	}
	router.Use(cors.New(configCors))

	if err := router.SetTrustedProxies(nil); err != nil {
		log.Printf("Warning: failed to reset trusted proxies: %v", err)
	}

	m := melody.New()
	m.Config.MaxMessageSize = 1024

	return router, m
}
