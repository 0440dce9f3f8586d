package api

import (
	"context"
	"net/http"
	"time"
	
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const healthCheckTimeout = 3 * time.Second

func (server *Server) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()
	
	checks := gin.H{"database": "ok", "redis": "ok"}
	status := http.StatusOK
	
	if err := server.dbStore.Ping(ctx); err != nil {
		log.Err(err).Msg("database health check failed")
		checks["database"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	if err := server.redisClient.Ping(ctx).Err(); err != nil {
		log.Err(err).Msg("redis health check failed")
		checks["redis"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	
	c.JSON(status, gin.H{"status": http.StatusText(status), "checks": checks})
}
