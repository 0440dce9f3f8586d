package api

import (
	"time"
	
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// requestLogger logs every HTTP request with zerolog.
func requestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		path := ctx.Request.URL.Path
		
		ctx.Next()
		
		status := ctx.Writer.Status()
		level := zerolog.InfoLevel
		switch {
		case status >= 500:
			level = zerolog.ErrorLevel
		case status >= 400:
			level = zerolog.WarnLevel
		}
		
		logger := log.WithLevel(level).
			Str("method", ctx.Request.Method).
			Str("path", path).
			Int("status_code", status).
			Str("client_ip", ctx.ClientIP()).
			Dur("duration", time.Since(start))
		if len(ctx.Errors) > 0 {
			logger = logger.Str("errors", ctx.Errors.String())
		}
		
		logger.Msg("received a HTTP request")
	}
}
