package api

import (
	"net/http"
	
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func (server *Server) getSMSBalance(c *gin.Context) {
	balance, err := server.smsBalance.GetBalance(c.Request.Context())
	if err != nil {
		log.Err(err).Msg("failed to get sms balance")
		c.JSON(http.StatusBadGateway, errorResponse(ErrSMSBalanceUnavailable))
		return
	}
	
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}
