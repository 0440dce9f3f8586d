package api

import (
	"errors"
	"net/http"
	
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	db "github.com/katatrina/notify-admin/internal/db/sqlc"
	"github.com/katatrina/notify-admin/internal/delivery"
	"github.com/katatrina/notify-admin/internal/dispatcher"
	"github.com/katatrina/notify-admin/internal/notification"
	"github.com/katatrina/notify-admin/internal/validator"
	"github.com/rs/zerolog/log"
)

func (server *Server) listNotifications(c *gin.Context) {
	rows, err := server.dbStore.ListNotificationDetails(c.Request.Context())
	if err != nil {
		log.Err(err).Msg("failed to list notifications")
		c.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	resp := make([]NotificationResponse, len(rows))
	for i, row := range rows {
		resp[i] = newNotificationDetailsResponse(row)
	}
	
	c.JSON(http.StatusOK, gin.H{"notifications": resp})
}

// findNotification loads the notification named by the ":id" path parameter
// and writes the error response itself when that fails.
func (server *Server) findNotification(c *gin.Context) (*notification.Notification, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(ErrInvalidID))
		return nil, false
	}
	
	n, err := server.notifications.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(ErrNotificationNotFound))
			return nil, false
		}
		
		log.Err(err).Str("notification_id", id.String()).Msg("failed to get notification")
		c.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return nil, false
	}
	
	return n, true
}

func (server *Server) getNotification(c *gin.Context) {
	n, ok := server.findNotification(c)
	if !ok {
		return
	}
	
	c.JSON(http.StatusOK, gin.H{"notification": newNotificationResponse(n)})
}

// updateNotification applies mutate to the notification and stores it.
func (server *Server) updateNotification(c *gin.Context, mutate func(n *notification.Notification)) {
	n, ok := server.findNotification(c)
	if !ok {
		return
	}
	
	mutate(n)
	
	if err := server.notifications.Save(c.Request.Context(), n); err != nil {
		log.Err(err).Str("notification_id", n.ID().String()).Msg("failed to update notification")
		c.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	c.JSON(http.StatusOK, gin.H{"notification": newNotificationResponse(n)})
}

func (server *Server) readNotification(c *gin.Context) {
	server.updateNotification(c, (*notification.Notification).Read)
}

func (server *Server) unreadNotification(c *gin.Context) {
	server.updateNotification(c, (*notification.Notification).Unread)
}

func (server *Server) cancelNotification(c *gin.Context) {
	server.updateNotification(c, (*notification.Notification).Cancel)
}

func (server *Server) listRecipientNotifications(c *gin.Context) {
	recipientID := c.Param("recipientID")
	
	notifications, err := server.notifications.ListByRecipient(c.Request.Context(), recipientID)
	if err != nil {
		log.Err(err).Msg("failed to list recipient notifications")
		c.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	resp := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		resp[i] = newNotificationResponse(n)
	}
	
	c.JSON(http.StatusOK, gin.H{"notifications": resp})
}

func (server *Server) countRecipientNotifications(c *gin.Context) {
	recipientID := c.Param("recipientID")
	
	count, err := server.notifications.CountByRecipient(c.Request.Context(), recipientID)
	if err != nil {
		log.Err(err).Msg("failed to count recipient notifications")
		c.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	c.JSON(http.StatusOK, gin.H{"count": count})
}

type createNotificationRequest struct {
	RecipientID    string `json:"recipientId" binding:"required"`
	Content        string `json:"content" binding:"required"`
	Category       string `json:"category" binding:"required"`
	Channel        string `json:"channel" binding:"omitempty,oneof=email sms push"`
	Subject        string `json:"subject"`
	RecipientEmail string `json:"recipientEmail"`
	RecipientPhone string `json:"recipientPhone"`
}

type createNotificationResponse struct {
	Notification   NotificationResponse `json:"notification"`
	DeliveryResult dispatcher.Outcome   `json:"deliveryResult"`
}

func validateCreateNotificationRequest(req *createNotificationRequest) (violations []*FieldViolation) {
	if req.RecipientEmail != "" {
		if err := validator.ValidateEmail(req.RecipientEmail); err != nil {
			violations = append(violations, fieldViolation("recipientEmail", err))
		}
	}
	if req.RecipientPhone != "" {
		if err := validator.ValidatePhoneNumber(req.RecipientPhone); err != nil {
			violations = append(violations, fieldViolation("recipientPhone", err))
		}
	}
	
	return violations
}

func (server *Server) createNotification(c *gin.Context) {
	var req createNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	
	if violations := validateCreateNotificationRequest(&req); violations != nil {
		c.JSON(http.StatusUnprocessableEntity, failedValidationError(violations))
		return
	}
	
	result, err := server.deliveryService.SendWithChannel(c.Request.Context(), delivery.SingleRequest{
		RecipientID:    req.RecipientID,
		Content:        req.Content,
		Category:       req.Category,
		Channel:        notification.Channel(req.Channel),
		Subject:        req.Subject,
		RecipientEmail: req.RecipientEmail,
		RecipientPhone: req.RecipientPhone,
	})
	if err != nil {
		log.Err(err).Msg("failed to send notification")
		c.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	c.JSON(http.StatusCreated, createNotificationResponse{
		Notification:   newNotificationResponse(result.Notification),
		DeliveryResult: result.Outcome,
	})
}
