package api

import (
	"errors"
	"net/http"
	
	"github.com/gin-gonic/gin"
	db "github.com/katatrina/notify-admin/internal/db/sqlc"
	"github.com/katatrina/notify-admin/internal/util"
	"github.com/katatrina/notify-admin/internal/validator"
	"github.com/rs/zerolog/log"
)

type createRecipientRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Phone string `json:"phone"`
}

type updateRecipientRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

func validateRecipientFields(name, email, phone *string) (violations []*FieldViolation) {
	if name != nil {
		if err := validator.ValidateName(*name); err != nil {
			violations = append(violations, fieldViolation("name", err))
		}
	}
	if email != nil {
		if err := validator.ValidateEmail(*email); err != nil {
			violations = append(violations, fieldViolation("email", err))
		}
	}
	if phone != nil && *phone != "" {
		if err := validator.ValidatePhoneNumber(*phone); err != nil {
			violations = append(violations, fieldViolation("phone", err))
		}
	}
	
	return violations
}

func (server *Server) listRecipients(c *gin.Context) {
	recipients, err := server.dbStore.ListRecipients(c.Request.Context())
	if err != nil {
		log.Err(err).Msg("failed to list recipients")
		c.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	resp := make([]RecipientResponse, len(recipients))
	for i, recipient := range recipients {
		resp[i] = newRecipientResponse(recipient)
	}
	
	c.JSON(http.StatusOK, gin.H{"recipients": resp})
}

func (server *Server) getRecipient(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	
	recipient, err := server.dbStore.GetRecipientByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(ErrRecipientNotFound))
			return
		}
		
		log.Err(err).Msg("failed to get recipient")
		c.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	c.JSON(http.StatusOK, gin.H{"recipient": newRecipientResponse(recipient)})
}

func (server *Server) createRecipient(c *gin.Context) {
	var req createRecipientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	
	if violations := validateRecipientFields(&req.Name, &req.Email, &req.Phone); violations != nil {
		c.JSON(http.StatusUnprocessableEntity, failedValidationError(violations))
		return
	}
	
	phone := util.OptionalString(util.NormalizePhoneNumber(req.Phone))
	
	recipient, err := server.dbStore.CreateRecipient(c.Request.Context(), db.CreateRecipientParams{
		Name:  req.Name,
		Email: req.Email,
		Phone: phone,
	})
	if err != nil {
		log.Err(err).Msg("failed to create recipient")
		c.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	c.JSON(http.StatusCreated, gin.H{"recipient": newRecipientResponse(recipient)})
}

func (server *Server) updateRecipient(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	
	var req updateRecipientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	
	if violations := validateRecipientFields(req.Name, req.Email, req.Phone); violations != nil {
		c.JSON(http.StatusUnprocessableEntity, failedValidationError(violations))
		return
	}
	
	phone := req.Phone
	if phone != nil {
		phone = util.StringPointer(util.NormalizePhoneNumber(*phone))
	}
	
	recipient, err := server.dbStore.UpdateRecipient(c.Request.Context(), db.UpdateRecipientParams{
		ID:    id,
		Name:  req.Name,
		Email: req.Email,
		Phone: phone,
	})
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(ErrRecipientNotFound))
			return
		}
		
		log.Err(err).Msg("failed to update recipient")
		c.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	c.JSON(http.StatusOK, gin.H{"recipient": newRecipientResponse(recipient)})
}

func (server *Server) deleteRecipient(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	
	ctx := c.Request.Context()
	if _, err := server.dbStore.GetRecipientByID(ctx, id); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(ErrRecipientNotFound))
			return
		}
		
		log.Err(err).Msg("failed to get recipient")
		c.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	if err := server.dbStore.DeleteRecipient(ctx, id); err != nil {
		log.Err(err).Msg("failed to delete recipient")
		c.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	c.JSON(http.StatusOK, gin.H{"success": true})
}
