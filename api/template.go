package api

import (
	"errors"
	"net/http"
	
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	db "github.com/katatrina/notify-admin/internal/db/sqlc"
	"github.com/katatrina/notify-admin/internal/render"
	"github.com/katatrina/notify-admin/internal/util"
	"github.com/katatrina/notify-admin/internal/validator"
	"github.com/rs/zerolog/log"
)

type createTemplateRequest struct {
	Name      string   `json:"name" binding:"required"`
	Subject   string   `json:"subject"`
	HtmlBody  string   `json:"htmlBody" binding:"required"`
	TextBody  *string  `json:"textBody"`
	Variables []string `json:"variables"`
}

type updateTemplateRequest struct {
	Name     *string `json:"name"`
	Subject  *string `json:"subject"`
	HtmlBody *string `json:"htmlBody"`
	TextBody *string `json:"textBody"`
}

// templateVariables returns the declared variables, or the placeholders found
// in the subject and body when none were declared.
func templateVariables(declared []string, subject, htmlBody string) []string {
	if len(declared) > 0 {
		return declared
	}
	
	variables := render.Placeholders(subject)
	for _, key := range render.Placeholders(htmlBody) {
		found := false
		for _, existing := range variables {
			if existing == key {
				found = true
				break
			}
		}
		if !found {
			variables = append(variables, key)
		}
	}
	
	return variables
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(ErrInvalidID))
		return uuid.Nil, false
	}
	
	return id, true
}

func (server *Server) listTemplates(c *gin.Context) {
	templates, err := server.dbStore.ListEmailTemplates(c.Request.Context())
	if err != nil {
		log.Err(err).Msg("failed to list templates")
		c.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	resp := make([]TemplateResponse, len(templates))
	for i, template := range templates {
		resp[i] = newTemplateResponse(template)
	}
	
	c.JSON(http.StatusOK, gin.H{"templates": resp})
}

func (server *Server) getTemplate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	
	template, err := server.dbStore.GetEmailTemplateByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(ErrTemplateNotFound))
			return
		}
		
		log.Err(err).Msg("failed to get template")
		c.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	c.JSON(http.StatusOK, gin.H{"template": newTemplateResponse(template)})
}

func (server *Server) createTemplate(c *gin.Context) {
	var req createTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	
	var violations []*FieldViolation
	if err := validator.ValidateName(req.Name); err != nil {
		violations = append(violations, fieldViolation("name", err))
	}
	for _, key := range req.Variables {
		if err := validator.ValidateVariableName(key); err != nil {
			violations = append(violations, fieldViolation("variables", err))
			break
		}
	}
	if violations != nil {
		c.JSON(http.StatusUnprocessableEntity, failedValidationError(violations))
		return
	}
	
	template, err := server.dbStore.CreateEmailTemplate(c.Request.Context(), db.CreateEmailTemplateParams{
		Name:      req.Name,
		Slug:      util.GenerateRandomSlug(req.Name),
		Subject:   req.Subject,
		HtmlBody:  req.HtmlBody,
		TextBody:  req.TextBody,
		Variables: templateVariables(req.Variables, req.Subject, req.HtmlBody),
	})
	if err != nil {
		errCode, constraintName := db.ErrorDescription(err)
		switch {
		case errCode == db.UniqueViolationCode && constraintName == db.UniqueTemplateSlugConstraint:
			err = errors.New("a template with the same slug already exists, please retry")
			c.JSON(http.StatusConflict, errorResponse(err))
			return
		}
		
		log.Err(err).Msg("failed to create template")
		c.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	c.JSON(http.StatusCreated, gin.H{"template": newTemplateResponse(template)})
}

func (server *Server) updateTemplate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	
	var req updateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	
	if req.Name != nil {
		if err := validator.ValidateName(*req.Name); err != nil {
			c.JSON(http.StatusUnprocessableEntity, failedValidationError([]*FieldViolation{fieldViolation("name", err)}))
			return
		}
	}
	
	ctx := c.Request.Context()
	arg := db.UpdateEmailTemplateParams{
		ID:       id,
		Name:     req.Name,
		Subject:  req.Subject,
		HtmlBody: req.HtmlBody,
		TextBody: req.TextBody,
	}
	
	// re-derive the variables whenever the content changes
	if req.Subject != nil || req.HtmlBody != nil {
		current, err := server.dbStore.GetEmailTemplateByID(ctx, id)
		if err != nil {
			if errors.Is(err, db.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, errorResponse(ErrTemplateNotFound))
				return
			}
			
			log.Err(err).Msg("failed to get template")
			c.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
			return
		}
		
		subject, htmlBody := current.Subject, current.HtmlBody
		if req.Subject != nil {
			subject = *req.Subject
		}
		if req.HtmlBody != nil {
			htmlBody = *req.HtmlBody
		}
		arg.Variables = templateVariables(nil, subject, htmlBody)
	}
	
	template, err := server.dbStore.UpdateEmailTemplate(ctx, arg)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(ErrTemplateNotFound))
			return
		}
		
		log.Err(err).Msg("failed to update template")
		c.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	server.templateCache.Invalidate(ctx, id)
	
	c.JSON(http.StatusOK, gin.H{"template": newTemplateResponse(template)})
}

func (server *Server) deleteTemplate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	
	ctx := c.Request.Context()
	if _, err := server.dbStore.GetEmailTemplateByID(ctx, id); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(ErrTemplateNotFound))
			return
		}
		
		log.Err(err).Msg("failed to get template")
		c.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	if err := server.dbStore.DeleteEmailTemplate(ctx, id); err != nil {
		log.Err(err).Msg("failed to delete template")
		c.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	server.templateCache.Invalidate(ctx, id)
	
	c.JSON(http.StatusOK, gin.H{"success": true})
}
