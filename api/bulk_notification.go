package api

import (
	"errors"
	"fmt"
	"net/http"
	
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/katatrina/notify-admin/internal/delivery"
	"github.com/katatrina/notify-admin/internal/notification"
	"github.com/katatrina/notify-admin/internal/validator"
	"github.com/katatrina/notify-admin/internal/worker"
	"github.com/rs/zerolog/log"
)

type bulkRecipientRequest struct {
	RecipientID string            `json:"recipientId" binding:"required"`
	Email       string            `json:"email"`
	Phone       string            `json:"phone"`
	Variables   map[string]string `json:"variables"`
}

// bulkTemplateRequest holds the template and variable fields shared by every bulk endpoint.
type bulkTemplateRequest struct {
	TemplateID      string            `json:"templateId"`
	TemplateContent string            `json:"templateContent"`
	TemplateSubject string            `json:"templateSubject"`
	Channel         string            `json:"channel" binding:"required,oneof=email sms"`
	Variables       map[string]string `json:"variables"`
}

type sendBulkRequest struct {
	bulkTemplateRequest
	Recipients []bulkRecipientRequest `json:"recipients" binding:"required,min=1,dive"`
}

type sendByCSVRequest struct {
	bulkTemplateRequest
	CSVData []delivery.CSVRow `json:"csvData" binding:"required,min=1"`
}

type enqueueBulkJobRequest struct {
	bulkTemplateRequest
	ToAll      bool                   `json:"toAll"`
	Recipients []bulkRecipientRequest `json:"recipients" binding:"omitempty,dive"`
}

type enqueueBulkJobResponse struct {
	JobID   string `json:"jobId"`
	BatchID string `json:"batchId"`
	Queue   string `json:"queue"`
}

func validateBulkTemplate(req *bulkTemplateRequest) (violations []*FieldViolation) {
	if req.TemplateID == "" && req.TemplateContent == "" {
		violations = append(violations, fieldViolation("templateId", errors.New("either templateId or templateContent is required")))
	}
	if req.TemplateID != "" {
		if _, err := uuid.Parse(req.TemplateID); err != nil {
			violations = append(violations, fieldViolation("templateId", errors.New("must be a valid UUID")))
		}
	}
	if err := validator.ValidateVariables(req.Variables); err != nil {
		violations = append(violations, fieldViolation("variables", err))
	}
	
	return violations
}

func validateBulkRecipients(field string, recipients []bulkRecipientRequest) (violations []*FieldViolation) {
	for i, recipient := range recipients {
		prefix := fmt.Sprintf("%s[%d]", field, i)
		if recipient.Email != "" {
			if err := validator.ValidateEmail(recipient.Email); err != nil {
				violations = append(violations, fieldViolation(prefix+".email", err))
			}
		}
		if recipient.Phone != "" {
			if err := validator.ValidatePhoneNumber(recipient.Phone); err != nil {
				violations = append(violations, fieldViolation(prefix+".phone", err))
			}
		}
		if err := validator.ValidateVariables(recipient.Variables); err != nil {
			violations = append(violations, fieldViolation(prefix+".variables", err))
		}
	}
	
	return violations
}

func (req *bulkTemplateRequest) toBulkRequest(recipients []delivery.Recipient) delivery.BulkRequest {
	return delivery.BulkRequest{
		TemplateID:      req.TemplateID,
		TemplateContent: req.TemplateContent,
		TemplateSubject: req.TemplateSubject,
		Channel:         notification.Channel(req.Channel),
		Recipients:      recipients,
		Variables:       req.Variables,
	}
}

func toDeliveryRecipients(recipients []bulkRecipientRequest) []delivery.Recipient {
	result := make([]delivery.Recipient, len(recipients))
	for i, r := range recipients {
		result[i] = delivery.Recipient{
			RecipientID: r.RecipientID,
			Email:       r.Email,
			Phone:       r.Phone,
			Variables:   r.Variables,
		}
	}
	
	return result
}

// respondBulkError maps errors raised before a batch started.
func respondBulkError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, delivery.ErrTemplateNotFound):
		c.JSON(http.StatusNotFound, errorResponse(ErrTemplateNotFound))
	case errors.Is(err, delivery.ErrNoRecipients):
		c.JSON(http.StatusUnprocessableEntity, errorResponse(err))
	default:
		log.Err(err).Msg("failed to send bulk notifications")
		c.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
	}
}

//	@Summary		Send a templated notification to a list of recipients
//	@Tags			bulk notifications
//	@Accept			json
//	@Produce		json
//	@Param			request	body		sendBulkRequest		true	"Bulk send request"
//	@Success		200		{object}	delivery.BulkResult	"Per-recipient delivery report"
//	@Failure		400		"Invalid request body"
//	@Failure		404		"Template not found (strict lookup policy)"
//	@Failure		422		"Invalid request parameters"
//	@Router			/v1/bulk-notifications/send [post]
func (server *Server) sendBulkNotifications(c *gin.Context) {
	var req sendBulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	
	violations := validateBulkTemplate(&req.bulkTemplateRequest)
	violations = append(violations, validateBulkRecipients("recipients", req.Recipients)...)
	if violations != nil {
		c.JSON(http.StatusUnprocessableEntity, failedValidationError(violations))
		return
	}
	
	result, err := server.deliveryService.SendBulk(c.Request.Context(), req.toBulkRequest(toDeliveryRecipients(req.Recipients)))
	if err != nil {
		respondBulkError(c, err)
		return
	}
	
	c.JSON(http.StatusOK, result)
}

//	@Summary		Send a templated notification to every stored recipient
//	@Tags			bulk notifications
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	delivery.BulkResult	"Per-recipient delivery report"
//	@Router			/v1/bulk-notifications/send-to-all [post]
func (server *Server) sendToAllRecipients(c *gin.Context) {
	var req bulkTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	
	if violations := validateBulkTemplate(&req); violations != nil {
		c.JSON(http.StatusUnprocessableEntity, failedValidationError(violations))
		return
	}
	
	result, err := server.deliveryService.SendToAll(c.Request.Context(), req.toBulkRequest(nil))
	if err != nil {
		respondBulkError(c, err)
		return
	}
	
	c.JSON(http.StatusOK, result)
}

//	@Summary		Send a templated notification to recipients parsed from a CSV upload
//	@Tags			bulk notifications
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	delivery.BulkResult	"Per-recipient delivery report"
//	@Router			/v1/bulk-notifications/send-by-csv [post]
func (server *Server) sendByCSV(c *gin.Context) {
	var req sendByCSVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	
	recipients := delivery.RecipientsFromCSV(req.CSVData)
	
	rows := make([]bulkRecipientRequest, len(recipients))
	for i, recipient := range recipients {
		rows[i] = bulkRecipientRequest{
			RecipientID: recipient.RecipientID,
			Email:       recipient.Email,
			Phone:       recipient.Phone,
			Variables:   recipient.Variables,
		}
	}
	
	violations := validateBulkTemplate(&req.bulkTemplateRequest)
	violations = append(violations, validateBulkRecipients("csvData", rows)...)
	if violations != nil {
		c.JSON(http.StatusUnprocessableEntity, failedValidationError(violations))
		return
	}
	
	result, err := server.deliveryService.SendBulk(c.Request.Context(), req.toBulkRequest(recipients))
	if err != nil {
		respondBulkError(c, err)
		return
	}
	
	c.JSON(http.StatusOK, result)
}

//	@Summary		Queue a bulk send to run in the background
//	@Tags			bulk notifications
//	@Accept			json
//	@Produce		json
//	@Success		202	{object}	enqueueBulkJobResponse	"Queued job"
//	@Router			/v1/bulk-notifications/jobs [post]
func (server *Server) enqueueBulkJob(c *gin.Context) {
	var req enqueueBulkJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	
	violations := validateBulkTemplate(&req.bulkTemplateRequest)
	if !req.ToAll && len(req.Recipients) == 0 {
		violations = append(violations, fieldViolation("recipients", errors.New("at least one recipient is required unless toAll is set")))
	}
	violations = append(violations, validateBulkRecipients("recipients", req.Recipients)...)
	if violations != nil {
		c.JSON(http.StatusUnprocessableEntity, failedValidationError(violations))
		return
	}
	
	payload := &worker.PayloadSendBulk{
		Mode:    worker.BulkModeRecipients,
		Request: req.toBulkRequest(toDeliveryRecipients(req.Recipients)),
	}
	if req.ToAll {
		payload.Mode = worker.BulkModeAll
		payload.Request.Recipients = nil
	}
	payload.Request.BatchID = uuid.NewString()
	
	info, err := server.taskDistributor.DistributeTaskSendBulk(c.Request.Context(), payload, asynq.TaskID(payload.Request.BatchID))
	if err != nil {
		log.Err(err).Msg("failed to enqueue bulk job")
		c.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	c.JSON(http.StatusAccepted, enqueueBulkJobResponse{
		JobID:   info.ID,
		BatchID: payload.Request.BatchID,
		Queue:   info.Queue,
	})
}

//	@Summary		Get the state and, once finished, the report of a queued bulk send
//	@Tags			bulk notifications
//	@Produce		json
//	@Param			jobID	path		string				true	"Job ID"
//	@Param			queue	query		string				false	"Queue name"	default(default)
//	@Success		200		{object}	worker.JobStatus	"Job status"
//	@Failure		404		"Job not found"
//	@Router			/v1/bulk-notifications/jobs/{jobID} [get]
func (server *Server) getBulkJob(c *gin.Context) {
	jobID := c.Param("jobID")
	queue := c.DefaultQuery("queue", worker.QueueDefault)
	
	info, err := server.taskInspector.GetTaskInfo(c.Request.Context(), queue, jobID)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(ErrJobNotFound))
			return
		}
		
		log.Err(err).Str("job_id", jobID).Msg("failed to get task info")
		c.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	status, err := worker.NewJobStatus(info)
	if err != nil {
		log.Err(err).Str("job_id", jobID).Msg("failed to read job result")
		c.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	c.JSON(http.StatusOK, status)
}
