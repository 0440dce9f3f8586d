package api

import (
	"time"
	
	db "github.com/katatrina/notify-admin/internal/db/sqlc"
	"github.com/katatrina/notify-admin/internal/notification"
)

// NotificationResponse is the HTTP view of a notification.
type NotificationResponse struct {
	ID                 string             `json:"id"`
	RecipientID        string             `json:"recipientId"`
	Content            string             `json:"content"`
	Category           string             `json:"category"`
	Channel            string             `json:"channel"`
	Status             string             `json:"status"`
	ReadAt             *time.Time         `json:"readAt"`
	CanceledAt         *time.Time         `json:"canceledAt"`
	BulkNotificationID *string            `json:"bulkNotificationId"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
	Recipient          *RecipientResponse `json:"recipient,omitempty"`
}

type RecipientResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     *string    `json:"phone"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type TemplateResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Subject   string    `json:"subject"`
	HtmlBody  string    `json:"htmlBody"`
	TextBody  *string   `json:"textBody"`
	Variables []string  `json:"variables"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newNotificationResponse(n *notification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:                 n.ID().String(),
		RecipientID:        n.RecipientID(),
		Content:            n.Content(),
		Category:           n.Category(),
		Channel:            string(n.Channel()),
		Status:             string(n.Status()),
		ReadAt:             n.ReadAt(),
		CanceledAt:         n.CanceledAt(),
		BulkNotificationID: n.BulkNotificationID(),
		CreatedAt:          n.CreatedAt(),
		UpdatedAt:          n.UpdatedAt(),
	}
}

func newNotificationDetailsResponse(row db.ListNotificationDetailsRow) NotificationResponse {
	resp := newNotificationResponse(notification.FromRecord(db.Notification{
		ID:                 row.ID,
		RecipientID:        row.RecipientID,
		Content:            row.Content,
		Category:           row.Category,
		Channel:            row.Channel,
		Status:             row.Status,
		ReadAt:             row.ReadAt,
		CanceledAt:         row.CanceledAt,
		BulkNotificationID: row.BulkNotificationID,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}))
	
	// recipient ids from CSV uploads have no stored recipient
	if row.RecipientName != nil {
		resp.Recipient = &RecipientResponse{
			ID:    row.RecipientID,
			Name:  *row.RecipientName,
			Phone: row.RecipientPhone,
		}
		if row.RecipientEmail != nil {
			resp.Recipient.Email = *row.RecipientEmail
		}
	}
	
	return resp
}

func newRecipientResponse(recipient db.Recipient) RecipientResponse {
	return RecipientResponse{
		ID:        recipient.ID.String(),
		Name:      recipient.Name,
		Email:     recipient.Email,
		Phone:     recipient.Phone,
		CreatedAt: &recipient.CreatedAt,
		UpdatedAt: &recipient.UpdatedAt,
	}
}

func newTemplateResponse(template db.EmailTemplate) TemplateResponse {
	variables := template.Variables
	if variables == nil {
		variables = []string{}
	}
	
	return TemplateResponse{
		ID:        template.ID.String(),
		Name:      template.Name,
		Slug:      template.Slug,
		Subject:   template.Subject,
		HtmlBody:  template.HtmlBody,
		TextBody:  template.TextBody,
		Variables: variables,
		CreatedAt: template.CreatedAt,
		UpdatedAt: template.UpdatedAt,
	}
}
