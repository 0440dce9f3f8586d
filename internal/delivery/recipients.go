package delivery

import (
	"context"
	"fmt"
	
	"github.com/katatrina/notify-admin/internal/util"
)

// SendToAll sends to every stored recipient. Only the global variables apply.
func (s *Service) SendToAll(ctx context.Context, req BulkRequest) (BulkResult, error) {
	records, err := s.recipients.ListRecipients(ctx)
	if err != nil {
		return BulkResult{}, fmt.Errorf("failed to list recipients: %w", err)
	}
	if len(records) == 0 {
		return BulkResult{}, ErrNoRecipients
	}
	
	req.Recipients = make([]Recipient, len(records))
	for i, record := range records {
		req.Recipients[i] = Recipient{
			RecipientID: record.ID.String(),
			Email:       record.Email,
			Phone:       util.DerefString(record.Phone),
			Variables:   map[string]string{},
		}
	}
	
	return s.SendBulk(ctx, req)
}

// RecipientsFromCSV converts uploaded rows into recipients, generating an id
// for rows that have none.
func RecipientsFromCSV(rows []CSVRow) []Recipient {
	recipients := make([]Recipient, len(rows))
	for i, row := range rows {
		id := row.ID
		if id == "" {
			id = util.GenerateCSVRecipientID()
		}
		
		vars := row.Variables
		if vars == nil {
			vars = map[string]string{}
		}
		
		recipients[i] = Recipient{
			RecipientID: id,
			Email:       row.Email,
			Phone:       row.Phone,
			Variables:   vars,
		}
	}
	
	return recipients
}
