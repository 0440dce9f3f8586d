package dispatcher

import (
	"context"
	
	"github.com/rs/zerolog/log"
)

// PushHandler accepts push notifications without delivering them anywhere.
type PushHandler struct{}

func (h *PushHandler) Send(_ context.Context, _ Message, _ Contact) Outcome {
	log.Info().Msg("[PUSH] accepted (no push provider configured)")
	return Outcome{Success: true}
}
