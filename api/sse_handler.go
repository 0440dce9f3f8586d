package api

import (
	"encoding/json"
	"net/http"
	"time"
	
	"github.com/gin-gonic/gin"
	"github.com/katatrina/notify-admin/internal/event"
	"github.com/rs/zerolog/log"
)

const sseKeepAliveInterval = 15 * time.Second

//	@Summary		Stream bulk dispatch progress via Server-Sent Events
//	@Description	Establishes an SSE connection that receives one event per processed recipient and a final batch_completed event
//	@Tags			bulk notifications
//	@Produce		text/event-stream
//	@Param			batchID	path		string	true	"Batch ID"
//	@Success		200		{string}	string	"Event stream. Data will be sent as SSE events with format: 'event: {eventType}\ndata: {jsonData}'"
//	@Router			/v1/bulk-notifications/{batchID}/stream [get]
func (server *Server) streamBatchEvents(c *gin.Context) {
	topic := event.BatchTopic(c.Param("batchID"))
	
	// SSE headers
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()
	
	clientChan := make(chan event.Event, 16)
	server.eventSender.Register(topic, clientChan)
	defer server.eventSender.Unregister(topic, clientChan)
	
	keepAlive := time.NewTicker(sseKeepAliveInterval)
	defer keepAlive.Stop()
	
	for {
		select {
		case e, ok := <-clientChan:
			if !ok {
				return
			}
			
			data, err := json.Marshal(e.Data)
			if err != nil {
				log.Err(err).Str("topic", topic).Msg("failed to encode event")
				continue
			}
			c.SSEvent(e.Type, string(data))
			c.Writer.Flush()
			
			if e.Type == event.EventTypeBatchCompleted {
				return
			}
		case <-keepAlive.C:
			_, _ = c.Writer.Write([]byte(": keep-alive\n\n"))
			c.Writer.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}
