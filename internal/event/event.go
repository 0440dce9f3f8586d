package event

// Event is a message pushed to every client subscribed to Topic.
type Event struct {
	Topic string // e.g. "bulk:2c9f..."
	Type  string
	Data  interface{}
}

const (
	EventTypeRecipientProcessed = "recipient_processed"
	EventTypeBatchCompleted     = "batch_completed"
)

// BatchTopic is the topic progress of one bulk dispatch is published on.
func BatchTopic(batchID string) string {
	return "bulk:" + batchID
}

// EventSender fans events out to the clients registered on a topic.
type EventSender interface {
	Register(topic string, client chan Event)
	Unregister(topic string, client chan Event)
	Broadcast(event Event)
	Run()
}
