package event

import (
	"sync"
	"time"
	
	"github.com/rs/zerolog/log"
)

const (
	clientSendTimeout = time.Second
	
	// How long a finished batch's last event is replayed to late subscribers.
	completedRetention = 15 * time.Minute
)

type completedTopic struct {
	event Event
	at    time.Time
}

type SSEServer struct {
	clients   map[string]map[chan Event]bool
	completed map[string]completedTopic
	events    chan Event
	mu        sync.Mutex
	now       func() time.Time
}

func NewSSEServer() *SSEServer {
	return &SSEServer{
		clients:   make(map[string]map[chan Event]bool),
		completed: make(map[string]completedTopic),
		events:    make(chan Event, 256),
		now:       time.Now,
	}
}

// Register subscribes client to topic. If the topic already finished, its
// completion event is handed to client right away.
func (s *SSEServer) Register(topic string, client chan Event) {
	s.mu.Lock()
	if _, ok := s.clients[topic]; !ok {
		s.clients[topic] = make(map[chan Event]bool)
	}
	s.clients[topic][client] = true
	total := len(s.clients[topic])
	
	if done, ok := s.completed[topic]; ok {
		select {
		case client <- done.event:
		default:
			log.Warn().Str("topic", topic).Msg("client buffer full, completion replay skipped")
		}
	}
	s.mu.Unlock()
	log.Info().Msgf("New client registered to topic %s. Total clients: %d", topic, total)
}

// Unregister removes client from topic and closes it.
func (s *SSEServer) Unregister(topic string, client chan Event) {
	s.mu.Lock()
	remaining := 0
	if clients, ok := s.clients[topic]; ok {
		if clients[client] {
			delete(clients, client)
			close(client)
		}
		remaining = len(clients)
		if remaining == 0 {
			delete(s.clients, topic)
		}
	}
	s.mu.Unlock()
	log.Info().Msgf("Client unregistered from topic %s. Remaining clients: %d", topic, remaining)
}

// Broadcast queues event for delivery. It drops the event when the queue is full
// so a slow dashboard can never stall a dispatch.
func (s *SSEServer) Broadcast(event Event) {
	select {
	case s.events <- event:
	default:
		log.Warn().Str("topic", event.Topic).Str("type", event.Type).Msg("event queue full, dropping event")
	}
}

// Run delivers queued events until the process exits.
func (s *SSEServer) Run() {
	for event := range s.events {
		s.deliver(event)
	}
}

func (s *SSEServer) deliver(event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	
	if event.Type == EventTypeBatchCompleted {
		s.rememberCompleted(event)
	}
	
	for client := range s.clients[event.Topic] {
		select {
		case client <- event:
		case <-time.After(clientSendTimeout):
			log.Warn().Str("topic", event.Topic).Msg("client too slow, event skipped")
		}
	}
}

// rememberCompleted keeps event for late subscribers and forgets expired ones.
// Callers hold s.mu.
func (s *SSEServer) rememberCompleted(event Event) {
	now := s.now()
	for topic, done := range s.completed {
		if now.Sub(done.at) > completedRetention {
			delete(s.completed, topic)
		}
	}
	
	s.completed[event.Topic] = completedTopic{event: event, at: now}
}
