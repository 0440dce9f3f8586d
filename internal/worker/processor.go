package worker

import (
	"context"
	
	"github.com/hibiken/asynq"
	"github.com/katatrina/notify-admin/internal/delivery"
	"github.com/rs/zerolog/log"
)

/*
 This file contains code that will pick up the tasks from the Redis queue and process them.
*/

const (
	QueueCritical = "critical"
	QueueDefault  = "default"
)

// BulkSender runs bulk dispatches on behalf of queued jobs.
type BulkSender interface {
	SendBulk(ctx context.Context, req delivery.BulkRequest) (delivery.BulkResult, error)
	SendToAll(ctx context.Context, req delivery.BulkRequest) (delivery.BulkResult, error)
}

type RedisTaskProcessor struct {
	server *asynq.Server
	sender BulkSender
}

func NewRedisTaskProcessor(redisOpt asynq.RedisClientOpt, sender BulkSender) *RedisTaskProcessor {
	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			// A bulk job is a long sequential loop; a single worker keeps provider load bounded.
			Concurrency: 1,
			Queues: map[string]int{
				QueueCritical: 10,
				QueueDefault:  5,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error().Err(err).Str("type", task.Type()).
					Bytes("payload", task.Payload()).Msg("process task failed")
			}),
			Logger: NewLogger(),
		},
	)
	
	return &RedisTaskProcessor{
		server: server,
		sender: sender,
	}
}

// Start registers the task handlers for the mux, attaches the mux to the asynq server, and starts the server.
func (processor *RedisTaskProcessor) Start() error {
	mux := asynq.NewServeMux()
	
	mux.HandleFunc(TaskSendBulk, processor.ProcessTaskSendBulk)
	
	return processor.server.Start(mux)
}

func (processor *RedisTaskProcessor) Shutdown() {
	processor.server.Shutdown()
}
