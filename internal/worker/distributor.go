package worker

import (
	"context"
	
	"github.com/hibiken/asynq"
)

const (
	TaskSendBulk = "notification:send_bulk"
)

/*
This file will contain the codes to create tasks and distributes them to the Redis queue.
*/

type TaskDistributor interface {
	DistributeTaskSendBulk(ctx context.Context, payload *PayloadSendBulk, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type RedisTaskDistributor struct {
	client enqueuer // client sends tasks to redis queue.
}

func NewTaskDistributor(redisOpt asynq.RedisClientOpt) TaskDistributor {
	client := asynq.NewClient(redisOpt)
	
	return &RedisTaskDistributor{
		client: client,
	}
}
