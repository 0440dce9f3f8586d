package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	
	"github.com/hibiken/asynq"
	"github.com/katatrina/notify-admin/internal/delivery"
	"github.com/rs/zerolog/log"
)

// Completed jobs and their results stay inspectable for this long.
const resultRetention = 24 * time.Hour

type BulkMode string

const (
	BulkModeRecipients BulkMode = "recipients"
	BulkModeAll        BulkMode = "all"
)

// PayloadSendBulk contain all data of the task that we want to store in Redis.
type PayloadSendBulk struct {
	Mode    BulkMode             `json:"mode"`
	Request delivery.BulkRequest `json:"request"`
}

// DistributeTaskSendBulk enqueues a bulk dispatch for immediate processing.
// The job gets exactly one attempt, like a synchronous send.
func (distributor *RedisTaskDistributor) DistributeTaskSendBulk(
	ctx context.Context,
	payload *PayloadSendBulk,
	opts ...asynq.Option,
) (*asynq.TaskInfo, error) {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal task payload: %w", err)
	}
	
	opts = append([]asynq.Option{
		asynq.MaxRetry(0),
		asynq.Queue(QueueDefault),
		asynq.Retention(resultRetention),
	}, opts...)
	
	task := asynq.NewTask(TaskSendBulk, jsonPayload, opts...)
	info, err := distributor.client.EnqueueContext(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue task: %w", err)
	}
	
	log.Info().Str("type", task.Type()).Str("task_id", info.ID).Str("batch_id", payload.Request.BatchID).
		Str("queue", info.Queue).Int("max_retry", info.MaxRetry).Msg("task enqueued")
	
	return info, nil
}

func (processor *RedisTaskProcessor) ProcessTaskSendBulk(
	ctx context.Context,
	task *asynq.Task,
) error {
	var payload PayloadSendBulk
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}
	
	var (
		result delivery.BulkResult
		err    error
	)
	switch payload.Mode {
	case BulkModeAll:
		result, err = processor.sender.SendToAll(ctx, payload.Request)
	default:
		result, err = processor.sender.SendBulk(ctx, payload.Request)
	}
	if err != nil {
		if errors.Is(err, delivery.ErrTemplateNotFound) || errors.Is(err, delivery.ErrNoRecipients) {
			return fmt.Errorf("%s: %w", err.Error(), asynq.SkipRetry)
		}
		return fmt.Errorf("failed to send bulk notifications: %w", err)
	}
	
	if writer := task.ResultWriter(); writer != nil {
		data, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to marshal bulk result: %w", err)
		}
		if _, err = writer.Write(data); err != nil {
			return fmt.Errorf("failed to write bulk result: %w", err)
		}
	}
	
	log.Info().Str("type", task.Type()).Str("batch_id", result.BatchID).
		Int("sent", result.SentCount).Int("failed", result.FailedCount).Msg("task processed")
	
	return nil
}
