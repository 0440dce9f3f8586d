package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	
	"github.com/hibiken/asynq"
	"github.com/katatrina/notify-admin/internal/delivery"
)

type TaskInspector interface {
	DeleteTask(ctx context.Context, queue, taskID string) error
	GetTaskInfo(ctx context.Context, queue, taskID string) (*asynq.TaskInfo, error)
}

type RedisTaskInspector struct {
	inspector *asynq.Inspector
}

func NewTaskInspector(redisOpt asynq.RedisClientOpt) TaskInspector {
	return &RedisTaskInspector{
		inspector: asynq.NewInspector(redisOpt),
	}
}

func (i *RedisTaskInspector) DeleteTask(ctx context.Context, queue, taskID string) error {
	return i.inspector.DeleteTask(queue, taskID)
}

func (i *RedisTaskInspector) GetTaskInfo(ctx context.Context, queue, taskID string) (*asynq.TaskInfo, error) {
	return i.inspector.GetTaskInfo(queue, taskID)
}

// JobStatus is the externally visible state of a queued bulk dispatch.
type JobStatus struct {
	JobID       string               `json:"jobId"`
	Queue       string               `json:"queue"`
	State       string               `json:"state"`
	BatchID     string               `json:"batchId,omitempty"`
	LastError   string               `json:"lastError,omitempty"`
	CompletedAt *time.Time           `json:"completedAt,omitempty"`
	Result      *delivery.BulkResult `json:"result,omitempty"`
}

// NewJobStatus decodes the payload and, once the job completed, its result.
func NewJobStatus(info *asynq.TaskInfo) (*JobStatus, error) {
	status := &JobStatus{
		JobID:     info.ID,
		Queue:     info.Queue,
		State:     info.State.String(),
		LastError: info.LastErr,
	}
	
	var payload PayloadSendBulk
	if err := json.Unmarshal(info.Payload, &payload); err == nil {
		status.BatchID = payload.Request.BatchID
	}
	
	if info.State == asynq.TaskStateCompleted {
		completedAt := info.CompletedAt
		status.CompletedAt = &completedAt
		
		if len(info.Result) > 0 {
			var result delivery.BulkResult
			if err := json.Unmarshal(info.Result, &result); err != nil {
				return nil, fmt.Errorf("failed to decode job result: %w", err)
			}
			status.Result = &result
		}
	}
	
	return status, nil
}
