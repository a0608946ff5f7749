package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueRecalculo = "jobs:recalculo"
	QueueEmail     = "jobs:email"

	JobRecalculo = "recalculo"
	JobEmail     = "email"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueRecalculo pushes a full budget recalculation job.
func (d *Dispatcher) EnqueueRecalculo(ctx context.Context, payload RecalculoJobPayload) error {
	return d.enqueue(ctx, QueueRecalculo, JobRecalculo, payload)
}

// EnqueueEmail pushes an email job.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload EmailJobPayload) error {
	return d.enqueue(ctx, QueueEmail, JobEmail, payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	encoded, err := encodeJob(jobType, payload)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

func encodeJob(jobType string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Job{Type: jobType, Payload: data})
}

// JobHandler processes one decoded payload. A returned error sends the job
// to the dead letter queue.
type JobHandler interface {
	Process(ctx context.Context, raw json.RawMessage) error
}

// WorkerHandlers routes job types to their processors.
type WorkerHandlers struct {
	Recalculo JobHandler
	Email     JobHandler
}

func (h *WorkerHandlers) handler(jobType string) JobHandler {
	switch jobType {
	case JobRecalculo:
		return h.Recalculo
	case JobEmail:
		return h.Email
	default:
		return nil
	}
}

type dlqFunc func(ctx context.Context, queue, jobType string, payload json.RawMessage, reason string, attempts int)

type pool struct {
	rdb      *redis.Client
	handlers *WorkerHandlers
	paraDLQ  dlqFunc
}

// StartWorkerPool launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP, so idle workers cost no CPU.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, numWorkers int) {
	p := &pool{
		rdb:      rdb,
		handlers: handlers,
		paraDLQ: func(ctx context.Context, queue, jobType string, payload json.RawMessage, reason string, attempts int) {
			SendToDLQ(ctx, rdb, queue, jobType, payload, reason, attempts)
		},
	}
	for i := 0; i < numWorkers; i++ {
		go p.run(ctx, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func (p *pool) run(ctx context.Context, id int) {
	queues := []string{QueueRecalculo, QueueEmail}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop, waits up to 5s then loops to check ctx
			result, err := p.rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue
			}
			if len(result) < 2 {
				continue
			}
			p.processJob(ctx, result[0], result[1])
		}
	}
}

func (p *pool) processJob(ctx context.Context, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		quoted, _ := json.Marshal(raw)
		p.paraDLQ(ctx, queue, "", quoted, "invalid envelope: "+err.Error(), 0)
		return
	}

	h := p.handlers.handler(job.Type)
	if h == nil {
		log.Warn().Str("type", job.Type).Str("queue", queue).Msg("no handler for job type")
		p.paraDLQ(ctx, queue, job.Type, job.Payload, "unknown job type", 0)
		return
	}

	log.Info().Str("type", job.Type).Str("queue", queue).Msg("processing job")
	if err := h.Process(ctx, job.Payload); err != nil {
		p.paraDLQ(ctx, queue, job.Type, job.Payload, err.Error(), MaxTentativasJob)
	}
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = base, 3 = 2*base.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, base time.Duration, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * base
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
