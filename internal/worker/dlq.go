package worker

// dlq.go: jobs that exhaust their attempts are moved to a Redis list per
// source queue, dlq:{original_queue}, for manual inspection.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DLQPrefix = "dlq:"

// DLQEntry wraps a failed job with metadata for debugging.
type DLQEntry struct {
	OriginalQueue string          `json:"original_queue"`
	JobType       string          `json:"job_type"`
	Payload       json.RawMessage `json:"payload"`
	Reason        string          `json:"reason"`
	FailedAt      string          `json:"failed_at"` // ISO 8601
	Attempts      int             `json:"attempts"`
}

func novaEntradaDLQ(queue, jobType string, payload json.RawMessage, reason string, attempts int, agora time.Time) DLQEntry {
	if len(payload) == 0 {
		payload = json.RawMessage("null")
	}
	return DLQEntry{
		OriginalQueue: queue,
		JobType:       jobType,
		Payload:       payload,
		Reason:        reason,
		FailedAt:      agora.UTC().Format(time.RFC3339),
		Attempts:      attempts,
	}
}

// SendToDLQ pushes a failed job to the dead letter queue.
func SendToDLQ(ctx context.Context, rdb *redis.Client, queue string, jobType string, payload json.RawMessage, reason string, attempts int) {
	data, err := json.Marshal(novaEntradaDLQ(queue, jobType, payload, reason, attempts, time.Now()))
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: failed to marshal entry")
		return
	}

	dlqKey := DLQPrefix + queue
	if err := rdb.LPush(ctx, dlqKey, data).Err(); err != nil {
		log.Error().Err(err).Str("dlq_key", dlqKey).Msg("dlq: failed to push to DLQ")
		return
	}

	log.Warn().
		Str("queue", queue).
		Str("job_type", jobType).
		Str("reason", reason).
		Int("attempts", attempts).
		Msg("dlq: job moved to dead letter queue")
}

// DLQLength returns the number of entries in a DLQ, reported by /health.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+queue).Result()
}

// FilasMonitoradas are the queues whose DLQs are exposed for inspection.
var FilasMonitoradas = []string{QueueRecalculo, QueueEmail, QueueSincronizacao}

// ListarDLQ returns up to limite entries of a DLQ, newest first. Entries that
// no longer decode are skipped.
func ListarDLQ(ctx context.Context, rdb *redis.Client, queue string, limite int64) ([]DLQEntry, error) {
	if limite <= 0 {
		limite = 50
	}
	brutos, err := rdb.LRange(ctx, DLQPrefix+queue, 0, limite-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]DLQEntry, 0, len(brutos))
	for _, b := range brutos {
		var e DLQEntry
		if err := json.Unmarshal([]byte(b), &e); err != nil {
			log.Warn().Err(err).Str("queue", queue).Msg("dlq: undecodable entry")
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
