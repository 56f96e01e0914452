package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-planner/internal/planner"
	"github.com/iliyamo/cinema-planner/internal/queue"
)

// writeTimeout bounds each mirror write so a stalled Redis cannot hold up the
// mutation that triggered it.
const writeTimeout = 500 * time.Millisecond

// SummaryConfig names the Redis keys the mirror writes.
type SummaryConfig struct {
	Key     string // hash with the latest counts
	Channel string // pub/sub channel receiving every event
}

// SummaryListener returns a planner listener that stores the latest counts
// under cfg.Key and publishes the event JSON on cfg.Channel. Failures are
// logged; the planner never sees them.
func SummaryListener(rdb *redis.Client, cfg SummaryConfig, log *zap.Logger) planner.Listener {
	if log == nil {
		log = zap.NewNop()
	}
	return func(ev planner.Event) {
		payload := queue.NewPlannerChangedEvent(ev)
		body, err := json.Marshal(payload)
		if err != nil {
			log.Error("redis mirror: marshal event failed", zap.Error(err))
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		_, err = rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, cfg.Key, summaryFields(payload))
			pipe.Publish(ctx, cfg.Channel, body)
			return nil
		})
		if err != nil {
			log.Warn("redis mirror: write failed",
				zap.String("event_id", ev.ID),
				zap.Error(err))
		}
	}
}

func summaryFields(ev queue.PlannerChangedEvent) map[string]any {
	return map[string]any{
		"event_id":    ev.EventID,
		"occurred_at": ev.OccurredAt,
		"cinemas":     ev.Cinemas,
		"movies":      ev.Movies,
		"tags":        ev.Tags,
	}
}
