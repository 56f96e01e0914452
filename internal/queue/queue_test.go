package queue

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/iliyamo/cinema-planner/internal/planner"
)

func sampleEvent(t *testing.T) planner.Event {
	t.Helper()
	var got planner.Event
	p := planner.New(planner.WithClock(func() time.Time {
		return time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("SGT", 8*3600))
	}))
	p.Subscribe(func(ev planner.Event) { got = ev })
	p.Reset(planner.SampleData())
	require.NotEmpty(t, got.ID)
	return got
}

func TestNewPlannerChangedEvent(t *testing.T) {
	ev := NewPlannerChangedEvent(sampleEvent(t))

	assert.Equal(t, "2024-01-01T19:04:05Z", ev.OccurredAt)
	assert.Equal(t, 4, ev.Cinemas)
	assert.Equal(t, 3, ev.Movies)
	assert.Equal(t, 9, ev.Tags)
	assert.Equal(t, []string{"west", "east", "imax", "northeast", "north", "scifi", "animation", "family", "thriller"}, ev.TagLabels)

	body, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"event_id":"`+ev.EventID+`"`)
}

func TestPublisher_ListenerDropsWhenFull(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	pub := NewPublisher("amqp://unused/", "q", 1, zap.New(core))
	l := pub.Listener()

	ev := sampleEvent(t)
	l(ev)
	l(ev) // buffer of one is already full

	assert.Len(t, pub.events, 1)
	assert.Equal(t, 1, logs.FilterMessage("rabbitmq: publish buffer full, dropping change event").Len())
}

func TestPublisher_RunPublishesAndSurvivesErrors(t *testing.T) {
	pub := NewPublisher("amqp://unused/", "q", 4, nil)

	var mu sync.Mutex
	var bodies [][]byte
	calls := 0
	done := make(chan struct{})
	pub.publish = func(_ context.Context, body []byte) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls == 1 {
			return errors.New("broker down")
		}
		bodies = append(bodies, body)
		if calls == 2 {
			close(done)
		}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go pub.Run(ctx)

	l := pub.Listener()
	ev := sampleEvent(t)
	l(ev)
	l(ev)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher did not deliver the second event")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, bodies, 1)
	var got PlannerChangedEvent
	require.NoError(t, json.Unmarshal(bodies[0], &got))
	assert.Equal(t, ev.ID, got.EventID)
}

func TestChangeLogConsumer_HandleMessage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	c := &ChangeLogConsumer{LogDir: dir}

	body, err := json.Marshal(PlannerChangedEvent{
		EventID:    "e-1",
		OccurredAt: "2024-01-01T00:00:00Z",
		Cinemas:    2,
		Movies:     1,
		Tags:       2,
		TagLabels:  []string{"imax", "gold"},
	})
	require.NoError(t, err)
	require.NoError(t, c.handleMessage(body))
	require.NoError(t, c.handleMessage(body))

	data, err := os.ReadFile(filepath.Join(dir, "planner.log"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t,
		"[2024-01-01T00:00:00Z] Planner changed | event_id=e-1 | cinemas=2 | movies=1 | tags=2 [imax,gold]",
		lines[0])
}

func TestChangeLogConsumer_RejectsBadPayloads(t *testing.T) {
	c := &ChangeLogConsumer{LogDir: t.TempDir()}
	assert.Error(t, c.handleMessage([]byte("{not json")))
	assert.Error(t, c.handleMessage([]byte(`{"cinemas":1}`)))
}

func TestChangeLogConsumer_RunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := &ChangeLogConsumer{URL: "amqp://127.0.0.1:1/", QueueName: "q"}
	assert.ErrorIs(t, c.Run(ctx), context.Canceled)
}

func TestFormatLine_NoTags(t *testing.T) {
	line := formatLine(PlannerChangedEvent{EventID: "x", OccurredAt: "t"})
	assert.True(t, strings.HasSuffix(line, "tags=0 []\n"))
}
