package metrics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	coremetrics "github.com/MakerMama/afterschool-finder/core/metrics"
	"github.com/MakerMama/afterschool-finder/core/schedule"
	"github.com/MakerMama/afterschool-finder/internal/eventbus"
)

type scheduleSink struct {
	coremetrics.NopSink
	mu      sync.Mutex
	actions []string
}

func (s *scheduleSink) RecordScheduleChange(ev coremetrics.ScheduleEvent) error {
	s.mu.Lock()
	s.actions = append(s.actions, ev.Action+":"+ev.Schedule)
	s.mu.Unlock()
	return nil
}

func TestStartScheduleCollector(t *testing.T) {
	bus := eventbus.NewTyped[schedule.Event]()
	sink := &scheduleSink{}
	ctx, cancel := context.WithCancel(context.Background())
	done := StartScheduleCollector(ctx, bus, sink)

	store := schedule.NewStore(schedule.WithEvents(bus))
	assert.NoError(t, store.Create("Ami"))
	store.Delete("Ami")

	assert.Eventually(t, func() bool {
		sink.mu.Lock()
		defer sink.mu.Unlock()
		return len(sink.actions) == 2
	}, time.Second, 10*time.Millisecond)
	cancel()
	<-done
	assert.Equal(t, []string{"created:Ami", "deleted:Ami"}, sink.actions)
}

func TestStartScheduleCollectorWithoutRecorder(t *testing.T) {
	bus := eventbus.NewTyped[schedule.Event]()
	done := StartScheduleCollector(context.Background(), bus, searchOnlySink{})
	<-done
}

type searchOnlySink struct{}

func (searchOnlySink) RecordSearch(coremetrics.SearchEvent) error { return nil }
