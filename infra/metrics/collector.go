package metrics

import (
	"context"

	coremetrics "github.com/MakerMama/afterschool-finder/core/metrics"
	"github.com/MakerMama/afterschool-finder/core/schedule"
	"github.com/MakerMama/afterschool-finder/infra/logger"
	"github.com/MakerMama/afterschool-finder/internal/eventbus"
)

// StartScheduleCollector subscribes to schedule events and forwards them to
// sink when it records schedule changes. It stops when the context is
// canceled or the bus is closed; the returned channel is closed then.
func StartScheduleCollector(ctx context.Context, bus *eventbus.TypedBus[schedule.Event], sink coremetrics.MetricsSink) <-chan struct{} {
	done := make(chan struct{})
	rec, ok := sink.(coremetrics.ScheduleRecorder)
	if bus == nil || !ok {
		close(done)
		return done
	}
	log := logger.New("schedule-collector")
	sub := bus.Subscribe()
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if err := rec.RecordScheduleChange(coremetrics.ScheduleEvent{
					Action:   string(ev.Kind),
					Schedule: ev.Schedule,
					Time:     ev.Time,
				}); err != nil {
					log.Warnf("record schedule change: %v", err)
				}
			}
		}
	}()
	return done
}
