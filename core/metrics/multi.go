package metrics

// MultiSink fans events out to several sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSearch forwards the event to all sinks, returning the first error.
func (m *MultiSink) RecordSearch(ev SearchEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordSearch(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordGeocode forwards geocode events to sinks that support them.
func (m *MultiSink) RecordGeocode(ev GeocodeEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(GeocodeRecorder); ok {
			if err := rec.RecordGeocode(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordScheduleChange forwards schedule events to sinks that support them.
func (m *MultiSink) RecordScheduleChange(ev ScheduleEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(ScheduleRecorder); ok {
			if err := rec.RecordScheduleChange(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
