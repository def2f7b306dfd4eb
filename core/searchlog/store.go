// Package searchlog keeps an audit trail of catalog searches. Records are
// used to see what caregivers look for and which searches come back empty.
package searchlog

import (
	"context"
	"time"

	"github.com/MakerMama/afterschool-finder/core/model"
)

// LogRecord captures one search and its outcome.
type LogRecord struct {
	ID           string               `json:"id"`
	Timestamp    time.Time            `json:"timestamp"`
	Criteria     model.FilterCriteria `json:"criteria"`
	Candidates   int                  `json:"candidates"`
	Matched      int                  `json:"matched"`
	ProgramIDs   []string             `json:"program_ids,omitempty"`
	HomeResolved bool                 `json:"home_resolved"`
	DurationMS   int64                `json:"duration_ms"`
}

// LogQuery defines filters for retrieving records. Zero fields match all.
type LogQuery struct {
	Start    time.Time
	End      time.Time
	Category string
	// EmptyOnly keeps searches that matched nothing.
	EmptyOnly bool
	// Limit caps the result to the most recent records.
	Limit int
}

// Match reports whether r satisfies every field of q except Limit.
func (q LogQuery) Match(r LogRecord) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.EmptyOnly && r.Matched > 0 {
		return false
	}
	if q.Category != "" {
		found := false
		for _, c := range r.Criteria.Categories {
			if c == q.Category {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (q LogQuery) limit(res []LogRecord) []LogRecord {
	if q.Limit > 0 && len(res) > q.Limit {
		return res[len(res)-q.Limit:]
	}
	return res
}

// LogStore persists LogRecords and supports querying.
type LogStore interface {
	Append(ctx context.Context, rec LogRecord) error
	Query(ctx context.Context, q LogQuery) ([]LogRecord, error)
	Close() error
}

// NopStore discards records.
type NopStore struct{}

func (NopStore) Append(context.Context, LogRecord) error              { return nil }
func (NopStore) Query(context.Context, LogQuery) ([]LogRecord, error) { return nil, nil }
func (NopStore) Close() error                                         { return nil }
