// Package export writes schedules in formats caregivers can keep or share.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/MakerMama/afterschool-finder/core/model"
	"github.com/MakerMama/afterschool-finder/core/timeofday"
)

// CSVHeader lists the columns written by WriteCSV.
var CSVHeader = []string{
	"schedule", "day", "start_time", "end_time", "program", "provider",
	"category", "cost", "cost_per_class", "address", "contact_phone", "website",
}

// WriteJSON writes the labeled entries to w in JSON format.
func WriteJSON(w io.Writer, entries []model.LabeledEntry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// WriteCSV writes the labeled entries to w, one row per entry, in the order
// given.
func WriteCSV(w io.Writer, entries []model.LabeledEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, le := range entries {
		e := le.Entry
		rec := []string{
			le.SourceSchedule,
			e.Day.String(),
			timeofday.Format(e.Start),
			timeofday.Format(e.End),
			e.ProgramName,
			e.ProviderName,
			e.Category,
			formatCost(e.Cost),
			formatCost(e.CostPerClass),
			e.Address,
			e.ContactPhone,
			e.Website,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatCost(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
