package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/MakerMama/afterschool-finder/core/model"
	"github.com/MakerMama/afterschool-finder/core/search"
	"github.com/MakerMama/afterschool-finder/core/timeofday"
)

// noHomeWarning is shown when an address was given but could not be located.
const noHomeWarning = "home address could not be located; results are shown without distances"

type searchRequest struct {
	ChildAge         *float64            `json:"child_age" validate:"omitempty,gte=0,lte=25"`
	GradeLevel       string              `json:"grade_level" validate:"max=32"`
	ProgramTypes     []model.ProgramType `json:"program_types" validate:"max=2"`
	Categories       []string            `json:"categories" validate:"max=50,dive,required,max=64"`
	Days             []model.Weekday     `json:"days" validate:"max=7"`
	EarliestStart    string              `json:"earliest_start"`
	LatestEnd        string              `json:"latest_end"`
	HomeAddress      string              `json:"home_address" validate:"max=256"`
	MaxDistanceMiles *float64            `json:"max_distance_miles" validate:"omitempty,gt=0,lte=500"`
}

// criteria converts the request into filter criteria. A time window is set
// when either bound is given; a missing bound stays Unknown and disables
// the time predicate.
func (req searchRequest) criteria() (model.FilterCriteria, error) {
	c := model.FilterCriteria{
		ChildAge:         req.ChildAge,
		GradeLevel:       strings.TrimSpace(req.GradeLevel),
		ProgramTypes:     req.ProgramTypes,
		Categories:       req.Categories,
		Days:             req.Days,
		HomeAddress:      strings.TrimSpace(req.HomeAddress),
		MaxDistanceMiles: req.MaxDistanceMiles,
	}
	if req.EarliestStart == "" && req.LatestEnd == "" {
		return c, nil
	}
	w := &model.TimeWindow{EarliestStart: timeofday.Unknown, LatestEnd: timeofday.Unknown}
	var err error
	if req.EarliestStart != "" {
		if w.EarliestStart, err = timeofday.ParseStrict(req.EarliestStart); err != nil {
			return c, fmt.Errorf("earliest_start: %w", err)
		}
	}
	if req.LatestEnd != "" {
		if w.LatestEnd, err = timeofday.ParseStrict(req.LatestEnd); err != nil {
			return c, fmt.Errorf("latest_end: %w", err)
		}
	}
	c.TimeWindow = w
	return c, nil
}

type searchResponse struct {
	search.Result
	Count   int    `json:"count"`
	Warning string `json:"warning,omitempty"`
}

func (h *Handler) runSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := req.criteria()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := h.search.Search(r.Context(), c)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			writeError(w, http.StatusServiceUnavailable, "search cancelled")
			return
		}
		h.log.Errorf("search: %v", err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	if res.Matches == nil {
		res.Matches = []model.Match{}
	}
	out := searchResponse{Result: res, Count: len(res.Matches)}
	if c.HomeAddress != "" && !res.HomeResolved {
		out.Warning = noHomeWarning
	}
	writeJSON(w, http.StatusOK, out)
}
