package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MakerMama/afterschool-finder/core/model"
	"github.com/MakerMama/afterschool-finder/core/schedule"
	"github.com/MakerMama/afterschool-finder/pkg/export"
)

type ctxKey struct{}

func storeFrom(ctx context.Context) *schedule.Store {
	s, _ := ctx.Value(ctxKey{}).(*schedule.Store)
	return s
}

// withSession resolves {sid} to the session's schedule store.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st, ok := h.sessions.Get(chi.URLParam(r, "sid"))
		if !ok {
			writeError(w, http.StatusNotFound, "session not found or expired")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, st)))
	})
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	id, _ := h.sessions.Create()
	writeJSON(w, http.StatusCreated, map[string]string{"session_id": id})
}

type scheduleSummary struct {
	Name      string `json:"name"`
	Entries   int    `json:"entries"`
	Conflicts int    `json:"conflicts"`
}

func (h *Handler) listSchedules(w http.ResponseWriter, r *http.Request) {
	st := storeFrom(r.Context())
	names := st.Names()
	out := make([]scheduleSummary, 0, len(names))
	for _, n := range names {
		entries, _ := st.Get(n)
		out = append(out, scheduleSummary{Name: n, Entries: len(entries), Conflicts: len(st.Conflicts(n))})
	}
	writeJSON(w, http.StatusOK, out)
}

type createScheduleRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

type createScheduleResponse struct {
	Name  string          `json:"name"`
	Hints []schedule.Hint `json:"hints"`
}

func (h *Handler) createSchedule(w http.ResponseWriter, r *http.Request) {
	var req createScheduleRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	err := storeFrom(r.Context()).Create(req.Name)
	switch {
	case errors.Is(err, schedule.ErrDuplicateName):
		writeError(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, schedule.ErrEmptyName):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, createScheduleResponse{Name: req.Name, Hints: schedule.Validate(req.Name)})
}

type scheduleView struct {
	Name      string                `json:"name"`
	Entries   []model.ScheduleEntry `json:"entries"`
	Conflicts []model.Conflict      `json:"conflicts"`
}

func (h *Handler) getSchedule(w http.ResponseWriter, r *http.Request) {
	st := storeFrom(r.Context())
	name := pathParam(r, "name")
	entries, ok := st.Get(name)
	if !ok {
		writeError(w, http.StatusNotFound, "schedule not found")
		return
	}
	conflicts := st.Conflicts(name)
	if conflicts == nil {
		conflicts = []model.Conflict{}
	}
	writeJSON(w, http.StatusOK, scheduleView{Name: name, Entries: entries, Conflicts: conflicts})
}

func (h *Handler) deleteSchedule(w http.ResponseWriter, r *http.Request) {
	if !storeFrom(r.Context()).Delete(pathParam(r, "name")) {
		writeError(w, http.StatusNotFound, "schedule not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) conflicts(w http.ResponseWriter, r *http.Request) {
	st := storeFrom(r.Context())
	name := pathParam(r, "name")
	if _, ok := st.Get(name); !ok {
		writeError(w, http.StatusNotFound, "schedule not found")
		return
	}
	out := st.Conflicts(name)
	if out == nil {
		out = []model.Conflict{}
	}
	writeJSON(w, http.StatusOK, out)
}

type addEntryRequest struct {
	ProgramID string `json:"program_id" validate:"required"`
}

type addEntryResponse struct {
	Added bool                `json:"added"`
	Entry model.ScheduleEntry `json:"entry"`
}

// addEntry saves a catalog program. Saving the same session twice is not an
// error; the response reports added=false.
func (h *Handler) addEntry(w http.ResponseWriter, r *http.Request) {
	var req addEntryRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, ok := h.search.Program(req.ProgramID)
	if !ok {
		writeError(w, http.StatusNotFound, "program not found")
		return
	}
	entry := model.NewScheduleEntry(p)
	added := storeFrom(r.Context()).Add(pathParam(r, "name"), entry)
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, status, addEntryResponse{Added: added, Entry: entry})
}

// removeEntry drops the entry saved from program {id}. The entry is found in
// the schedule itself so removal works even if the catalog changed since.
func (h *Handler) removeEntry(w http.ResponseWriter, r *http.Request) {
	st := storeFrom(r.Context())
	name := pathParam(r, "name")
	id := pathParam(r, "id")
	entries, ok := st.Get(name)
	if !ok {
		writeError(w, http.StatusNotFound, "schedule not found")
		return
	}
	removed := false
	for _, e := range entries {
		if e.ProgramID == id {
			removed = st.Remove(name, e.Key())
			break
		}
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

type familyView struct {
	Schedules []string             `json:"schedules"`
	Entries   []model.LabeledEntry `json:"entries"`
}

// family returns every saved entry across the session's schedules.
// ?format=csv downloads the same view as a spreadsheet.
func (h *Handler) family(w http.ResponseWriter, r *http.Request) {
	st := storeFrom(r.Context())
	entries := st.Aggregate()
	if entries == nil {
		entries = []model.LabeledEntry{}
	}
	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="family-schedule.csv"`)
		if err := export.WriteCSV(w, entries); err != nil {
			h.log.Warnf("export family schedule: %v", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, familyView{Schedules: st.Names(), Entries: entries})
}

func (h *Handler) nameHints(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, schedule.Validate(r.URL.Query().Get("name")))
}
