package api

import (
	"net/http"

	"github.com/MakerMama/afterschool-finder/core/catalog"
	"github.com/MakerMama/afterschool-finder/core/timeofday"
)

func (h *Handler) catalogSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Summarize(h.search.Catalog().Programs()))
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.UniqueCategories(h.search.Catalog().Programs()))
}

func (h *Handler) timeOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, timeofday.HourlyOptions())
}

func (h *Handler) program(w http.ResponseWriter, r *http.Request) {
	p, ok := h.search.Program(pathParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "program not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}
