package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/MakerMama/afterschool-finder/core/searchlog"
)

// NewLogHandler returns an HTTP handler exposing the search log via GET /api/searches.
// Requests must include an Authorization header with "Bearer <token>" when token is non-empty.
func NewLogHandler(store searchlog.LogStore, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token != "" {
			auth := r.Header.Get("Authorization")
			if auth != "Bearer "+token {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
		}
		q := searchlog.LogQuery{}
		if s := r.URL.Query().Get("start"); s != "" {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				q.Start = t
			}
		}
		if s := r.URL.Query().Get("end"); s != "" {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				q.End = t
			}
		}
		q.Category = r.URL.Query().Get("category")
		if s := r.URL.Query().Get("empty_only"); s != "" {
			q.EmptyOnly, _ = strconv.ParseBool(s)
		}
		if s := r.URL.Query().Get("limit"); s != "" {
			if n, err := strconv.Atoi(s); err == nil && n > 0 {
				q.Limit = n
			}
		}
		records, err := store.Query(r.Context(), q)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if records == nil {
			records = []searchlog.LogRecord{}
		}
		writeJSON(w, http.StatusOK, records)
	})
}
