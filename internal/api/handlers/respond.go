package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fundlens/backend/internal/contracts"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// periodTypeParam reads the period_type query parameter, defaulting to
// quarterly. The second return is false for unknown cadences.
func periodTypeParam(r *http.Request) (contracts.PeriodType, bool) {
	raw := r.URL.Query().Get("period_type")
	if raw == "" {
		return contracts.PeriodQuarterly, true
	}

	periodType := contracts.PeriodType(raw)
	if !periodType.Valid() {
		return "", false
	}
	return periodType, true
}

// optionalParam returns a pointer to the query parameter value, or nil
// when absent. Nil selects "across all" for benchmark dimensions.
func optionalParam(r *http.Request, name string) *string {
	if !r.URL.Query().Has(name) {
		return nil
	}
	value := r.URL.Query().Get(name)
	return &value
}
