package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"portfolio-analytics/internal/logger"
	"portfolio-analytics/internal/services"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// parseFilter reads the property, year and month query parameters and
// answers 400 when one is malformed.
func parseFilter(w http.ResponseWriter, r *http.Request) (services.Filter, bool) {
	query := r.URL.Query()
	filter, err := services.ParseFilter(query.Get("property"), query.Get("year"), query.Get("month"))
	if err != nil {
		rejectFilter(w, r, err)
		return services.Filter{}, false
	}
	return filter, true
}

func rejectFilter(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	log.Warn().Err(err).Str("query", r.URL.RawQuery).Msg("Rejected dashboard filter")

	if errors.Is(err, services.ErrInvalidFilter) {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondWithError(w, http.StatusInternalServerError, err.Error())
}

func (h *DashboardHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.dashboardService.Filters())
}

func (h *DashboardHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseFilter(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, h.dashboardService.Overview(filter))
}

func (h *DashboardHandler) GetCashflow(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseFilter(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, h.dashboardService.Cashflow(filter))
}

func (h *DashboardHandler) GetLoanSchedule(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseFilter(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, h.dashboardService.LoanSchedule(filter))
}

func (h *DashboardHandler) GetRentRoll(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseFilter(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, h.dashboardService.RentRoll(filter))
}

func (h *DashboardHandler) GetSensitivity(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseFilter(w, r)
	if !ok {
		return
	}
	rate, err := services.ParseRate(r.URL.Query().Get("rate"))
	if err != nil {
		rejectFilter(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, h.dashboardService.Sensitivity(filter, rate))
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Error marshaling JSON response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
