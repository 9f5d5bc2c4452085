package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"portfolio-analytics/internal/services"
)

func SetupRouter(dashboard *services.DashboardService, log zerolog.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(requestIDMiddleware)
	router.Use(loggingMiddleware(log))
	router.Use(recoveryMiddleware(log))

	dashboardHandler := NewDashboardHandler(dashboard)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(jsonContentTypeMiddleware)

	api.HandleFunc("/filters", dashboardHandler.GetFilters).Methods(http.MethodGet)
	api.HandleFunc("/overview", dashboardHandler.GetOverview).Methods(http.MethodGet)
	api.HandleFunc("/cashflow", dashboardHandler.GetCashflow).Methods(http.MethodGet)
	api.HandleFunc("/loan-schedule", dashboardHandler.GetLoanSchedule).Methods(http.MethodGet)
	api.HandleFunc("/rent-roll", dashboardHandler.GetRentRoll).Methods(http.MethodGet)
	api.HandleFunc("/sensitivity", dashboardHandler.GetSensitivity).Methods(http.MethodGet)

	router.HandleFunc("/health", healthCheckHandler).Methods(http.MethodGet)

	return router
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"status": "healthy",
	}
	respondWithJSON(w, http.StatusOK, response)
}
