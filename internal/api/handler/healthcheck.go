package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboard"
)

type HealthcheckResponse struct {
	Status        string    `json:"status"`
	Time          time.Time `json:"time"`
	DatasetLoaded bool      `json:"dataset_loaded"`
}

// HealthcheckHandler responde a sonda de liveness sem disparar carga do feed
func HealthcheckHandler(service dashboard.Dashboard) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, HealthcheckResponse{
			Status:        "ok",
			Time:          time.Now().UTC(),
			DatasetLoaded: service.Loaded(),
		})
	})
}
