package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboard"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

// GetDataset retorna os metadados do dataset publicado, carregando-o se preciso
func GetDataset(service dashboard.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dataset, err := service.Current(r.Context())
		if err != nil {
			writeDashboardError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, dataset.Info())
	}
}

// ReloadDataset recarrega o feed de forma síncrona. Em caso de falha o dataset anterior continua publicado.
func ReloadDataset(service dashboard.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("Recarga manual do dataset solicitada")

		dataset, err := service.Reload(r.Context())
		if err != nil {
			writeDashboardError(w, r, err)
			return
		}

		logger.WithDataset(dataset.ID).Info("Recarga manual concluída")
		writeJSON(w, r, http.StatusOK, dataset.Info())
	}
}
