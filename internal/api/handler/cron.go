package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

// Tipos de cron job executáveis manualmente
const (
	CronJobTypeDatasetRefresh = "dataset-refresh"
	CronJobTypeAll            = "all"
)

// CronJob é um agendador que aceita execução manual
type CronJob interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron disponíveis para execução manual
type CronJobServices struct {
	DatasetRefreshService CronJob
}

func (s CronJobServices) jobs() map[string]CronJob {
	jobs := map[string]CronJob{}
	if s.DatasetRefreshService != nil {
		jobs[CronJobTypeDatasetRefresh] = s.DatasetRefreshService
	}
	return jobs
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		jobs := services.jobs()

		var selected map[string]CronJob
		if cronType == CronJobTypeAll {
			selected = jobs
		} else if job, ok := jobs[cronType]; ok {
			selected = map[string]CronJob{cronType: job}
		} else {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: dataset-refresh, all", nil)
			return
		}

		started := map[string]bool{}
		anyStarted := false
		for name, job := range selected {
			started[name] = job.TriggerManualSync()
			anyStarted = anyStarted || started[name]
		}

		log.ForContext(r.Context()).WithField("type", cronType).Info("Execução manual de cron job solicitada")

		if !anyStarted {
			apiErrors.WriteError(w, apiErrors.ErrSyncInProgress, "Cron job já em execução", started)
			return
		}

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
			"started": started,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		for name, job := range services.jobs() {
			status[name] = job.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}
