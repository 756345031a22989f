package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboard"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
	"github.com/vfg2006/sales-dashboard-api/pkg/middleware"
)

func adminOnly(authenticator authenticating.Authenticator) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequireAuth(authenticator),
		middleware.AdminOnly(),
	}
}

func Healthcheck(service dashboard.Dashboard, m *metrics.Metrics) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(service),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: m.Handler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
	}
}

func Dataset(service dashboard.Dashboard, authenticator authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dataset",
			Method:  http.MethodGet,
			Handler: GetDataset(service),
		},
		{
			Path:        "/v1/dataset/reload",
			Method:      http.MethodPost,
			Handler:     ReloadDataset(service),
			Middlewares: adminOnly(authenticator),
		},
	}
}

// Analytics são as consultas públicas do painel
func Analytics(service dashboard.Dashboard) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/filters/options",
			Method:  http.MethodGet,
			Handler: GetFilterOptions(service),
		},
		{
			Path:    "/v1/records",
			Method:  http.MethodGet,
			Handler: ListRecords(service),
		},
		{
			Path:    "/v1/summary",
			Method:  http.MethodGet,
			Handler: GetSummary(service),
		},
		{
			Path:    "/v1/views/:view",
			Method:  http.MethodGet,
			Handler: GetView(service),
		},
		{
			Path:    "/v1/pivots/:view",
			Method:  http.MethodGet,
			Handler: GetPivot(service),
		},
		{
			Path:    "/v1/pivots/:view/xlsx",
			Method:  http.MethodGet,
			Handler: ExportPivot(service),
		},
		{
			Path:    "/v1/aggregate",
			Method:  http.MethodGet,
			Handler: Aggregate(service),
		},
	}
}

func CronJobs(services CronJobServices, authenticator authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: adminOnly(authenticator),
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: adminOnly(authenticator),
		},
	}
}
