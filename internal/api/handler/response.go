package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/analyzing"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboard"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
	}
}

// writeDashboardError traduz os erros do painel para os códigos da API
func writeDashboardError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.ForContext(r.Context()).WithError(err)

	var malformed *domain.MalformedNumberError
	var missing *domain.MissingColumnError

	switch {
	case errors.As(err, &malformed):
		logger.Warn("Feed de vendas com número inválido")
		apiErrors.WriteError(w, apiErrors.ErrMalformedData, "Valor numérico inválido no feed de vendas", map[string]any{
			"column": malformed.Column,
			"line":   malformed.Line,
			"value":  malformed.Value,
		})

	case errors.As(err, &missing):
		logger.Warn("Feed de vendas sem coluna obrigatória")
		apiErrors.WriteError(w, apiErrors.ErrMissingColumn, "Coluna obrigatória ausente no feed de vendas", map[string]any{
			"column": missing.Column,
		})

	case errors.Is(err, domain.ErrFetchFailure):
		logger.Error("Feed de vendas indisponível")
		apiErrors.WriteError(w, apiErrors.ErrExternalService, "Não foi possível obter o feed de vendas", nil)

	case errors.Is(err, domain.ErrDatasetUnavailable):
		logger.Warn("Requisição encerrada antes da carga do dataset")
		apiErrors.WriteError(w, apiErrors.ErrCommunication, "Dataset ainda em carga", nil)

	case errors.Is(err, dashboard.ErrUnknownView):
		apiErrors.WriteError(w, apiErrors.ErrNotFound, err.Error(), nil)

	case errors.Is(err, analyzing.ErrInvalidField),
		errors.Is(err, analyzing.ErrInvalidMeasure),
		errors.Is(err, analyzing.ErrInvalidOp):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)

	default:
		logger.Error("Erro inesperado no painel")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao consultar o painel", nil)
	}
}
