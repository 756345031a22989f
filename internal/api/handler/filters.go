package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboard"
)

// parseFilterQuery lê region, retailer, product e sales_method da query string.
// Vários valores vêm com o parâmetro repetido (region=West&region=South); vírgula faz parte do valor.
// Parâmetro ausente não restringe; presente e vazio (region=) não aceita nenhum valor.
func parseFilterQuery(values url.Values) domain.FilterQuery {
	query := domain.FilterQuery{}

	for _, dim := range domain.Dimensions {
		raw, present := values[string(dim)]
		if !present {
			continue
		}

		selected := []string{}
		for _, v := range raw {
			if v = strings.TrimSpace(v); v != "" {
				selected = append(selected, v)
			}
		}
		query[dim] = selected
	}

	return query
}

// GetFilterOptions lista os valores distintos de cada dimensão do dataset atual
func GetFilterOptions(service dashboard.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		options, err := service.FilterOptions(r.Context())
		if err != nil {
			writeDashboardError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, options)
	}
}
