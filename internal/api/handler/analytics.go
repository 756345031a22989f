package handler

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboard"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/exporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

const defaultRecordsLimit = 100

type RecordsResponse struct {
	Total   int                  `json:"total"`
	Offset  int                  `json:"offset"`
	Limit   int                  `json:"limit"`
	Empty   bool                 `json:"empty"`
	Records []domain.SalesRecord `json:"records"`
}

type ViewResponse struct {
	View  dashboard.View `json:"view"`
	Empty bool           `json:"empty"`
	Data  any            `json:"data"`
}

type PivotResponse struct {
	View  dashboard.PivotView `json:"view"`
	Empty bool                `json:"empty"`
	*domain.PivotTable
}

type AggregateResponse struct {
	Empty bool `json:"empty"`
	*domain.AggregateTable
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterValidation("groupfield", func(fl validator.FieldLevel) bool {
		return domain.Field(fl.Field().String()).Valid()
	})
	v.RegisterValidation("measure", func(fl validator.FieldLevel) bool {
		return domain.Measure(fl.Field().String()).Valid()
	})

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// ListRecords retorna os registros filtrados, paginados por limit e offset
func ListRecords(service dashboard.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()

		limit, err := intParam(params.Get("limit"), defaultRecordsLimit)
		if err != nil || limit < 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro limit inválido", nil)
			return
		}
		offset, err := intParam(params.Get("offset"), 0)
		if err != nil || offset < 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro offset inválido", nil)
			return
		}

		records, err := service.Records(r.Context(), parseFilterQuery(params))
		if err != nil {
			writeDashboardError(w, r, err)
			return
		}

		page := []domain.SalesRecord{}
		if offset < len(records) {
			end := len(records)
			if limit < end-offset {
				end = offset + limit
			}
			page = records[offset:end]
		}

		writeJSON(w, r, http.StatusOK, RecordsResponse{
			Total:   len(records),
			Offset:  offset,
			Limit:   limit,
			Empty:   len(records) == 0,
			Records: page,
		})
	}
}

// GetSummary retorna os indicadores do conjunto filtrado
func GetSummary(service dashboard.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := service.Summary(r.Context(), parseFilterQuery(r.URL.Query()))
		if err != nil {
			writeDashboardError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, summary)
	}
}

func GetView(service dashboard.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := dashboard.View(httprouter.ParamsFromContext(r.Context()).ByName("view"))

		data, err := service.View(r.Context(), view, parseFilterQuery(r.URL.Query()))
		if err != nil {
			writeDashboardError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, ViewResponse{
			View:  view,
			Empty: reflect.ValueOf(data).Len() == 0,
			Data:  data,
		})
	}
}

func GetPivot(service dashboard.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := dashboard.PivotView(httprouter.ParamsFromContext(r.Context()).ByName("view"))

		pivot, err := service.Pivot(r.Context(), view, parseFilterQuery(r.URL.Query()))
		if err != nil {
			writeDashboardError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, PivotResponse{
			View:       view,
			Empty:      pivot.Empty(),
			PivotTable: pivot,
		})
	}
}

// ExportPivot devolve a tabela cruzada como planilha xlsx
func ExportPivot(service dashboard.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := dashboard.PivotView(httprouter.ParamsFromContext(r.Context()).ByName("view"))

		pivot, err := service.Pivot(r.Context(), view, parseFilterQuery(r.URL.Query()))
		if err != nil {
			writeDashboardError(w, r, err)
			return
		}

		data, err := exporting.PivotWorkbook(pivot, string(view))
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao gerar planilha")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar planilha", nil)
			return
		}

		w.Header().Set("Content-Type", exporting.ContentTypeXLSX)
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, view))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(data); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar planilha")
		}
	}
}

// Aggregate executa uma agregação livre: group_by, measure, op, sort e limit vêm da query string
func Aggregate(service dashboard.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()

		req, err := parseAggregateRequest(params)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		if err := validate.Struct(req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Parâmetros de agregação inválidos", validationDetails(err))
			return
		}

		table, err := service.Aggregate(r.Context(), parseFilterQuery(params), req)
		if err != nil {
			writeDashboardError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, AggregateResponse{
			Empty:          len(table.Rows) == 0,
			AggregateTable: table,
		})
	}
}

func parseAggregateRequest(params map[string][]string) (domain.AggregateRequest, error) {
	req := domain.AggregateRequest{
		Measure: domain.Measure(firstParam(params, "measure")),
		Op:      domain.AggregateOp(firstParam(params, "op")),
		Sort:    firstParam(params, "sort"),
	}

	for _, v := range params["group_by"] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				req.GroupBy = append(req.GroupBy, domain.Field(part))
			}
		}
	}

	limit, err := intParam(firstParam(params, "limit"), 0)
	if err != nil {
		return req, errors.New("parâmetro limit inválido")
	}
	req.Limit = limit

	return req, nil
}

func validationDetails(err error) []map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []map[string]string{{"message": err.Error()}}
	}

	details := make([]map[string]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		details = append(details, map[string]string{
			"field": fe.Field(),
			"rule":  fe.Tag(),
			"value": fmt.Sprint(fe.Value()),
		})
	}
	return details
}

func firstParam(params map[string][]string, key string) string {
	if values := params[key]; len(values) > 0 {
		return strings.TrimSpace(values[0])
	}
	return ""
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
