// Package metrics registra os coletores prometheus da API
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resultados de uma carga de dataset
const (
	LoadSuccess  = "success"
	LoadCacheHit = "cache_hit"
	LoadFailure  = "failure"
)

type Metrics struct {
	registry *prometheus.Registry

	DatasetLoads    *prometheus.CounterVec
	DatasetCacheHit prometheus.Counter
	DroppedRows     prometheus.Gauge
	Records         prometheus.Gauge
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
}

// New cria os coletores em um registro próprio
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		DatasetLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sales_dataset_loads_total",
			Help: "Cargas do dataset de vendas por resultado",
		}, []string{"result"}),
		DatasetCacheHit: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sales_dataset_cache_hits_total",
			Help: "Cargas atendidas pelo cache de datasets",
		}),
		DroppedRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sales_dataset_dropped_rows",
			Help: "Linhas descartadas na última carga",
		}),
		Records: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sales_dataset_records",
			Help: "Registros no dataset atual",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Requisições HTTP por método e status",
		}, []string{"method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duração das requisições HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.DatasetLoads,
		m.DatasetCacheHit,
		m.DroppedRows,
		m.Records,
		m.HTTPRequests,
		m.HTTPDuration,
	)

	return m
}

// Handler expõe o registro no formato texto do prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest registra uma requisição HTTP finalizada
func (m *Metrics) ObserveRequest(method string, status int, duration time.Duration) {
	m.HTTPRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method).Observe(duration.Seconds())
}
