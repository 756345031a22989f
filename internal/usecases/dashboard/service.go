package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/salesfeed"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/analyzing"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/ingesting"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
	"golang.org/x/sync/singleflight"
)

//go:generate mockgen -source=service.go -destination=mocks/dashboard_mock.go -package=mocks

const (
	datasetIDSize        = 12
	cacheCleanupInterval = 10 * time.Minute
	reloadKey            = "reload"
)

type Dashboard interface {
	Reload(ctx context.Context) (*domain.Dataset, error)
	Current(ctx context.Context) (*domain.Dataset, error)
	Loaded() bool
	FilterOptions(ctx context.Context) (domain.FilterOptions, error)
	Records(ctx context.Context, query domain.FilterQuery) ([]domain.SalesRecord, error)
	Summary(ctx context.Context, query domain.FilterQuery) (domain.Summary, error)
	View(ctx context.Context, view View, query domain.FilterQuery) (any, error)
	Pivot(ctx context.Context, pivot PivotView, query domain.FilterQuery) (*domain.PivotTable, error)
	Aggregate(ctx context.Context, query domain.FilterQuery, req domain.AggregateRequest) (*domain.AggregateTable, error)
}

type Service struct {
	cfg     *config.Config
	source  salesfeed.FeedIntegrator
	cache   *cache.Cache
	group   singleflight.Group
	current atomic.Pointer[domain.Dataset]
	metrics *metrics.Metrics
}

func NewService(cfg *config.Config, source salesfeed.FeedIntegrator, m *metrics.Metrics) *Service {
	return &Service{
		cfg:     cfg,
		source:  source,
		cache:   cache.New(cfg.Dataset.CacheTTL, cacheCleanupInterval),
		metrics: m,
	}
}

// Reload busca o feed e publica um novo dataset. Cargas simultâneas são agrupadas em uma só.
// Em caso de falha o dataset anterior continua valendo.
// A carga compartilhada não é cancelada junto com o contexto de quem a iniciou;
// cada chamador só deixa de esperar quando o próprio contexto termina.
func (s *Service) Reload(ctx context.Context) (*domain.Dataset, error) {
	ch := s.group.DoChan(reloadKey, func() (any, error) {
		return s.load(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		logrus.WithError(ctx.Err()).Debug("Chamador desistiu de aguardar a recarga do dataset")
		return nil, fmt.Errorf("%w: %w", domain.ErrDatasetUnavailable, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			logrus.Debug("Recarga do dataset compartilhada com outra requisição")
		}
		return res.Val.(*domain.Dataset), nil
	}
}

// Current retorna o dataset publicado, carregando na primeira chamada.
// Com DATASET_RELOAD_PER_REQUEST ativo, recarrega a cada chamada.
func (s *Service) Current(ctx context.Context) (*domain.Dataset, error) {
	if s.cfg.Dataset.ReloadPerRequest {
		return s.Reload(ctx)
	}

	if dataset := s.current.Load(); dataset != nil {
		return dataset, nil
	}

	return s.Reload(ctx)
}

// Loaded indica se já existe um dataset publicado
func (s *Service) Loaded() bool {
	return s.current.Load() != nil
}

func (s *Service) load(ctx context.Context) (*domain.Dataset, error) {
	start := time.Now()

	raw, err := s.source.Fetch(ctx)
	if err != nil {
		s.recordFailure(err, "Erro ao obter o feed de vendas")
		return nil, err
	}

	if cached, found := s.cache.Get(raw.ContentHash); found {
		dataset := cached.(*domain.Dataset)
		s.publish(dataset)
		s.metrics.DatasetLoads.WithLabelValues(metrics.LoadCacheHit).Inc()
		s.metrics.DatasetCacheHit.Inc()

		logrus.WithFields(logrus.Fields{
			"dataset_id":   dataset.ID,
			"content_hash": raw.ContentHash,
		}).Info("Dataset reaproveitado do cache")

		return dataset, nil
	}

	result, err := ingesting.ParseTable(raw.Table)
	if err != nil {
		s.recordFailure(err, "Erro ao normalizar o feed de vendas")
		return nil, err
	}

	id, err := utils.GenerateID(datasetIDSize)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id do dataset: %w", err)
	}

	dataset := &domain.Dataset{
		ID:          id,
		Source:      raw.Name,
		ContentHash: raw.ContentHash,
		LoadedAt:    time.Now().UTC(),
		Records:     result.Records,
		Dropped:     result.Dropped,
	}

	s.cache.SetDefault(raw.ContentHash, dataset)
	s.publish(dataset)
	s.metrics.DatasetLoads.WithLabelValues(metrics.LoadSuccess).Inc()

	entry := logrus.WithFields(logrus.Fields{
		"dataset_id": dataset.ID,
		"source":     dataset.Source,
		"records":    len(dataset.Records),
		"dropped":    len(dataset.Dropped),
		"duration":   time.Since(start).String(),
	})
	if len(dataset.Dropped) > 0 {
		entry.Warn("Dataset carregado com linhas descartadas por data inválida")
	} else {
		entry.Info("Dataset carregado")
	}

	return dataset, nil
}

func (s *Service) publish(dataset *domain.Dataset) {
	s.current.Store(dataset)
	s.metrics.Records.Set(float64(len(dataset.Records)))
	s.metrics.DroppedRows.Set(float64(len(dataset.Dropped)))
}

func (s *Service) recordFailure(err error, msg string) {
	s.metrics.DatasetLoads.WithLabelValues(metrics.LoadFailure).Inc()

	entry := logrus.WithError(err)
	if s.current.Load() != nil {
		entry = entry.WithField("dataset_id", s.current.Load().ID)
		msg += "; mantendo o dataset anterior"
	}
	entry.Error(msg)
}

func (s *Service) filtered(ctx context.Context, query domain.FilterQuery) ([]domain.SalesRecord, error) {
	dataset, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	criteria := analyzing.ResolveCriteria(dataset.Records, query)
	return analyzing.ApplyFilter(dataset.Records, criteria), nil
}

func (s *Service) FilterOptions(ctx context.Context) (domain.FilterOptions, error) {
	dataset, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	return analyzing.FilterOptions(dataset.Records), nil
}

func (s *Service) Records(ctx context.Context, query domain.FilterQuery) ([]domain.SalesRecord, error) {
	return s.filtered(ctx, query)
}

func (s *Service) Summary(ctx context.Context, query domain.FilterQuery) (domain.Summary, error) {
	records, err := s.filtered(ctx, query)
	if err != nil {
		return domain.Summary{}, err
	}
	return analyzing.Summarize(records), nil
}

func (s *Service) View(ctx context.Context, view View, query domain.FilterQuery) (any, error) {
	build, ok := views[view]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, view)
	}

	records, err := s.filtered(ctx, query)
	if err != nil {
		return nil, err
	}
	return build(records), nil
}

func (s *Service) Pivot(ctx context.Context, pivot PivotView, query domain.FilterQuery) (*domain.PivotTable, error) {
	build, ok := pivots[pivot]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, pivot)
	}

	records, err := s.filtered(ctx, query)
	if err != nil {
		return nil, err
	}
	return build(records), nil
}

func (s *Service) Aggregate(ctx context.Context, query domain.FilterQuery, req domain.AggregateRequest) (*domain.AggregateTable, error) {
	records, err := s.filtered(ctx, query)
	if err != nil {
		return nil, err
	}
	return analyzing.Run(records, req)
}

// IsDataError indica erros causados pelo conteúdo do feed
func IsDataError(err error) bool {
	return errors.Is(err, domain.ErrMalformedNumber) || errors.Is(err, domain.ErrMissingColumn)
}
