package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/salesfeed/mocks"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
	"go.uber.org/mock/gomock"
)

func rawSource(rows ...[]string) *domain.RawSource {
	table := domain.RawTable{Header: domain.RequiredColumns, Rows: rows}
	return &domain.RawSource{
		Name:        "https://feed.local/sales.csv",
		ContentHash: table.Fingerprint(),
		Table:       table,
	}
}

var (
	rowNortheast = []string{"Northeast", "Foot Locker", "1/1/20", "Men's Shoes", "$50.00", "1,200", "$60,000.00", "$15,000.00", "25.00%", "In-store"}
	rowWest      = []string{"West", "Walmart", "2/3/21", "Shoes", "$40.00", "100", "$4,000.00", "$1,600.00", "40%", "Online"}
	rowBadDate   = []string{"South", "Kohl's", "???", "Apparel", "$10.00", "1", "$10.00", "$1.00", "10%", "Outlet"}
	rowBadNumber = []string{"South", "Kohl's", "1/1/20", "Apparel", "$1O.00", "1", "$10.00", "$1.00", "10%", "Outlet"}
)

func newTestService(t *testing.T, cfg *config.Config) (*Service, *mocks.MockFeedIntegrator, *metrics.Metrics) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockFeedIntegrator(ctrl)
	m := metrics.New()
	if cfg == nil {
		cfg = &config.Config{Dataset: config.Dataset{CacheTTL: time.Hour}}
	}
	return NewService(cfg, source, m), source, m
}

func TestService_Reload(t *testing.T) {
	t.Run("Carga publica o dataset com linhas descartadas", func(t *testing.T) {
		service, source, m := newTestService(t, nil)
		source.EXPECT().Fetch(gomock.Any()).Return(rawSource(rowNortheast, rowBadDate, rowWest), nil)

		dataset, err := service.Reload(context.Background())
		require.NoError(t, err)

		assert.Len(t, dataset.ID, datasetIDSize)
		assert.Equal(t, "https://feed.local/sales.csv", dataset.Source)
		assert.Len(t, dataset.Records, 2)
		require.Len(t, dataset.Dropped, 1)
		assert.Equal(t, 3, dataset.Dropped[0].Line)
		assert.False(t, dataset.LoadedAt.IsZero())

		current, err := service.Current(context.Background())
		require.NoError(t, err)
		assert.Same(t, dataset, current)

		assert.Equal(t, 1.0, testutil.ToFloat64(m.DatasetLoads.WithLabelValues(metrics.LoadSuccess)))
		assert.Equal(t, 2.0, testutil.ToFloat64(m.Records))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.DroppedRows))
	})

	t.Run("Mesmo conteúdo reaproveita o dataset do cache", func(t *testing.T) {
		service, source, m := newTestService(t, nil)
		source.EXPECT().Fetch(gomock.Any()).Return(rawSource(rowNortheast), nil).Times(2)

		first, err := service.Reload(context.Background())
		require.NoError(t, err)
		second, err := service.Reload(context.Background())
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.DatasetCacheHit))
	})

	t.Run("Conteúdo novo gera novo dataset", func(t *testing.T) {
		service, source, _ := newTestService(t, nil)
		gomock.InOrder(
			source.EXPECT().Fetch(gomock.Any()).Return(rawSource(rowNortheast), nil),
			source.EXPECT().Fetch(gomock.Any()).Return(rawSource(rowNortheast, rowWest), nil),
		)

		first, err := service.Reload(context.Background())
		require.NoError(t, err)
		second, err := service.Reload(context.Background())
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
		assert.Len(t, second.Records, 2)
	})

	t.Run("Falha de obtenção mantém o dataset anterior", func(t *testing.T) {
		service, source, m := newTestService(t, nil)
		gomock.InOrder(
			source.EXPECT().Fetch(gomock.Any()).Return(rawSource(rowNortheast), nil),
			source.EXPECT().Fetch(gomock.Any()).Return(nil, domain.ErrFetchFailure),
		)

		loaded, err := service.Reload(context.Background())
		require.NoError(t, err)

		failed, err := service.Reload(context.Background())
		assert.Nil(t, failed)
		assert.True(t, errors.Is(err, domain.ErrFetchFailure))

		current, err := service.Current(context.Background())
		require.NoError(t, err)
		assert.Same(t, loaded, current)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.DatasetLoads.WithLabelValues(metrics.LoadFailure)))
	})

	t.Run("Número inválido aborta a carga sem dataset parcial", func(t *testing.T) {
		service, source, _ := newTestService(t, nil)
		source.EXPECT().Fetch(gomock.Any()).Return(rawSource(rowNortheast, rowBadNumber), nil)

		dataset, err := service.Reload(context.Background())
		assert.Nil(t, dataset)
		assert.True(t, errors.Is(err, domain.ErrMalformedNumber))
		assert.True(t, IsDataError(err))
		assert.Nil(t, service.current.Load())
	})
}

func TestService_Current(t *testing.T) {
	t.Run("Carrega na primeira chamada e reaproveita depois", func(t *testing.T) {
		service, source, _ := newTestService(t, nil)
		source.EXPECT().Fetch(gomock.Any()).Return(rawSource(rowNortheast), nil).Times(1)

		first, err := service.Current(context.Background())
		require.NoError(t, err)
		second, err := service.Current(context.Background())
		require.NoError(t, err)
		assert.Same(t, first, second)
	})

	t.Run("Recarrega a cada chamada quando configurado", func(t *testing.T) {
		cfg := &config.Config{Dataset: config.Dataset{ReloadPerRequest: true}}
		service, source, _ := newTestService(t, cfg)
		source.EXPECT().Fetch(gomock.Any()).Return(rawSource(rowNortheast), nil).Times(3)

		for i := 0; i < 3; i++ {
			_, err := service.Current(context.Background())
			require.NoError(t, err)
		}
	})

	t.Run("Sem dataset e com falha retorna erro", func(t *testing.T) {
		service, source, _ := newTestService(t, nil)
		source.EXPECT().Fetch(gomock.Any()).Return(nil, domain.ErrFetchFailure)

		_, err := service.Current(context.Background())
		assert.True(t, errors.Is(err, domain.ErrFetchFailure))
	})
}

func TestService_ConcurrentReloadsShareOneFetch(t *testing.T) {
	service, source, _ := newTestService(t, nil)

	release := make(chan struct{})
	source.EXPECT().Fetch(gomock.Any()).DoAndReturn(func(ctx context.Context) (*domain.RawSource, error) {
		<-release
		return rawSource(rowNortheast), nil
	}).MinTimes(1).MaxTimes(5)

	var wg sync.WaitGroup
	results := make([]*domain.Dataset, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			dataset, err := service.Reload(context.Background())
			assert.NoError(t, err)
			results[i] = dataset
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, dataset := range results {
		require.NotNil(t, dataset)
		assert.Equal(t, results[0].ContentHash, dataset.ContentHash)
	}
}

func TestService_ReloadSurvivesCallerCancellation(t *testing.T) {
	service, source, _ := newTestService(t, nil)

	started := make(chan struct{})
	release := make(chan struct{})
	var fetchErr error
	source.EXPECT().Fetch(gomock.Any()).DoAndReturn(func(ctx context.Context) (*domain.RawSource, error) {
		select {
		case <-started:
		default:
			close(started)
		}
		<-release
		fetchErr = ctx.Err()
		return rawSource(rowNortheast), nil
	}).MinTimes(1).MaxTimes(2)

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := service.Reload(ctxA)
		errA <- err
	}()
	<-started

	type result struct {
		dataset *domain.Dataset
		err     error
	}
	resB := make(chan result, 1)
	go func() {
		dataset, err := service.Current(context.Background())
		resB <- result{dataset, err}
	}()

	time.Sleep(20 * time.Millisecond)
	cancelA()
	err := <-errA
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, domain.ErrDatasetUnavailable)

	close(release)
	b := <-resB
	require.NoError(t, b.err)
	require.NotNil(t, b.dataset)
	assert.NoError(t, fetchErr)
	assert.True(t, service.Loaded())
}

func TestService_Queries(t *testing.T) {
	service, source, _ := newTestService(t, nil)
	source.EXPECT().Fetch(gomock.Any()).Return(rawSource(rowNortheast, rowWest), nil)
	ctx := context.Background()

	t.Run("Consulta sem filtros retorna tudo", func(t *testing.T) {
		records, err := service.Records(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("Dimensão presente com lista vazia exclui tudo", func(t *testing.T) {
		records, err := service.Records(ctx, domain.FilterQuery{domain.DimensionRegion: {}})
		require.NoError(t, err)
		assert.Empty(t, records)

		summary, err := service.Summary(ctx, domain.FilterQuery{domain.DimensionRegion: {}})
		require.NoError(t, err)
		assert.True(t, summary.Empty)
	})

	t.Run("Filtro por região", func(t *testing.T) {
		summary, err := service.Summary(ctx, domain.FilterQuery{domain.DimensionRegion: {"West"}})
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Records)
		assert.Equal(t, 4000.0, summary.TotalSales)
	})

	t.Run("Opções de filtro", func(t *testing.T) {
		options, err := service.FilterOptions(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Northeast", "West"}, options[domain.DimensionRegion])
	})

	t.Run("Visões e pivôs", func(t *testing.T) {
		trend, err := service.View(ctx, ViewMonthlyTrend, nil)
		require.NoError(t, err)
		assert.Len(t, trend, 2)

		_, err = service.View(ctx, "unknown", nil)
		assert.True(t, errors.Is(err, ErrUnknownView))

		pivot, err := service.Pivot(ctx, PivotProductByRegion, nil)
		require.NoError(t, err)
		assert.Equal(t, 0.0, pivot.Cell("Shoes", "Northeast"))
		assert.Equal(t, 100.0, pivot.Cell("Shoes", "West"))

		_, err = service.Pivot(ctx, "unknown", nil)
		assert.True(t, errors.Is(err, ErrUnknownView))
	})

	t.Run("Agregação livre", func(t *testing.T) {
		table, err := service.Aggregate(ctx, nil, domain.AggregateRequest{
			GroupBy: []domain.Field{domain.FieldYear},
			Measure: domain.MeasureTotalSales,
			Op:      domain.OpSum,
			Sort:    "desc",
		})
		require.NoError(t, err)
		require.Len(t, table.Rows, 2)
		assert.Equal(t, []string{"2020"}, table.Rows[0].Key)
		assert.Equal(t, 60000.0, table.Rows[0].Value)
	})
}
