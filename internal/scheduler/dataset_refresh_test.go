package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboard/mocks"
	"go.uber.org/mock/gomock"
)

func newRefreshService(t *testing.T, enabled bool) (*DatasetRefreshService, *mocks.MockDashboard) {
	ctrl := gomock.NewController(t)
	mockDashboard := mocks.NewMockDashboard(ctrl)

	cfg := &config.Config{DatasetRefresh: config.DatasetRefresh{CronSchedule: "0 * * * *", Enabled: enabled}}
	return NewDatasetRefreshService(mockDashboard, cfg), mockDashboard
}

func TestDatasetRefreshService_refresh(t *testing.T) {
	tests := []struct {
		name        string
		dataset     *domain.Dataset
		err         error
		wantError   string
		wantDataset string
		wantFeed    bool
	}{
		{
			name:        "Recarga com sucesso registra o dataset",
			dataset:     &domain.Dataset{ID: "abc123"},
			wantDataset: "abc123",
		},
		{
			name:      "Falha registra o erro",
			err:       domain.ErrFetchFailure,
			wantError: domain.ErrFetchFailure.Error(),
		},
		{
			name:      "Conteúdo inválido do feed é sinalizado",
			err:       &domain.MissingColumnError{Column: domain.ColumnOperatingMargin},
			wantError: (&domain.MissingColumnError{Column: domain.ColumnOperatingMargin}).Error(),
			wantFeed:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mockDashboard := newRefreshService(t, true)
			mockDashboard.EXPECT().Reload(gomock.Any()).Return(tt.dataset, tt.err)

			service.refresh(context.Background())

			status := service.GetStatus()
			assert.Equal(t, tt.wantError, status["last_error"])
			assert.Equal(t, tt.wantDataset, status["last_dataset_id"])
			assert.Equal(t, tt.wantFeed, status["last_error_from_feed"])
			assert.Equal(t, false, status["sync_running"])
			assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
		})
	}
}

func TestDatasetRefreshService_refreshIgnoredWhileRunning(t *testing.T) {
	service, _ := newRefreshService(t, true)

	// sem expectativa de Reload: o mock falha se for chamado
	service.syncRunning = true
	service.refresh(context.Background())
	assert.False(t, service.TriggerManualSync())
}

func TestDatasetRefreshService_TriggerManualSync(t *testing.T) {
	service, mockDashboard := newRefreshService(t, false)

	done := make(chan struct{})
	mockDashboard.EXPECT().Reload(gomock.Any()).DoAndReturn(func(ctx context.Context) (*domain.Dataset, error) {
		defer close(done)
		return &domain.Dataset{ID: "manual"}, nil
	})

	require.True(t, service.TriggerManualSync())

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("recarga manual não executada")
	}

	assert.Eventually(t, func() bool {
		return service.GetStatus()["last_dataset_id"] == "manual"
	}, time.Second, 10*time.Millisecond)
}

func TestDatasetRefreshService_StartDisabled(t *testing.T) {
	service, _ := newRefreshService(t, false)
	assert.NoError(t, service.Start(context.Background()))
	assert.Equal(t, false, service.GetStatus()["sync_enabled"])
}

func TestDatasetRefreshService_StartInvalidCron(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := &config.Config{DatasetRefresh: config.DatasetRefresh{CronSchedule: "not a cron", Enabled: true}}
	service := NewDatasetRefreshService(mocks.NewMockDashboard(ctrl), cfg)

	assert.Error(t, service.Start(context.Background()))
}
