package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboard"
)

// DatasetReloader é a parte do painel usada pelo agendador
type DatasetReloader interface {
	Reload(ctx context.Context) (*domain.Dataset, error)
}

// DatasetRefreshConfig representa a configuração do agendador de recarga do dataset
type DatasetRefreshConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// DatasetRefreshService recarrega periodicamente o feed de vendas
type DatasetRefreshService struct {
	scheduler *gocron.Scheduler
	config    DatasetRefreshConfig
	reloader  DatasetReloader

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastError           string
	lastErrorFromFeed   bool
	lastDatasetID       string
}

func NewDatasetRefreshService(reloader DatasetReloader, appConfig *config.Config) *DatasetRefreshService {
	refreshConfig := DatasetRefreshConfig{
		CronSchedule: appConfig.DatasetRefresh.CronSchedule,
		SyncEnabled:  appConfig.DatasetRefresh.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": refreshConfig.CronSchedule,
		"sync_enabled":  refreshConfig.SyncEnabled,
	}).Info("Configuração do agendador de recarga do dataset carregada")

	return &DatasetRefreshService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    refreshConfig,
		reloader:  reloader,
	}
}

// Start inicia o agendador
func (s *DatasetRefreshService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Recarga agendada do dataset desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de recarga do dataset")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.refresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar recarga do dataset: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de recarga do dataset")
		s.scheduler.Stop()
	}()

	return nil
}

// refresh executa uma recarga; ignora a chamada se outra ainda estiver em andamento
func (s *DatasetRefreshService) refresh(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Recarga do dataset já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	startTime := time.Now()
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	logrus.Info("Iniciando recarga do dataset")
	dataset, err := s.reloader.Reload(ctx)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()

	if err != nil {
		s.lastError = err.Error()
		s.lastErrorFromFeed = dashboard.IsDataError(err)
		if s.lastErrorFromFeed {
			logrus.WithError(err).Warn("Feed de vendas com conteúdo inválido; dataset anterior mantido")
			return
		}
		logrus.WithError(err).Error("Erro na recarga agendada do dataset")
		return
	}

	s.lastError = ""
	s.lastErrorFromFeed = false
	s.lastDatasetID = dataset.ID
	logrus.WithFields(logrus.Fields{
		"dataset_id": dataset.ID,
		"records":    len(dataset.Records),
		"duration":   time.Since(startTime).String(),
	}).Info("Recarga do dataset concluída")
}

// TriggerManualSync inicia manualmente uma recarga em segundo plano
func (s *DatasetRefreshService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		logrus.Info("Recarga do dataset já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando recarga manual do dataset")
	go s.refresh(context.Background())
	return true
}

// GetStatus retorna o status atual do agendador
func (s *DatasetRefreshService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_error":             s.lastError,
		"last_error_from_feed":   s.lastErrorFromFeed,
		"last_dataset_id":        s.lastDatasetID,
	}
}
