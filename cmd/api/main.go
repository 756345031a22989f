package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/sqldb"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/salesfeed"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/salesfeed/feedclient"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/api"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/scheduler"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboard"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
)

const warmupTimeout = 2 * time.Minute

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source, closeSource := newFeedSource(ctx, cfg)
	defer closeSource()

	m := metrics.New()
	dashboardService := dashboard.NewService(cfg, source, m)
	authenticator := authenticating.NewService(cfg)

	warmup(ctx, dashboardService)

	datasetRefreshService := scheduler.NewDatasetRefreshService(dashboardService, cfg)
	if err := datasetRefreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de recarga do dataset")
	} else {
		logrus.Info("Agendador de recarga do dataset iniciado com sucesso")
	}

	server, err := api.New(cfg, dashboardService, authenticator, datasetRefreshService, m)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger aplica o formato inicial dos logs, usado até a configuração ser lida
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// newFeedSource escolhe a origem do feed conforme DATASET_SOURCE
func newFeedSource(ctx context.Context, cfg *config.Config) (salesfeed.FeedIntegrator, func()) {
	if cfg.Dataset.Source != config.SourceSQL {
		logrus.WithField("url", cfg.Dataset.URL).Info("Feed de vendas via HTTP")
		return salesfeed.New(cfg, feedclient.NewClient(cfg)), func() {}
	}

	conn, err := sqldb.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatalf("Erro ao conectar ao banco %s", cfg.Database.Driver)
	}
	logrus.WithField("driver", cfg.Database.Driver).Info("Conexão com o banco estabelecida com sucesso")

	repo, err := repository.NewSalesRecordRepository(conn, cfg.Database.Table)
	if err != nil {
		conn.Close()
		logrus.WithError(err).Fatal("Erro ao configurar o repositório de vendas")
	}

	return salesfeed.NewSQLFeed(repo), func() { conn.Close() }
}

// warmup carrega o primeiro dataset. Uma falha aqui não derruba o servidor:
// a próxima consulta tenta novamente.
func warmup(ctx context.Context, service dashboard.Dashboard) {
	warmupCtx, cancel := context.WithTimeout(ctx, warmupTimeout)
	defer cancel()

	dataset, err := service.Reload(warmupCtx)
	if err != nil {
		logrus.WithError(err).Warn("Carga inicial do dataset falhou")
		return
	}

	logrus.WithFields(logrus.Fields{
		"dataset_id": dataset.ID,
		"records":    len(dataset.Records),
	}).Info("Carga inicial do dataset concluída")
}
