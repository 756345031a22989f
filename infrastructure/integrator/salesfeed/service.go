package salesfeed

import (
	"bytes"
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/salesfeed/feedclient"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/salesfeed_mock.go -package=mocks

type FeedIntegrator interface {
	Fetch(ctx context.Context) (*domain.RawSource, error)
}

type SalesFeedService struct {
	cfg    *config.Config
	Client feedclient.Client
}

func New(cfg *config.Config, client feedclient.Client) FeedIntegrator {
	return &SalesFeedService{
		cfg:    cfg,
		Client: client,
	}
}

// Fetch baixa o CSV configurado e devolve a tabela bruta com sua impressão digital
func (s *SalesFeedService) Fetch(ctx context.Context) (*domain.RawSource, error) {
	url := s.cfg.Dataset.URL

	body, err := s.Client.FetchCSV(ctx, url)
	if err != nil {
		return nil, err
	}

	table, err := domain.DecodeCSV(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("erro ao ler o CSV de %s: %w", url, err)
	}

	logrus.WithFields(logrus.Fields{
		"source": url,
		"bytes":  len(body),
		"rows":   len(table.Rows),
	}).Debug("Feed de vendas baixado")

	return &domain.RawSource{
		Name:        url,
		ContentHash: table.Fingerprint(),
		Table:       table,
	}, nil
}
