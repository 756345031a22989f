package salesfeed

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// SQLFeedService lê o feed de uma tabela. Apenas leitura.
type SQLFeedService struct {
	repo repository.SalesRecordRepository
}

func NewSQLFeed(repo repository.SalesRecordRepository) FeedIntegrator {
	return &SQLFeedService{repo: repo}
}

func (s *SQLFeedService) Fetch(ctx context.Context) (*domain.RawSource, error) {
	table, err := s.repo.FetchRaw(ctx)
	if err != nil {
		return nil, errors.Wrapf(domain.ErrFetchFailure, "erro ao ler a tabela %s: %v", s.repo.Table(), err)
	}

	logrus.WithFields(logrus.Fields{
		"source": s.repo.Table(),
		"rows":   len(table.Rows),
	}).Debug("Feed de vendas lido do banco")

	return &domain.RawSource{
		Name:        "sql:" + s.repo.Table(),
		ContentHash: table.Fingerprint(),
		Table:       table,
	}, nil
}
