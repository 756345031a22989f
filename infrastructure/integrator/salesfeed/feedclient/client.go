package feedclient

import (
	"context"
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/config"
)

//go:generate mockgen -source=client.go -destination=../mocks/feedclient_mock.go -package=mocks

type Client interface {
	FetchCSV(ctx context.Context, url string) ([]byte, error)
}

type FeedClient struct {
	httpClient *http.Client
}

// NewClient cria o cliente do feed. Timeout 0 não limita a requisição.
func NewClient(cfg *config.Config) Client {
	return &FeedClient{
		httpClient: &http.Client{
			Timeout: cfg.Dataset.FetchTimeout,
		},
	}
}
