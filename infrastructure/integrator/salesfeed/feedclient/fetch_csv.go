package feedclient

import (
	"context"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// FetchCSV faz um único GET no endereço do feed. Não há nova tentativa em caso de falha.
func (c *FeedClient) FetchCSV(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(domain.ErrFetchFailure, "erro ao criar a requisição: %v", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain, */*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(domain.ErrFetchFailure, "erro ao executar a requisição: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(domain.ErrFetchFailure, "requisição falhou com status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(domain.ErrFetchFailure, "erro ao ler a resposta: %v", err)
	}

	return body, nil
}
