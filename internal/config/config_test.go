package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("DATASET_FETCH_TIMEOUT", "30s")
	t.Setenv("DATASET_CACHE_TTL", "15m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.local,http://b.local")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "/tmp/vendas.db")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, SourceHTTP, cfg.Dataset.Source)
	assert.NotEmpty(t, cfg.Dataset.URL)
	assert.Equal(t, 30*time.Second, cfg.Dataset.FetchTimeout)
	assert.Equal(t, 15*time.Minute, cfg.Dataset.CacheTTL)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "/tmp/vendas.db", cfg.Database.DSN)
	assert.Equal(t, "0 * * * *", cfg.DatasetRefresh.CronSchedule)
}

func TestConfig_validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "Origem HTTP com URL",
			cfg:  Config{Dataset: Dataset{Source: SourceHTTP, URL: "https://feed.local/sales.csv"}},
		},
		{
			name:    "Origem HTTP sem URL",
			cfg:     Config{Dataset: Dataset{Source: SourceHTTP}},
			wantErr: true,
		},
		{
			name: "Origem SQL com tabela",
			cfg:  Config{Dataset: Dataset{Source: SourceSQL}, Database: Database{Table: "sales_records"}},
		},
		{
			name:    "Origem SQL sem tabela",
			cfg:     Config{Dataset: Dataset{Source: SourceSQL}},
			wantErr: true,
		},
		{
			name:    "Origem desconhecida",
			cfg:     Config{Dataset: Dataset{Source: "ftp"}},
			wantErr: true,
		},
		{
			name:    "Timeout negativo",
			cfg:     Config{Dataset: Dataset{Source: SourceHTTP, URL: "x", FetchTimeout: -time.Second}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestBuildDSN(t *testing.T) {
	assert.Equal(t, "postgres://u:p@localhost:5432/sales?sslmode=disable",
		buildDSN(Database{Driver: "postgres", User: "u", Password: "p", URL: "localhost:5432/sales?sslmode=disable"}))
	assert.Equal(t, "vendas.db", buildDSN(Database{Driver: "sqlite", URL: "vendas.db"}))
}
