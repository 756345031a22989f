package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Origens aceitas para o dataset
const (
	SourceHTTP = "http"
	SourceSQL  = "sql"
)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Dataset        Dataset        `mapstructure:",squash"`
	Database       Database       `mapstructure:",squash"`
	Admin          Admin          `mapstructure:",squash"`
	DatasetRefresh DatasetRefresh `mapstructure:",squash"`
	SecretKey      string         `mapstructure:"secret_key"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Dataset struct {
	Source           string        `mapstructure:"dataset_source"`
	URL              string        `mapstructure:"dataset_url"`
	FetchTimeout     time.Duration `mapstructure:"dataset_fetch_timeout"` // 0 = sem timeout
	CacheTTL         time.Duration `mapstructure:"dataset_cache_ttl"`
	ReloadPerRequest bool          `mapstructure:"dataset_reload_per_request"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
	Table    string `mapstructure:"database_table"`
}

type Admin struct {
	Email        string `mapstructure:"admin_email"`
	PasswordHash string `mapstructure:"admin_password_hash"`
}

type DatasetRefresh struct {
	CronSchedule string `mapstructure:"dataset_refresh_cron"`
	Enabled      bool   `mapstructure:"dataset_refresh_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8501")

	viper.SetDefault("DATASET_SOURCE", SourceHTTP)
	viper.SetDefault("DATASET_URL", "https://raw.githubusercontent.com/myoh0623/dataset/refs/heads/main/adidas_us_sales_datasets.csv")
	viper.SetDefault("DATASET_FETCH_TIMEOUT", "0s")
	viper.SetDefault("DATASET_CACHE_TTL", "1h")
	viper.SetDefault("DATASET_RELOAD_PER_REQUEST", false)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/sales")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_TABLE", "sales_records")

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("ADMIN_EMAIL", "admin@localhost")
	viper.SetDefault("ADMIN_PASSWORD_HASH", "")

	viper.SetDefault("DATASET_REFRESH_CRON", "0 * * * *") // A cada hora
	viper.SetDefault("DATASET_REFRESH_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = buildDSN(config.Database)

	return config, nil
}

func (c *Config) validate() error {
	switch c.Dataset.Source {
	case SourceHTTP:
		if c.Dataset.URL == "" {
			return fmt.Errorf("DATASET_URL é obrigatório quando DATASET_SOURCE=%s", SourceHTTP)
		}
	case SourceSQL:
		if c.Database.Table == "" {
			return fmt.Errorf("DATABASE_TABLE é obrigatório quando DATASET_SOURCE=%s", SourceSQL)
		}
	default:
		return fmt.Errorf("DATASET_SOURCE inválido: %q", c.Dataset.Source)
	}

	if c.Dataset.FetchTimeout < 0 {
		return fmt.Errorf("DATASET_FETCH_TIMEOUT não pode ser negativo")
	}

	return nil
}

// buildDSN monta a string de conexão. Para sqlite, DATABASE_URL é o caminho do arquivo.
func buildDSN(db Database) string {
	if db.Driver == "sqlite" {
		return db.URL
	}

	return fmt.Sprintf(
		"%s://%s:%s@%s",
		db.Driver,
		db.User,
		db.Password,
		db.URL,
	)
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
