package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	_ "modernc.org/sqlite"
)

// Drivers suportados
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type Conn interface {
	Queryer
	Close() error
	Ping(context.Context) error
	Placeholder() squirrel.PlaceholderFormat
}

// Connection é uma conexão somente leitura com a base que guarda o feed de vendas
type Connection struct {
	*sql.DB
	driver string
}

func NewConnection(
	ctx context.Context,
	cfg config.Database,
) (*Connection, error) {
	switch cfg.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("driver de banco não suportado: %q", cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao abrir conexão %s", cfg.Driver)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "erro ao conectar no banco %s", cfg.Driver)
	}

	return &Connection{DB: db, driver: cfg.Driver}, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// Placeholder retorna o formato de parâmetros do driver ($1 no postgres, ? no sqlite)
func (c *Connection) Placeholder() squirrel.PlaceholderFormat {
	if c.driver == DriverPostgres {
		return squirrel.Dollar
	}
	return squirrel.Question
}
