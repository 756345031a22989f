package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/sqldb"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/ingesting"
)

func newSQLiteConn(t *testing.T) *sqldb.Connection {
	t.Helper()

	conn, err := sqldb.NewConnection(context.Background(), config.Database{
		Driver: sqldb.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "sales.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	_, err = conn.ExecContext(context.Background(), `CREATE TABLE sales_records (
		id INTEGER PRIMARY KEY,
		region TEXT, retailer TEXT, invoice_date TEXT, product TEXT,
		price_per_unit TEXT, units_sold INTEGER, total_sales TEXT,
		operating_profit TEXT, operating_margin TEXT, sales_method TEXT
	)`)
	require.NoError(t, err)

	return conn
}

func TestSalesRecordRepository_FetchRaw(t *testing.T) {
	conn := newSQLiteConn(t)
	ctx := context.Background()

	insert := `INSERT INTO sales_records (id, region, retailer, invoice_date, product, price_per_unit, units_sold, total_sales, operating_profit, operating_margin, sales_method)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := conn.ExecContext(ctx, insert, 2, "West", "Walmart", "2/3/21", "Shoes", "$40.00", 100, "$4,000.00", "$1,600.00", "40%", "Online")
	require.NoError(t, err)
	_, err = conn.ExecContext(ctx, insert, 1, "Northeast", "Foot Locker", "1/1/20", "Men's Shoes", "$50.00", 1200, "$60,000.00", "$15,000.00", "25.00%", "In-store")
	require.NoError(t, err)
	_, err = conn.ExecContext(ctx, insert, 3, "South", "Kohl's", nil, "Apparel", "$10.00", 1, "$10.00", "$1.00", "10%", "Outlet")
	require.NoError(t, err)

	repo, err := NewSalesRecordRepository(conn, "sales_records")
	require.NoError(t, err)

	table, err := repo.FetchRaw(ctx)
	require.NoError(t, err)

	assert.Equal(t, domain.RequiredColumns, table.Header)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, "Northeast", table.Rows[0][0], "linhas devem vir na ordem do id")
	assert.Equal(t, "1200", table.Rows[0][5])
	assert.Equal(t, "West", table.Rows[1][0])
	assert.Equal(t, "", table.Rows[2][2], "NULL deve virar célula vazia")
}

func TestSalesRecordRepository_TimestampDates(t *testing.T) {
	conn := newSQLiteConn(t)
	ctx := context.Background()

	// texto de timestamptz como o postgres devolve em CAST(... AS TEXT)
	_, err := conn.ExecContext(ctx, `INSERT INTO sales_records (id, region, retailer, invoice_date, product, price_per_unit, units_sold, total_sales, operating_profit, operating_margin, sales_method)
		VALUES (1, 'West', 'Walmart', '2021-02-03 00:00:00+00', 'Shoes', '$40.00', 100, '$4,000.00', '$1,600.00', '40%', 'Online')`)
	require.NoError(t, err)

	repo, err := NewSalesRecordRepository(conn, "sales_records")
	require.NoError(t, err)

	table, err := repo.FetchRaw(ctx)
	require.NoError(t, err)

	result, err := ingesting.ParseTable(table)
	require.NoError(t, err)
	assert.Empty(t, result.Dropped)
	require.Len(t, result.Records, 1)
	assert.Equal(t, 2021, result.Records[0].Year)
	assert.Equal(t, 2, result.Records[0].Month)
}

func TestSalesRecordRepository_EmptyTable(t *testing.T) {
	conn := newSQLiteConn(t)

	repo, err := NewSalesRecordRepository(conn, "sales_records")
	require.NoError(t, err)

	table, err := repo.FetchRaw(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, table.Rows)
	assert.Empty(t, table.Rows)
}

func TestNewSalesRecordRepository_InvalidTable(t *testing.T) {
	tests := []string{"", "sales; DROP TABLE x", "1sales", "a.b.c"}
	for _, table := range tests {
		_, err := NewSalesRecordRepository(nil, table)
		assert.Error(t, err, table)
	}

	_, err := NewSalesRecordRepository(nil, "public.sales_records")
	assert.NoError(t, err)
}
