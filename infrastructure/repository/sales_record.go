package repository

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/sqldb"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

//go:generate mockgen -source=sales_record.go -destination=mocks/sales_record_mock.go -package=mocks

// colunas da tabela e o nome correspondente no cabeçalho do feed
var salesRecordColumns = []struct {
	column string
	header string
}{
	{"region", domain.ColumnRegion},
	{"retailer", domain.ColumnRetailer},
	{"invoice_date", domain.ColumnInvoiceDate},
	{"product", domain.ColumnProduct},
	{"price_per_unit", domain.ColumnPricePerUnit},
	{"units_sold", domain.ColumnUnitsSold},
	{"total_sales", domain.ColumnTotalSales},
	{"operating_profit", domain.ColumnOperatingProfit},
	{"operating_margin", domain.ColumnOperatingMargin},
	{"sales_method", domain.ColumnSalesMethod},
}

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

type SalesRecordRepository interface {
	// FetchRaw lê todas as linhas da tabela como texto, na ordem do id
	FetchRaw(ctx context.Context) (domain.RawTable, error)
	Table() string
}

type salesRecordRepository struct {
	conn  sqldb.Conn
	table string
}

func NewSalesRecordRepository(conn sqldb.Conn, table string) (SalesRecordRepository, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("nome de tabela inválido: %q", table)
	}

	return &salesRecordRepository{
		conn:  conn,
		table: table,
	}, nil
}

func (r *salesRecordRepository) Table() string {
	return r.table
}

func (r *salesRecordRepository) FetchRaw(ctx context.Context) (domain.RawTable, error) {
	header := make([]string, len(salesRecordColumns))
	columns := make([]string, len(salesRecordColumns))
	for i, c := range salesRecordColumns {
		header[i] = c.header
		columns[i] = fmt.Sprintf("CAST(%s AS TEXT)", c.column)
	}

	query, args, err := squirrel.
		Select(columns...).
		From(r.table).
		OrderBy("id ASC").
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	table := domain.RawTable{Header: header, Rows: make([][]string, 0)}
	for rows.Next() {
		row, err := scanRawRow(rows, len(columns))
		if err != nil {
			return domain.RawTable{}, fmt.Errorf("erro ao escanear linha de vendas: %w", err)
		}
		table.Rows = append(table.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return domain.RawTable{}, fmt.Errorf("erro ao iterar linhas de vendas: %w", err)
	}

	return table, nil
}

// scanRawRow lê uma linha como texto; NULL vira célula vazia
func scanRawRow(rows *sql.Rows, size int) ([]string, error) {
	values := make([]sql.NullString, size)
	dest := make([]any, size)
	for i := range values {
		dest[i] = &values[i]
	}

	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}

	row := make([]string, size)
	for i, v := range values {
		row[i] = v.String
	}
	return row, nil
}
