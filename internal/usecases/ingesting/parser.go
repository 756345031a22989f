package ingesting

import (
	"io"
	"strings"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// Conversões numéricas aplicadas coluna a coluna; a primeira falha interrompe a normalização
var numericColumns = []struct {
	name  string
	apply func(*domain.SalesRecord, string) error
}{
	{domain.ColumnPricePerUnit, func(r *domain.SalesRecord, raw string) (err error) {
		r.PricePerUnit, err = ParseCurrency(raw)
		return err
	}},
	{domain.ColumnTotalSales, func(r *domain.SalesRecord, raw string) (err error) {
		r.TotalSales, err = ParseCurrency(raw)
		return err
	}},
	{domain.ColumnOperatingProfit, func(r *domain.SalesRecord, raw string) (err error) {
		r.OperatingProfit, err = ParseCurrency(raw)
		return err
	}},
	{domain.ColumnUnitsSold, func(r *domain.SalesRecord, raw string) (err error) {
		r.UnitsSold, err = ParseCount(raw)
		return err
	}},
	{domain.ColumnOperatingMargin, func(r *domain.SalesRecord, raw string) (err error) {
		r.OperatingMarginPct, err = ParsePercent(raw)
		return err
	}},
}

// ParseResult é o resultado de uma normalização
type ParseResult struct {
	Records []domain.SalesRecord
	Dropped []domain.DroppedRow
}

// ParseDataset lê o CSV bruto e normaliza os registros
func ParseDataset(r io.Reader) (*ParseResult, error) {
	table, err := domain.DecodeCSV(r)
	if err != nil {
		return nil, err
	}
	return ParseTable(table)
}

// ParseTable normaliza uma tabela bruta.
// Qualquer valor numérico inválido aborta a normalização inteira; linhas sem data válida são descartadas.
func ParseTable(table domain.RawTable) (*ParseResult, error) {
	index, err := indexColumns(table.Header)
	if err != nil {
		return nil, err
	}

	cell := func(row []string, column string) string {
		i := index[column]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	records := make([]domain.SalesRecord, len(table.Rows))
	for i, row := range table.Rows {
		records[i] = domain.SalesRecord{
			Line:        i + 2,
			Region:      cell(row, domain.ColumnRegion),
			Retailer:    cell(row, domain.ColumnRetailer),
			Product:     cell(row, domain.ColumnProduct),
			SalesMethod: cell(row, domain.ColumnSalesMethod),
		}
	}

	for _, column := range numericColumns {
		for i, row := range table.Rows {
			raw := cell(row, column.name)
			if err := column.apply(&records[i], raw); err != nil {
				return nil, &domain.MalformedNumberError{
					Column: column.name,
					Line:   records[i].Line,
					Value:  raw,
				}
			}
		}
	}

	result := &ParseResult{
		Records: make([]domain.SalesRecord, 0, len(records)),
	}

	for i, row := range table.Rows {
		raw := cell(row, domain.ColumnInvoiceDate)
		date, ok := ParseInvoiceDate(raw)
		if !ok {
			result.Dropped = append(result.Dropped, domain.DroppedRow{
				Line:   records[i].Line,
				Column: domain.ColumnInvoiceDate,
				Value:  raw,
				Reason: domain.DropReasonMissingDate,
			})
			continue
		}

		records[i].InvoiceDate = date
		result.Records = append(result.Records, DeriveFields(records[i]))
	}

	return result, nil
}

// indexColumns mapeia o nome de cada coluna (sem espaços nas pontas) para sua posição
func indexColumns(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, exists := index[name]; !exists {
			index[name] = i
		}
	}

	for _, column := range domain.RequiredColumns {
		if _, ok := index[column]; !ok {
			return nil, &domain.MissingColumnError{Column: column}
		}
	}

	return index, nil
}
