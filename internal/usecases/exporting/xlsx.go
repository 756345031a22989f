// Package exporting gera planilhas a partir das tabelas do painel
package exporting

import (
	"bytes"
	"fmt"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// PivotWorkbook monta uma planilha com a tabela cruzada: a primeira linha traz as colunas
// e a primeira coluna traz as chaves de linha.
func PivotWorkbook(pivot *domain.PivotTable, sheet string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("erro ao renomear planilha: %w", err)
	}

	header := make([]any, 0, len(pivot.Columns)+1)
	header = append(header, fmt.Sprintf("%s \\ %s", pivot.RowField, pivot.ColumnField))
	for _, column := range pivot.Columns {
		header = append(header, column)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("erro ao escrever cabeçalho: %w", err)
	}

	for i, row := range pivot.Rows {
		values := make([]any, 0, len(pivot.Columns)+1)
		values = append(values, row)
		for _, cell := range pivot.Cells[i] {
			values = append(values, cell)
		}

		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cellName, &values); err != nil {
			return nil, fmt.Errorf("erro ao escrever linha %q: %w", row, err)
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	}); err != nil {
		return nil, fmt.Errorf("erro ao congelar cabeçalho: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("erro ao gerar planilha: %w", err)
	}

	return buf.Bytes(), nil
}
