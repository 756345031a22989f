package analyzing

import (
	"sort"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// Pivot monta a tabela cruzada rowField x columnField. Linhas e colunas seguem a ordem da
// primeira ocorrência e combinações sem registros ficam com 0.
func Pivot(records []domain.SalesRecord, rowField, columnField domain.Field, measure domain.Measure, op domain.AggregateOp) (*domain.PivotTable, error) {
	table, err := Aggregate(records, []domain.Field{rowField, columnField}, measure, op)
	if err != nil {
		return nil, err
	}

	pivot := &domain.PivotTable{
		RowField:    rowField,
		ColumnField: columnField,
		Measure:     measure,
		Op:          op,
		Rows:        make([]string, 0),
		Columns:     make([]string, 0),
	}

	rowIndex := make(map[string]int)
	columnIndex := make(map[string]int)
	for _, row := range table.Rows {
		if _, ok := rowIndex[row.Key[0]]; !ok {
			rowIndex[row.Key[0]] = len(pivot.Rows)
			pivot.Rows = append(pivot.Rows, row.Key[0])
		}
		if _, ok := columnIndex[row.Key[1]]; !ok {
			columnIndex[row.Key[1]] = len(pivot.Columns)
			pivot.Columns = append(pivot.Columns, row.Key[1])
		}
	}

	pivot.Cells = make([][]float64, len(pivot.Rows))
	for i := range pivot.Cells {
		pivot.Cells[i] = make([]float64, len(pivot.Columns))
	}

	for _, row := range table.Rows {
		pivot.Cells[rowIndex[row.Key[0]]][columnIndex[row.Key[1]]] = row.Value
	}

	return pivot, nil
}

// SortPivotRows reordena as linhas da tabela cruzada em ordem crescente do rótulo
func SortPivotRows(pivot *domain.PivotTable) {
	order := make([]int, len(pivot.Rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return pivot.Rows[order[a]] < pivot.Rows[order[b]]
	})

	rows := make([]string, len(order))
	cells := make([][]float64, len(order))
	for i, from := range order {
		rows[i] = pivot.Rows[from]
		cells[i] = pivot.Cells[from]
	}

	pivot.Rows = rows
	pivot.Cells = cells
}
