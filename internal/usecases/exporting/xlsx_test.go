package exporting

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

func TestPivotWorkbook(t *testing.T) {
	pivot := &domain.PivotTable{
		RowField:    domain.FieldProduct,
		ColumnField: domain.FieldRegion,
		Measure:     domain.MeasureUnitsSold,
		Op:          domain.OpSum,
		Rows:        []string{"Men's Shoes", "Apparel"},
		Columns:     []string{"Northeast", "West"},
		Cells:       [][]float64{{1200, 0}, {10, 300}},
	}

	data, err := PivotWorkbook(pivot, "product-by-region")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("product-by-region")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"product \\ region", "Northeast", "West"}, rows[0])
	assert.Equal(t, []string{"Men's Shoes", "1200", "0"}, rows[1])
	assert.Equal(t, []string{"Apparel", "10", "300"}, rows[2])
}

func TestPivotWorkbookEmpty(t *testing.T) {
	pivot := &domain.PivotTable{RowField: domain.FieldYearMonth, ColumnField: domain.FieldProduct}

	data, err := PivotWorkbook(pivot, "vazio")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("vazio")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
