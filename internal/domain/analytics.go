package domain

// AggregateRow é uma linha de uma agregação: a tupla de chaves e o valor reduzido
type AggregateRow struct {
	Key   []string `json:"key"`
	Value float64  `json:"value"`
	Count int      `json:"count"`
}

// AggregateTable é o resultado de uma agregação agrupada
type AggregateTable struct {
	GroupBy []Field        `json:"group_by"`
	Measure Measure        `json:"measure"`
	Op      AggregateOp    `json:"op"`
	Rows    []AggregateRow `json:"rows"`
}

// PivotTable é uma tabela cruzada com duas chaves; células sem registros valem 0
type PivotTable struct {
	RowField    Field       `json:"row_field"`
	ColumnField Field       `json:"column_field"`
	Measure     Measure     `json:"measure"`
	Op          AggregateOp `json:"op"`
	Rows        []string    `json:"rows"`
	Columns     []string    `json:"columns"`
	Cells       [][]float64 `json:"cells"`
}

// Cell retorna o valor da célula (0 quando a combinação não existe)
func (p *PivotTable) Cell(row, column string) float64 {
	for i, r := range p.Rows {
		if r != row {
			continue
		}
		for j, c := range p.Columns {
			if c == column {
				return p.Cells[i][j]
			}
		}
	}
	return 0
}

// Empty indica se a tabela não tem nenhuma célula
func (p *PivotTable) Empty() bool {
	return len(p.Rows) == 0 || len(p.Columns) == 0
}

// MonthlyTrendPoint é um ponto da série mensal de vendas
type MonthlyTrendPoint struct {
	Period     string  `json:"period"` // yyyy-mm
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	UnitsSold  int     `json:"units_sold"`
	TotalSales float64 `json:"total_sales"`
}

// CategoryTotal totaliza vendas e lucro de um valor de dimensão (varejista, produto...)
type CategoryTotal struct {
	Name            string  `json:"name"`
	TotalSales      float64 `json:"total_sales"`
	OperatingProfit float64 `json:"operating_profit"`
	UnitsSold       int     `json:"units_sold"`
}

// SalesMethodStat reúne as médias por método de venda
type SalesMethodStat struct {
	SalesMethod            string  `json:"sales_method"`
	AverageOperatingMargin float64 `json:"average_operating_margin"`
	AveragePricePerUnit    float64 `json:"average_price_per_unit"`
	Records                int     `json:"records"`
}

// PricePoint é um ponto do gráfico de dispersão preço x volume
type PricePoint struct {
	Product      string  `json:"product"`
	Region       string  `json:"region"`
	PricePerUnit float64 `json:"price_per_unit"`
	UnitsSold    int     `json:"units_sold"`
}

// Summary são os indicadores do topo do painel
type Summary struct {
	Records              int     `json:"records"`
	TotalSales           float64 `json:"total_sales"`
	TotalOperatingProfit float64 `json:"total_operating_profit"`
	TotalUnitsSold       int     `json:"total_units_sold"`
	AverageProfitRate    float64 `json:"average_profit_rate"`
	AveragePricePerUnit  float64 `json:"average_price_per_unit"`
	Empty                bool    `json:"empty"`
}

// FilterOptions lista os valores distintos de cada dimensão
type FilterOptions map[Dimension][]string

// AggregateRequest descreve uma agregação livre pedida pela API
type AggregateRequest struct {
	GroupBy []Field     `json:"group_by" validate:"required,min=1,max=3,dive,groupfield"`
	Measure Measure     `json:"measure" validate:"required,measure"`
	Op      AggregateOp `json:"op" validate:"required,oneof=sum mean count"`
	Sort    string      `json:"sort" validate:"omitempty,oneof=asc desc"`
	Limit   int         `json:"limit" validate:"gte=0,lte=1000"`
}
