package domain

import (
	"fmt"
	"time"
)

// SalesRecord representa uma transação de venda já normalizada e com os campos derivados
type SalesRecord struct {
	Line               int       `json:"line"` // Linha de origem no feed (1 = cabeçalho)
	Region             string    `json:"region"`
	Retailer           string    `json:"retailer"`
	Product            string    `json:"product"`
	SalesMethod        string    `json:"sales_method"`
	InvoiceDate        time.Time `json:"invoice_date"`
	PricePerUnit       float64   `json:"price_per_unit"`
	UnitsSold          int       `json:"units_sold"`
	TotalSales         float64   `json:"total_sales"`
	OperatingProfit    float64   `json:"operating_profit"`
	OperatingMarginPct float64   `json:"operating_margin_pct"`

	// Derivados na carga
	ProfitRate float64 `json:"profit_rate"`
	Year       int     `json:"year"`
	Month      int     `json:"month"`
}

// YearMonth retorna o período da venda no formato yyyy-mm
func (r SalesRecord) YearMonth() string {
	return fmt.Sprintf("%04d-%02d", r.Year, r.Month)
}

// Dimension identifica uma dimensão categórica usada nos filtros
type Dimension string

const (
	DimensionRegion      Dimension = "region"
	DimensionRetailer    Dimension = "retailer"
	DimensionProduct     Dimension = "product"
	DimensionSalesMethod Dimension = "sales_method"
)

// Dimensions lista as dimensões filtráveis na ordem em que aparecem no painel
var Dimensions = []Dimension{
	DimensionRegion,
	DimensionRetailer,
	DimensionProduct,
	DimensionSalesMethod,
}

// Valid verifica se a dimensão é conhecida
func (d Dimension) Valid() bool {
	switch d {
	case DimensionRegion, DimensionRetailer, DimensionProduct, DimensionSalesMethod:
		return true
	}
	return false
}

// Value extrai o valor da dimensão de um registro
func (d Dimension) Value(r SalesRecord) string {
	switch d {
	case DimensionRegion:
		return r.Region
	case DimensionRetailer:
		return r.Retailer
	case DimensionProduct:
		return r.Product
	case DimensionSalesMethod:
		return r.SalesMethod
	}
	return ""
}

// Field identifica uma chave de agrupamento. Inclui as dimensões categóricas e as de calendário.
type Field string

const (
	FieldRegion      = Field(DimensionRegion)
	FieldRetailer    = Field(DimensionRetailer)
	FieldProduct     = Field(DimensionProduct)
	FieldSalesMethod = Field(DimensionSalesMethod)
	FieldYear        Field = "year"
	FieldMonth       Field = "month"
	FieldYearMonth   Field = "year_month"
)

// Valid verifica se o campo pode ser usado como chave de agrupamento
func (f Field) Valid() bool {
	switch f {
	case FieldYear, FieldMonth, FieldYearMonth:
		return true
	}
	return Dimension(f).Valid()
}

// Value extrai o valor textual da chave de um registro
func (f Field) Value(r SalesRecord) string {
	switch f {
	case FieldYear:
		return fmt.Sprintf("%04d", r.Year)
	case FieldMonth:
		return fmt.Sprintf("%02d", r.Month)
	case FieldYearMonth:
		return r.YearMonth()
	}
	return Dimension(f).Value(r)
}

// Measure identifica a medida numérica reduzida em uma agregação
type Measure string

const (
	MeasureUnitsSold       Measure = "units_sold"
	MeasureTotalSales      Measure = "total_sales"
	MeasureOperatingProfit Measure = "operating_profit"
	MeasurePricePerUnit    Measure = "price_per_unit"
	MeasureOperatingMargin Measure = "operating_margin"
	MeasureProfitRate      Measure = "profit_rate"
)

// Valid verifica se a medida é conhecida
func (m Measure) Valid() bool {
	switch m {
	case MeasureUnitsSold, MeasureTotalSales, MeasureOperatingProfit,
		MeasurePricePerUnit, MeasureOperatingMargin, MeasureProfitRate:
		return true
	}
	return false
}

// Value extrai o valor da medida de um registro
func (m Measure) Value(r SalesRecord) float64 {
	switch m {
	case MeasureUnitsSold:
		return float64(r.UnitsSold)
	case MeasureTotalSales:
		return r.TotalSales
	case MeasureOperatingProfit:
		return r.OperatingProfit
	case MeasurePricePerUnit:
		return r.PricePerUnit
	case MeasureOperatingMargin:
		return r.OperatingMarginPct
	case MeasureProfitRate:
		return r.ProfitRate
	}
	return 0
}

// AggregateOp é a operação de redução aplicada em cada grupo
type AggregateOp string

const (
	OpSum   AggregateOp = "sum"
	OpMean  AggregateOp = "mean"
	OpCount AggregateOp = "count"
)

// Valid verifica se a operação é suportada
func (op AggregateOp) Valid() bool {
	return op == OpSum || op == OpMean || op == OpCount
}
