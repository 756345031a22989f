package domain

// Nomes das colunas do feed (já sem espaços nas pontas)
const (
	ColumnRegion          = "Region"
	ColumnRetailer        = "Retailer"
	ColumnInvoiceDate     = "Invoice Date"
	ColumnProduct         = "Product"
	ColumnPricePerUnit    = "Price per Unit"
	ColumnUnitsSold       = "Units Sold"
	ColumnTotalSales      = "Total Sales"
	ColumnOperatingProfit = "Operating Profit"
	ColumnOperatingMargin = "Operating Margin"
	ColumnSalesMethod     = "Sales Method"
)

// RequiredColumns são as colunas usadas pela normalização; colunas extras são ignoradas
var RequiredColumns = []string{
	ColumnRegion,
	ColumnRetailer,
	ColumnInvoiceDate,
	ColumnProduct,
	ColumnPricePerUnit,
	ColumnUnitsSold,
	ColumnTotalSales,
	ColumnOperatingProfit,
	ColumnOperatingMargin,
	ColumnSalesMethod,
}
