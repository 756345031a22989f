package analyzing

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// MonthlyTrend soma unidades e vendas por mês, em ordem cronológica
func MonthlyTrend(records []domain.SalesRecord) []domain.MonthlyTrendPoint {
	type bucket struct {
		year, month int
		units       int
		sales       decimal.Decimal
	}

	buckets := make(map[string]*bucket)
	for _, r := range records {
		period := r.YearMonth()
		b, ok := buckets[period]
		if !ok {
			b = &bucket{year: r.Year, month: r.Month}
			buckets[period] = b
		}
		b.units += r.UnitsSold
		b.sales = b.sales.Add(decimal.NewFromFloat(r.TotalSales))
	}

	points := make([]domain.MonthlyTrendPoint, 0, len(buckets))
	for period, b := range buckets {
		points = append(points, domain.MonthlyTrendPoint{
			Period:     period,
			Year:       b.year,
			Month:      b.month,
			UnitsSold:  b.units,
			TotalSales: b.sales.InexactFloat64(),
		})
	}

	sort.Slice(points, func(i, j int) bool {
		if points[i].Year != points[j].Year {
			return points[i].Year < points[j].Year
		}
		return points[i].Month < points[j].Month
	})

	return points
}

// RetailerTotals totaliza por varejista, do maior para o menor total de vendas
func RetailerTotals(records []domain.SalesRecord) []domain.CategoryTotal {
	return categoryTotals(records, domain.DimensionRetailer)
}

// ProductTotals totaliza por produto, do maior para o menor total de vendas
func ProductTotals(records []domain.SalesRecord) []domain.CategoryTotal {
	return categoryTotals(records, domain.DimensionProduct)
}

func categoryTotals(records []domain.SalesRecord, dim domain.Dimension) []domain.CategoryTotal {
	type bucket struct {
		name   string
		sales  decimal.Decimal
		profit decimal.Decimal
		units  int
	}

	index := make(map[string]*bucket)
	order := make([]*bucket, 0)
	for _, r := range records {
		name := dim.Value(r)
		b, ok := index[name]
		if !ok {
			b = &bucket{name: name}
			index[name] = b
			order = append(order, b)
		}
		b.sales = b.sales.Add(decimal.NewFromFloat(r.TotalSales))
		b.profit = b.profit.Add(decimal.NewFromFloat(r.OperatingProfit))
		b.units += r.UnitsSold
	}

	totals := make([]domain.CategoryTotal, 0, len(order))
	for _, b := range order {
		totals = append(totals, domain.CategoryTotal{
			Name:            b.name,
			TotalSales:      b.sales.InexactFloat64(),
			OperatingProfit: b.profit.InexactFloat64(),
			UnitsSold:       b.units,
		})
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].TotalSales > totals[j].TotalSales
	})

	return totals
}

// SalesMethodSummary calcula a margem operacional média e o preço médio por método de venda
func SalesMethodSummary(records []domain.SalesRecord) []domain.SalesMethodStat {
	groupBy := []domain.Field{domain.FieldSalesMethod}

	// campos e operações fixos, a validação não falha
	margins, _ := Aggregate(records, groupBy, domain.MeasureOperatingMargin, domain.OpMean)
	prices, _ := Aggregate(records, groupBy, domain.MeasurePricePerUnit, domain.OpMean)

	stats := make([]domain.SalesMethodStat, len(margins.Rows))
	for i, row := range margins.Rows {
		stats[i] = domain.SalesMethodStat{
			SalesMethod:            row.Key[0],
			AverageOperatingMargin: row.Value,
			AveragePricePerUnit:    prices.Rows[i].Value,
			Records:                row.Count,
		}
	}

	return stats
}

// YearMonthByProduct cruza ano-mês (linhas, em ordem cronológica) e produto, somando unidades vendidas
func YearMonthByProduct(records []domain.SalesRecord) *domain.PivotTable {
	pivot, _ := Pivot(records, domain.FieldYearMonth, domain.FieldProduct, domain.MeasureUnitsSold, domain.OpSum)
	SortPivotRows(pivot)
	return pivot
}

// ProductByRegion cruza produto (linhas) e região, somando unidades vendidas
func ProductByRegion(records []domain.SalesRecord) *domain.PivotTable {
	pivot, _ := Pivot(records, domain.FieldProduct, domain.FieldRegion, domain.MeasureUnitsSold, domain.OpSum)
	return pivot
}

// PriceVolumePoints projeta cada registro em preço por unidade x unidades vendidas
func PriceVolumePoints(records []domain.SalesRecord) []domain.PricePoint {
	points := make([]domain.PricePoint, len(records))
	for i, r := range records {
		points[i] = domain.PricePoint{
			Product:      r.Product,
			Region:       r.Region,
			PricePerUnit: r.PricePerUnit,
			UnitsSold:    r.UnitsSold,
		}
	}
	return points
}

// Summarize calcula os indicadores do topo do painel. Sem registros, as médias ficam em 0 e Empty é true.
func Summarize(records []domain.SalesRecord) domain.Summary {
	summary := domain.Summary{
		Records: len(records),
		Empty:   len(records) == 0,
	}
	if summary.Empty {
		return summary
	}

	var sales, profit, rate, price decimal.Decimal
	for _, r := range records {
		sales = sales.Add(decimal.NewFromFloat(r.TotalSales))
		profit = profit.Add(decimal.NewFromFloat(r.OperatingProfit))
		rate = rate.Add(decimal.NewFromFloat(r.ProfitRate))
		price = price.Add(decimal.NewFromFloat(r.PricePerUnit))
		summary.TotalUnitsSold += r.UnitsSold
	}

	n := decimal.NewFromInt(int64(len(records)))
	summary.TotalSales = sales.InexactFloat64()
	summary.TotalOperatingProfit = profit.InexactFloat64()
	summary.AverageProfitRate = rate.Div(n).InexactFloat64()
	summary.AveragePricePerUnit = price.Div(n).InexactFloat64()

	return summary
}
