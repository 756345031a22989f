package dashboard

import (
	"errors"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/analyzing"
)

var ErrUnknownView = errors.New("visão desconhecida")

// View identifica uma visão tabular do painel
type View string

const (
	ViewMonthlyTrend View = "monthly-trend"
	ViewRetailers    View = "retailers"
	ViewProducts     View = "products"
	ViewSalesMethods View = "sales-methods"
	ViewPriceVolume  View = "price-volume"
)

// PivotView identifica uma tabela cruzada do painel
type PivotView string

const (
	PivotYearMonthByProduct PivotView = "year-month-by-product"
	PivotProductByRegion    PivotView = "product-by-region"
)

var views = map[View]func([]domain.SalesRecord) any{
	ViewMonthlyTrend: func(r []domain.SalesRecord) any { return analyzing.MonthlyTrend(r) },
	ViewRetailers:    func(r []domain.SalesRecord) any { return analyzing.RetailerTotals(r) },
	ViewProducts:     func(r []domain.SalesRecord) any { return analyzing.ProductTotals(r) },
	ViewSalesMethods: func(r []domain.SalesRecord) any { return analyzing.SalesMethodSummary(r) },
	ViewPriceVolume:  func(r []domain.SalesRecord) any { return analyzing.PriceVolumePoints(r) },
}

var pivots = map[PivotView]func([]domain.SalesRecord) *domain.PivotTable{
	PivotYearMonthByProduct: analyzing.YearMonthByProduct,
	PivotProductByRegion:    analyzing.ProductByRegion,
}
