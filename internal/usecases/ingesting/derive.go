package ingesting

import "github.com/vfg2006/sales-dashboard-api/internal/domain"

// DeriveFields preenche ProfitRate, Year e Month a partir dos campos normalizados
func DeriveFields(r domain.SalesRecord) domain.SalesRecord {
	r.ProfitRate = r.OperatingMarginPct / 100
	r.Year = r.InvoiceDate.Year()
	r.Month = int(r.InvoiceDate.Month())
	return r
}
