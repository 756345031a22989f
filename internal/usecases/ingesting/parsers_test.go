package ingesting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{raw: "$1,234.50", want: 1234.5},
		{raw: " $60,000.00 ", want: 60000},
		{raw: "50", want: 50},
		{raw: "-$5.25", want: -5.25},
		{raw: "$", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "US$ 10", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseCurrency(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCount(t *testing.T) {
	got, err := ParseCount("1,234")
	assert.NoError(t, err)
	assert.Equal(t, 1234, got)

	got, err = ParseCount("1,234,567")
	assert.NoError(t, err)
	assert.Equal(t, 1234567, got)

	_, err = ParseCount("12.5")
	assert.Error(t, err)

	_, err = ParseCount("")
	assert.Error(t, err)
}

func TestParsePercent(t *testing.T) {
	got, err := ParsePercent("25.00%")
	assert.NoError(t, err)
	assert.Equal(t, 25.0, got)

	got, err = ParsePercent("1,050%")
	assert.NoError(t, err)
	assert.Equal(t, 1050.0, got)

	got, err = ParsePercent("0.35")
	assert.NoError(t, err)
	assert.Equal(t, 0.35, got)

	_, err = ParsePercent("%")
	assert.Error(t, err)
}

func TestParseInvoiceDate(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
		ok   bool
	}{
		{raw: "1/1/20", want: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), ok: true},
		{raw: "12/31/2021", want: time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC), ok: true},
		{raw: "2021-06-15", want: time.Date(2021, 6, 15, 0, 0, 0, 0, time.UTC), ok: true},
		{raw: "2021-06-15 10:30:00", want: time.Date(2021, 6, 15, 10, 30, 0, 0, time.UTC), ok: true},
		{raw: "2020-01-01 00:00:00+00", want: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), ok: true},
		{raw: "2021-06-15 10:30:00.5-03", want: time.Date(2021, 6, 15, 13, 30, 0, 500000000, time.UTC), ok: true},
		{raw: "2021-06-15 10:30:00+05:30", want: time.Date(2021, 6, 15, 5, 0, 0, 0, time.UTC), ok: true},
		{raw: "not-a-date", ok: false},
		{raw: "13/45/2020", ok: false},
		{raw: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseInvoiceDate(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "esperado %s, obtido %s", tt.want, got)
			}
		})
	}
}

func TestDeriveFields(t *testing.T) {
	record := domain.SalesRecord{
		InvoiceDate:        time.Date(2021, 9, 3, 0, 0, 0, 0, time.UTC),
		OperatingMarginPct: 42,
	}

	derived := DeriveFields(record)

	assert.InDelta(t, 0.42, derived.ProfitRate, 1e-12)
	assert.Equal(t, 2021, derived.Year)
	assert.Equal(t, 9, derived.Month)
	assert.Zero(t, record.ProfitRate, "registro original não deve ser alterado")
}
