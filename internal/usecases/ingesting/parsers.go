// Package ingesting converte o feed bruto de vendas em registros tipados
package ingesting

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	currencyReplacer = strings.NewReplacer("$", "", ",", "")
	countReplacer    = strings.NewReplacer(",", "")
	percentReplacer  = strings.NewReplacer("%", "", ",", "")
)

// Formatos aceitos para Invoice Date, na ordem de tentativa
var invoiceDateLayouts = []string{
	"1/2/06",
	"1/2/2006",
	time.DateOnly,
	time.DateTime,
	"2006-01-02 15:04:05-07",
	"2006-01-02 15:04:05-07:00",
	time.RFC3339,
	time.RFC3339Nano,
	"2006/01/02",
}

// ParseCurrency remove "$" e "," e converte para número ("$1,234.50" -> 1234.5)
func ParseCurrency(raw string) (float64, error) {
	return parseDecimal(currencyReplacer.Replace(raw))
}

// ParseCount remove "," e converte para inteiro ("1,234" -> 1234)
func ParseCount(raw string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(countReplacer.Replace(raw)))
}

// ParsePercent remove "%" e "," e converte para número ("25.00%" -> 25)
func ParsePercent(raw string) (float64, error) {
	return parseDecimal(percentReplacer.Replace(raw))
}

// ParseInvoiceDate converte a data da nota. Retorna false quando nenhum formato reconhece o valor.
func ParseInvoiceDate(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range invoiceDateLayouts {
		date, err := time.Parse(layout, value)
		if err == nil {
			return date, true
		}
	}

	return time.Time{}, false
}

func parseDecimal(value string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}
