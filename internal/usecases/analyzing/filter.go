// Package analyzing reúne o filtro, as agregações e as visões do painel de vendas.
// Todas as funções são puras: recebem registros já derivados e não alteram a entrada.
package analyzing

import "github.com/vfg2006/sales-dashboard-api/internal/domain"

// ApplyFilter retorna os registros aceitos pelos critérios, na ordem original
func ApplyFilter(records []domain.SalesRecord, criteria domain.FilterCriteria) []domain.SalesRecord {
	filtered := make([]domain.SalesRecord, 0, len(records))
	if criteria.HasEmptyDimension() {
		return filtered
	}

	for _, r := range records {
		if criteria.Matches(r) {
			filtered = append(filtered, r)
		}
	}

	return filtered
}

// DistinctValues lista os valores distintos da dimensão na ordem da primeira ocorrência
func DistinctValues(records []domain.SalesRecord, dim domain.Dimension) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)

	for _, r := range records {
		v := dim.Value(r)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}

	return values
}

// FilterOptions lista os valores distintos de todas as dimensões filtráveis
func FilterOptions(records []domain.SalesRecord) domain.FilterOptions {
	options := make(domain.FilterOptions, len(domain.Dimensions))
	for _, dim := range domain.Dimensions {
		options[dim] = DistinctValues(records, dim)
	}
	return options
}

// FullCriteria monta critérios que aceitam todos os valores presentes nos registros
func FullCriteria(records []domain.SalesRecord) domain.FilterCriteria {
	return ResolveCriteria(records, nil)
}

// ResolveCriteria converte a consulta da API em critérios: dimensões ausentes aceitam todos os valores presentes nos registros
func ResolveCriteria(records []domain.SalesRecord, query domain.FilterQuery) domain.FilterCriteria {
	criteria := domain.NewFilterCriteria()
	for _, dim := range domain.Dimensions {
		if values, ok := query[dim]; ok {
			criteria.Set(dim, values...)
			continue
		}
		criteria.Set(dim, DistinctValues(records, dim)...)
	}
	return criteria
}
