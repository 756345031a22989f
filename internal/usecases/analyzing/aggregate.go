package analyzing

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

var (
	ErrInvalidField   = errors.New("campo de agrupamento inválido")
	ErrInvalidMeasure = errors.New("medida inválida")
	ErrInvalidOp      = errors.New("operação de agregação inválida")
)

type group struct {
	key   []string
	sum   decimal.Decimal
	count int
}

// Aggregate agrupa os registros pelos campos informados e reduz a medida em cada grupo.
// Os grupos aparecem na ordem da primeira ocorrência; só existem grupos com ao menos um registro.
func Aggregate(records []domain.SalesRecord, groupBy []domain.Field, measure domain.Measure, op domain.AggregateOp) (*domain.AggregateTable, error) {
	if err := validate(groupBy, measure, op); err != nil {
		return nil, err
	}

	groups := groupRecords(records, groupBy, measure)

	table := &domain.AggregateTable{
		GroupBy: groupBy,
		Measure: measure,
		Op:      op,
		Rows:    make([]domain.AggregateRow, 0, len(groups)),
	}

	for _, g := range groups {
		table.Rows = append(table.Rows, domain.AggregateRow{
			Key:   g.key,
			Value: reduce(g, op),
			Count: g.count,
		})
	}

	return table, nil
}

// SortByValue ordena as linhas da tabela pelo valor. Empates mantêm a ordem anterior.
func SortByValue(table *domain.AggregateTable, desc bool) {
	sort.SliceStable(table.Rows, func(i, j int) bool {
		if desc {
			return table.Rows[i].Value > table.Rows[j].Value
		}
		return table.Rows[i].Value < table.Rows[j].Value
	})
}

// Limit mantém apenas as n primeiras linhas (n <= 0 não limita)
func Limit(table *domain.AggregateTable, n int) {
	if n > 0 && len(table.Rows) > n {
		table.Rows = table.Rows[:n]
	}
}

func validate(groupBy []domain.Field, measure domain.Measure, op domain.AggregateOp) error {
	for _, f := range groupBy {
		if !f.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidField, f)
		}
	}
	if !measure.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMeasure, measure)
	}
	if !op.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidOp, op)
	}
	return nil
}

func groupRecords(records []domain.SalesRecord, groupBy []domain.Field, measure domain.Measure) []*group {
	index := make(map[string]*group)
	order := make([]*group, 0)

	for _, r := range records {
		key := make([]string, len(groupBy))
		for i, f := range groupBy {
			key[i] = f.Value(r)
		}

		id := groupID(key)
		g, ok := index[id]
		if !ok {
			g = &group{key: key}
			index[id] = g
			order = append(order, g)
		}

		g.sum = g.sum.Add(decimal.NewFromFloat(measure.Value(r)))
		g.count++
	}

	return order
}

// groupID prefixa cada parte com o tamanho, então nenhum valor do feed consegue juntar dois grupos
func groupID(key []string) string {
	var b strings.Builder
	for _, part := range key {
		b.WriteString(strconv.Itoa(len(part)))
		b.WriteByte(':')
		b.WriteString(part)
	}
	return b.String()
}

func reduce(g *group, op domain.AggregateOp) float64 {
	switch op {
	case domain.OpCount:
		return float64(g.count)
	case domain.OpMean:
		return g.sum.Div(decimal.NewFromInt(int64(g.count))).InexactFloat64()
	default:
		return g.sum.InexactFloat64()
	}
}

// Run executa o pipeline agrupar -> agregar -> ordenar -> limitar
func Run(records []domain.SalesRecord, req domain.AggregateRequest) (*domain.AggregateTable, error) {
	table, err := Aggregate(records, req.GroupBy, req.Measure, req.Op)
	if err != nil {
		return nil, err
	}

	switch req.Sort {
	case "asc":
		SortByValue(table, false)
	case "desc":
		SortByValue(table, true)
	}

	Limit(table, req.Limit)
	return table, nil
}
