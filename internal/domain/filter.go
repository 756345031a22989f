package domain

// FilterCriteria guarda o conjunto de valores permitidos por dimensão.
// Uma dimensão sem conjunto, ou com conjunto vazio, não aceita nenhum registro.
type FilterCriteria struct {
	allowed map[Dimension]map[string]struct{}
}

// NewFilterCriteria cria critérios vazios (nenhum registro passa até que as dimensões sejam definidas)
func NewFilterCriteria() FilterCriteria {
	return FilterCriteria{allowed: make(map[Dimension]map[string]struct{}, len(Dimensions))}
}

// Set define o conjunto de valores aceitos para a dimensão, substituindo o anterior
func (c *FilterCriteria) Set(dim Dimension, values ...string) {
	if c.allowed == nil {
		c.allowed = make(map[Dimension]map[string]struct{}, len(Dimensions))
	}

	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	c.allowed[dim] = set
}

// Allows verifica se o valor pertence ao conjunto da dimensão
func (c FilterCriteria) Allows(dim Dimension, value string) bool {
	set, ok := c.allowed[dim]
	if !ok {
		return false
	}
	_, ok = set[value]
	return ok
}

// Matches verifica se o registro satisfaz todas as dimensões ao mesmo tempo
func (c FilterCriteria) Matches(r SalesRecord) bool {
	for _, dim := range Dimensions {
		if !c.Allows(dim, dim.Value(r)) {
			return false
		}
	}
	return true
}

// HasEmptyDimension indica se alguma dimensão ficou sem valores (o resultado será sempre vazio)
func (c FilterCriteria) HasEmptyDimension() bool {
	for _, dim := range Dimensions {
		if len(c.allowed[dim]) == 0 {
			return true
		}
	}
	return false
}

// FilterQuery guarda os valores pedidos por dimensão na API.
// Dimensão ausente não restringe; dimensão presente com lista vazia exclui tudo.
type FilterQuery map[Dimension][]string
