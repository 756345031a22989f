package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrFetchFailure indica que o feed de origem não pôde ser obtido
	ErrFetchFailure = errors.New("falha ao obter o feed de vendas")
	// ErrMalformedNumber indica um valor numérico inválido depois da limpeza de formatação
	ErrMalformedNumber = errors.New("valor numérico inválido")
	// ErrMissingColumn indica que uma coluna obrigatória não existe no cabeçalho
	ErrMissingColumn = errors.New("coluna obrigatória ausente")
	// ErrDatasetUnavailable indica que o chamador deixou de aguardar a carga do dataset
	ErrDatasetUnavailable = errors.New("dataset indisponível")
)

// MalformedNumberError detalha o valor que abortou a normalização
type MalformedNumberError struct {
	Column string
	Line   int
	Value  string
}

func (e *MalformedNumberError) Error() string {
	return fmt.Sprintf("%s: coluna %q, linha %d, valor %q", ErrMalformedNumber, e.Column, e.Line, e.Value)
}

func (e *MalformedNumberError) Unwrap() error {
	return ErrMalformedNumber
}

// MissingColumnError informa a coluna que faltou no cabeçalho
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMissingColumn, e.Column)
}

func (e *MissingColumnError) Unwrap() error {
	return ErrMissingColumn
}
