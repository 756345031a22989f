package domain

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// RawTable é o conteúdo tabular bruto de um feed, ainda sem conversão de tipos
type RawTable struct {
	Header []string
	Rows   [][]string
}

// RawSource é o resultado de uma leitura do feed
type RawSource struct {
	Name        string // URL ou tabela de origem
	ContentHash string
	Table       RawTable
}

// DecodeCSV lê um documento CSV com linha de cabeçalho.
// Linhas com número de colunas diferente do cabeçalho são aceitas e tratadas na normalização.
func DecodeCSV(r io.Reader) (RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return RawTable{}, fmt.Errorf("%w: documento vazio", ErrMissingColumn)
		}
		return RawTable{}, fmt.Errorf("erro ao ler cabeçalho do CSV: %w", err)
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return RawTable{}, fmt.Errorf("erro ao ler linhas do CSV: %w", err)
	}

	return RawTable{Header: header, Rows: rows}, nil
}

// Fingerprint calcula o sha256 do conteúdo da tabela. Dois feeds com o mesmo conteúdo têm a mesma impressão.
func (t RawTable) Fingerprint() string {
	h := sha256.New()
	writeRow := func(row []string) {
		for _, cell := range row {
			fmt.Fprintf(h, "%d:%s", len(cell), cell)
		}
		h.Write([]byte{'\n'})
	}

	writeRow(t.Header)
	for _, row := range t.Rows {
		writeRow(row)
	}

	return hex.EncodeToString(h.Sum(nil))
}
