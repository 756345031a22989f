package domain

import "time"

// Motivos de descarte de linhas na normalização
const (
	DropReasonMissingDate = "missing_date"
)

// DroppedRow descreve uma linha descartada durante a normalização
type DroppedRow struct {
	Line   int    `json:"line"`
	Column string `json:"column"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// Dataset é o conjunto de registros produzido por uma carga. Não deve ser alterado depois de publicado.
type Dataset struct {
	ID          string
	Source      string
	ContentHash string
	LoadedAt    time.Time
	Records     []SalesRecord
	Dropped     []DroppedRow
}

// DatasetInfo resume os metadados de um dataset para a API
type DatasetInfo struct {
	ID           string       `json:"id"`
	Source       string       `json:"source"`
	ContentHash  string       `json:"content_hash"`
	LoadedAt     time.Time    `json:"loaded_at"`
	RecordCount  int          `json:"record_count"`
	DroppedCount int          `json:"dropped_count"`
	Dropped      []DroppedRow `json:"dropped,omitempty"`
}

// Info monta os metadados do dataset
func (d *Dataset) Info() DatasetInfo {
	return DatasetInfo{
		ID:           d.ID,
		Source:       d.Source,
		ContentHash:  d.ContentHash,
		LoadedAt:     d.LoadedAt,
		RecordCount:  len(d.Records),
		DroppedCount: len(d.Dropped),
		Dropped:      d.Dropped,
	}
}
