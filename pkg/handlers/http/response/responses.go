package response

import (
	"github.com/govmind/decisions-api/pkg/app/search"
)

type AskResponse struct {
	Answer  string `json:"answer"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type SearchResponse struct {
	Results   []search.Match `json:"results"`
	TopK      int            `json:"top_k"`
	Threshold float64        `json:"threshold"`
}

type StatsResponse struct {
	TotalRecords int      `json:"total_records"`
	Columns      []string `json:"columns"`
	DataLoaded   bool     `json:"data_loaded"`
	SampleRecord any      `json:"sample_record,omitempty"`
	LoadedAt     string   `json:"loaded_at,omitempty"`
}

type ReloadResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	RecordsCount int    `json:"records_count"`
}

type CountResponse struct {
	TotalRecords  int64  `json:"total_records"`
	LoadedRecords int    `json:"loaded_records"`
	Status        string `json:"status"`
}
