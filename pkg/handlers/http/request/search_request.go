package request

import (
	"fmt"
	"strings"
)

type SearchRequest struct {
	Query string `json:"query"`
	// Documents to search; when omitted the loaded decision dataset is
	// searched instead.
	Documents []string `json:"documents,omitempty"`
	TopK      *int     `json:"top_k,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`
}

func (r *SearchRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return fmt.Errorf("query is required")
	}
	return nil
}
