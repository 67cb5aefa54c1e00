package request

import (
	"fmt"
	"strings"
)

type AskRequest struct {
	Question string `json:"question"`
}

func (r *AskRequest) Validate() error {
	if strings.TrimSpace(r.Question) == "" {
		return fmt.Errorf("question is required")
	}
	return nil
}
