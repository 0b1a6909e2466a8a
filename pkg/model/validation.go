package model

import (
	"fmt"
	"strings"
)

// ValidationError is one rejected settings field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass.
type ValidationErrors []ValidationError

func (es ValidationErrors) Error() string {
	if len(es) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("invalid settings:\n")
	for _, e := range es {
		sb.WriteString(fmt.Sprintf("  - %s\n", e.Error()))
	}
	return sb.String()
}

type Validator interface {
	Validate() ValidationErrors
}

var _ Validator = (*Settings)(nil)
