package errors

import (
	"fmt"
	"strings"
)

// ValidationError reports what is wrong with one request field.
type ValidationError struct {
	Code     int      `json:"code"`
	Field    string   `json:"field"`
	Messages []string `json:"messages"`
}

func NewValidationError(code int, field string, messages ...string) *ValidationError {
	return &ValidationError{
		Code:     code,
		Field:    field,
		Messages: messages,
	}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return strings.Join(e.Messages, ", ")
	}
	return fmt.Sprintf("%s: %s", e.Field, strings.Join(e.Messages, ", "))
}

// ValidationErrorCollector gathers field errors so a request can report all of them at once.
type ValidationErrorCollector struct {
	errors []*ValidationError
}

func NewValidationErrorCollector() *ValidationErrorCollector {
	return &ValidationErrorCollector{}
}

// Add appends err and returns the collector for chaining.
func (c *ValidationErrorCollector) Add(err *ValidationError) *ValidationErrorCollector {
	if err != nil {
		c.errors = append(c.errors, err)
	}
	return c
}

func (c *ValidationErrorCollector) HasError() bool {
	return len(c.errors) > 0
}

func (c *ValidationErrorCollector) Errors() []*ValidationError {
	return c.errors
}

// Err returns the collector as an error, or nil when nothing was added.
func (c *ValidationErrorCollector) Err() error {
	if !c.HasError() {
		return nil
	}
	return c
}

func (c *ValidationErrorCollector) Error() string {
	msgs := make([]string, len(c.errors))
	for i, err := range c.errors {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
