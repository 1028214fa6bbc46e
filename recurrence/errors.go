package recurrence

import (
	"errors"
	"fmt"
)

// Rule validation errors
var (
	ErrInvalidFrequency  = errors.New("invalid frequency")
	ErrInvalidInterval   = errors.New("invalid interval")
	ErrInvalidCount      = errors.New("invalid count")
	ErrInvalidMonth      = errors.New("invalid month of the year")
	ErrInvalidMonthDay   = errors.New("invalid day of the month")
	ErrInvalidWeekday    = errors.New("invalid weekday")
	ErrInvalidOrdinal    = errors.New("invalid weekday ordinal")
	ErrUnsupportedFilter = errors.New("unsupported filter")
)

// RuleError describes why a Rule was rejected
type RuleError struct {
	Field   string // e.g. "interval", "daysOfTheMonth"
	Message string
	Err     error // one of the Err* sentinels
}

func (e *RuleError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap returns the underlying sentinel
func (e *RuleError) Unwrap() error {
	return e.Err
}

func ruleError(field string, sentinel error, format string, args ...any) *RuleError {
	return &RuleError{Field: field, Message: fmt.Sprintf(format, args...), Err: sentinel}
}
