package regex

import "fmt"

// ArgumentError reports a nil operand or an operand built by another
// Provider. It is raised with panic.
type ArgumentError struct {
	ParamName string
	Message   string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("regex: %s (parameter: %s)", e.Message, e.ParamName)
}

// OutOfRangeError is returned when repeat bounds are inconsistent.
type OutOfRangeError struct {
	Min, Max int
}

func (e *OutOfRangeError) Error() string {
	if e.Min < 0 {
		return fmt.Sprintf("regex: repeat minimum %d is negative", e.Min)
	}
	if e.Max < Unbounded {
		return fmt.Sprintf("regex: repeat maximum %d is invalid", e.Max)
	}
	return fmt.Sprintf("regex: repeat minimum %d exceeds maximum %d", e.Min, e.Max)
}
