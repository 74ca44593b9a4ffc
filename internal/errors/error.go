package errors

import (
	"bufio"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig Category = "config"
	CategoryServer Category = "server"
	CategoryCLI    Category = "cli"
)

// Location represents a position in a file.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// SliderError is a structured error with an optional file location and a
// fix suggestion.
type SliderError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the file position the error refers to.
	Location *Location

	// Context contains the lines around Location.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *SliderError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *SliderError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds a file position and reads the surrounding lines.
func (e *SliderError) WithLocation(file string, line, column int) *SliderError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *SliderError) WithSuggestion(s string) *SliderError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *SliderError) WithDetail(d string) *SliderError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *SliderError) Wrap(err error) *SliderError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around targetLine from a file.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// contextStart returns the line number of the first context line.
func (e *SliderError) contextStart() int {
	start := e.Location.Line - 5/2
	if start < 1 {
		start = 1
	}
	return start
}

// New creates a SliderError from a registered error code.
func New(code string) *SliderError {
	template, ok := registry[code]
	if !ok {
		return &SliderError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &SliderError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a SliderError with a formatted message and no code.
func Newf(category Category, format string, args ...any) *SliderError {
	return &SliderError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a SliderError. SliderErrors are
// returned unchanged.
func FromError(err error, code string) *SliderError {
	if err == nil {
		return nil
	}
	if se, ok := err.(*SliderError); ok {
		return se
	}
	return New(code).Wrap(err)
}
