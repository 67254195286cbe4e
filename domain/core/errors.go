package core

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors - centralized error definitions
var (
	// Input errors
	ErrInputNotFound  = errors.New("input file not found")
	ErrMissingColumns = errors.New("required columns missing")
	ErrEmptyDataset   = errors.New("dataset is empty after cleaning")

	// Configuration errors
	ErrUnknownSelection = errors.New("unknown histogram category selection")
)

// Error constructors with context
func NewInputNotFoundError(path string) error {
	return fmt.Errorf("%w: %s", ErrInputNotFound, path)
}

func NewMissingColumnsError(columns []string) error {
	return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(columns, ", "))
}

func NewEmptyDatasetError(source string, rowsRead int) error {
	return fmt.Errorf("%w: %s (%d rows read, none survived)", ErrEmptyDataset, source, rowsRead)
}

// Error checking helpers
func IsInputError(err error) bool {
	return errors.Is(err, ErrInputNotFound) ||
		errors.Is(err, ErrMissingColumns) ||
		errors.Is(err, ErrEmptyDataset)
}
