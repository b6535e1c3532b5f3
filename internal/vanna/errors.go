package vanna

import (
	"errors"
	"fmt"
)

var (
	ErrNoDatabase     = errors.New("no database configured")
	ErrNotInitialized = errors.New("vanna engine is not initialized")
)

// InitializationError means the engine could not be constructed or connected.
type InitializationError struct {
	Err error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("Error initializing Vanna AI: %v", e.Err)
}

func (e *InitializationError) Unwrap() error { return e.Err }

// GenerationError means the engine failed to turn a question into SQL.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("Error generating SQL: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ExecutionError means the generated SQL could not be run.
type ExecutionError struct {
	Err error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("Error executing query: %v", e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }
