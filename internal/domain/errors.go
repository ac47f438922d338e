package domain

import (
	"errors"
	"fmt"
)

// Configuration errors returned by the environment registry
var (
	ErrEmptyName          = errors.New("environment name must be a non-empty string")
	ErrEmptyTag           = errors.New("environment tag must be a non-empty string")
	ErrDuplicateName      = errors.New("environment name already exists")
	ErrDuplicateTag       = errors.New("environment tag already in use")
	ErrUnknownEnvironment = errors.New("environment not found")
	ErrNilAction          = errors.New("hotkey action must be callable")
	ErrInvalidCombination = errors.New("invalid hotkey combination")
)

// Lifecycle errors returned by the manager
var (
	ErrAlreadyInitialized = errors.New("manager already initialized")
	ErrDestroyed          = errors.New("manager destroyed")
	ErrNoInputSource      = errors.New("input source is required")
)

// HotkeyPanicError wraps a value recovered from a panicking shortcut action
type HotkeyPanicError struct {
	Token string
	Value any
}

// Error implements the error interface
func (e *HotkeyPanicError) Error() string {
	return fmt.Sprintf("hotkey action for %s panicked: %v", e.Token, e.Value)
}
