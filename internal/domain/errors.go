package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrItemNotFound indicates the requested inventory item does not exist
	ErrItemNotFound = errors.New("item not found")

	// ErrUnknownPreference indicates a preference key outside the known set
	ErrUnknownPreference = errors.New("unknown preference key")

	// ErrStoreClosed indicates the store was used after Close
	ErrStoreClosed = errors.New("store is closed")

	// ErrEmptyName indicates an item or shopping entry without a name
	ErrEmptyName = errors.New("name must not be empty")
)
