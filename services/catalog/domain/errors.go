package domain

import "errors"

// Sentinel errors for the catalog domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates no item exists with the requested id.
	ErrItemNotFound = errors.New("item not found")

	// ErrItemAlreadyExists indicates an item with the same name already exists.
	ErrItemAlreadyExists = errors.New("item already exists")

	// ErrUnauthorized indicates the requester's role may not perform the operation.
	ErrUnauthorized = errors.New("you do not have permission to delete items")

	// ErrInvalidField indicates a partial update named a field that cannot be changed.
	ErrInvalidField = errors.New("invalid field")

	// ErrInvalidValue indicates a recognized field received a value of the wrong shape.
	ErrInvalidValue = errors.New("invalid value")

	// ErrInvalidInput indicates a candidate item or a new price violates domain constraints.
	ErrInvalidInput = errors.New("invalid item data")
)
