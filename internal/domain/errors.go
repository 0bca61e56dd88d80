package domain

import "errors"

var (
	// ErrNotFound is returned when a record does not exist
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when creating a record whose id is taken
	ErrConflict = errors.New("already exists")
	// ErrInvalidRecord is returned when a record fails validation
	ErrInvalidRecord = errors.New("invalid record")
	// ErrInvalidReference is returned when a record points at a missing set or alliance
	ErrInvalidReference = errors.New("referenced record does not exist")
	// ErrInvalidNodeRef is returned for node ids without a "<kind>-<id>" shape
	ErrInvalidNodeRef = errors.New("invalid node id")
	// ErrUnknownKind is returned for node ids whose kind is not member, set or alliance
	ErrUnknownKind = errors.New("unknown node kind")
)
