// Package repository defines the data access interface for crewmap records.
//
// The sqlite subpackage implements it on modernc.org/sqlite. Get methods
// return nil, nil when a record does not exist; callers decide whether that
// is an error.
package repository
