package service

import "errors"

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	// ErrTableWithoutID is returned when an upsert targets a table that has no id column.
	ErrTableWithoutID = errors.New("table has no id column")

	ErrInvalidSchedule = errors.New("invalid sync schedule")

	ErrConnectionCheck = errors.New("connection check failed")
)
