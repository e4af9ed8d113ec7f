package models

import (
	"strings"
	"time"
)

// Operation is the kind of change reported by a changelog entry.
type Operation string

const (
	OperationInsert Operation = "insert"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// ParseOperation maps a remote operation name. "create" is read as insert.
func ParseOperation(s string) (Operation, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "insert", "create", "created":
		return OperationInsert, true
	case "update", "updated":
		return OperationUpdate, true
	case "delete", "deleted", "destroy":
		return OperationDelete, true
	default:
		return "", false
	}
}

// ChangeEvent is one changelog entry. Several events may share a RemoteID.
type ChangeEvent struct {
	RemoteID   int64
	Operation  Operation
	ObservedAt time.Time
}
