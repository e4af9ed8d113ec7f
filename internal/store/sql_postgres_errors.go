// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells the repositories what to do with a failed statement.
type ErrorClassification int

const (
	// NonRetryable is the default for unrecognised errors.
	NonRetryable ErrorClassification = iota

	// Retryable failures may succeed on a second attempt (connection loss,
	// serialization failure, deadlock, busy database).
	Retryable

	// SchemaDrift means the payload no longer fits the replicated table: a
	// value of another type or a column the table lacks. Only a full reload
	// recreates the table, so these are reported as [ErrSchemaDrift].
	SchemaDrift
)

// PostgresErrorClassifier implements [ErrorClassificator] for the pgx driver.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if err == nil || !errors.As(err, &pgErr) {
		return NonRetryable
	}
	return ClassifyPgError(pgErr)
}

// ClassifyPgError maps a PostgreSQL error code.
//
// Retryable: class 08 connection exceptions, class 40 rollbacks, 57P03.
// SchemaDrift: datatype mismatch, invalid text representation, numeric
// out of range and undefined column.
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	switch pgErr.Code {
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		pgerrcode.TransactionRollback,
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected,
		pgerrcode.CannotConnectNow:
		return Retryable

	case pgerrcode.DatatypeMismatch,
		pgerrcode.InvalidTextRepresentation,
		pgerrcode.NumericValueOutOfRange,
		pgerrcode.UndefinedColumn:
		return SchemaDrift
	}

	return NonRetryable
}
