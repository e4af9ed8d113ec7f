package store

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/penny-sync/models"
)

// Dialect captures the SQL differences between the supported backends.
type Dialect struct {
	Name         string
	GooseDialect string
	Placeholder  sq.PlaceholderFormat
	MaxParams    int

	tableExistsQuery string
	columnsQuery     string
	types            map[models.ColumnType]string
}

var (
	PostgresDialect = Dialect{
		Name:         "postgres",
		GooseDialect: "pgx",
		Placeholder:  sq.Dollar,
		MaxParams:    65535,
		tableExistsQuery: `SELECT COUNT(*) FROM information_schema.tables
			WHERE table_schema = current_schema() AND table_name = $1`,
		columnsQuery: `SELECT column_name FROM information_schema.columns
			WHERE table_schema = current_schema() AND table_name = $1
			ORDER BY ordinal_position`,
		types: map[models.ColumnType]string{
			models.ColumnInteger: "BIGINT",
			models.ColumnFloat:   "DOUBLE PRECISION",
			models.ColumnBoolean: "BOOLEAN",
			models.ColumnText:    "TEXT",
		},
	}

	SQLiteDialect = Dialect{
		Name:             "sqlite",
		GooseDialect:     "sqlite3",
		Placeholder:      sq.Question,
		MaxParams:        32766,
		tableExistsQuery: `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`,
		columnsQuery:     `SELECT name FROM pragma_table_info(?) ORDER BY cid`,
		types: map[models.ColumnType]string{
			models.ColumnInteger: "INTEGER",
			models.ColumnFloat:   "REAL",
			models.ColumnBoolean: "BOOLEAN",
			models.ColumnText:    "TEXT",
		},
	}
)

// ColumnType returns the SQL type used for t.
func (d Dialect) ColumnType(t models.ColumnType) string {
	if name, ok := d.types[t]; ok {
		return name
	}
	return "TEXT"
}

func (d Dialect) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(d.Placeholder)
}
