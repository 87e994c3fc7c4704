package schema

import (
	"database/sql"
	"fmt"
	"strings"

	"schema-gate/internal/dialect"
)

// ListTables returns the existing base tables in the target schema,
// keyed by uppercased name for case-insensitive lookups (Oracle folds
// unquoted identifiers to upper case).
func ListTables(db *sql.DB, d dialect.Dialect, schemaName string) (map[string]bool, error) {
	rows, err := db.Query(d.ListTablesQuery(), schemaName)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	existing := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		existing[strings.ToUpper(name)] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}
	return existing, nil
}

// TableExists checks for one table in the target schema.
func TableExists(db *sql.DB, d dialect.Dialect, schemaName, table string) (bool, error) {
	var n int
	if err := db.QueryRow(d.TableExistsQuery(), schemaName, table).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// EnumExists checks the type catalog for an enum type. Only meaningful
// on dialects with SupportsEnumTypes.
func EnumExists(db *sql.DB, d dialect.Dialect, name string) (bool, error) {
	var n int
	if err := db.QueryRow(d.EnumExistsQuery(), name).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}
