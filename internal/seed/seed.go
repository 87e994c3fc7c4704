package seed

import (
	"database/sql"
	"fmt"
	"strings"

	"schema-gate/internal/dialect"
	"schema-gate/internal/schema"
)

// Result reports what happened for one entity.
type Result struct {
	Entity   string
	Target   int
	Inserted int
	ErrorMsg string
}

// Run inserts demo data for every registry entity in dependency order.
// Insert-only: it never truncates or updates, so running it against a
// database with data just adds rows (unique collisions are skipped).
func Run(db *sql.DB, d dialect.Dialect, r *schema.Registry, count int, onProgress func()) ([]Result, error) {
	if r.Ordered() == nil {
		if err := r.InitAssociations(); err != nil {
			return nil, err
		}
	}

	var results []Result
	fkPool := make(map[string][]interface{}) // entity name -> available PK values

	for _, e := range r.Ordered() {
		query := insertQuery(d, e)
		inserted := 0
		var lastErr string

		for i := 0; i < count; i++ {
			values, ok := generateRow(e, i, fkPool)
			if !ok {
				lastErr = "foreign key pool empty, rows skipped"
				break
			}
			if _, err := db.Exec(query, values...); err != nil {
				// Unique collisions with existing data are expected on
				// re-runs; remember the last error for the report and
				// keep going.
				lastErr = err.Error()
				continue
			}
			inserted++
			if onProgress != nil {
				onProgress()
			}
		}

		refreshPool(db, d, e, fkPool)

		res := Result{Entity: e.Name, Target: count, Inserted: inserted}
		if inserted < count {
			res.ErrorMsg = lastErr
		}
		results = append(results, res)
	}
	return results, nil
}

func insertQuery(d dialect.Dialect, e *schema.Entity) string {
	var cols []string
	for i := range e.Columns {
		if e.Columns[i].Type == schema.TypeSerialPK {
			continue
		}
		cols = append(cols, d.QuoteIdent(e.Columns[i].Name))
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.QuoteIdent(e.Table),
		strings.Join(cols, ", "),
		dialect.GeneratePlaceholders(len(cols), d.Placeholder))
}

func generateRow(e *schema.Entity, index int, fkPool map[string][]interface{}) ([]interface{}, bool) {
	var values []interface{}
	for i := range e.Columns {
		c := &e.Columns[i]
		if c.Type == schema.TypeSerialPK {
			continue
		}
		if ref := association(e, c.Name); ref != "" {
			pool := fkPool[ref]
			if len(pool) == 0 {
				if c.Nullable {
					values = append(values, nil)
					continue
				}
				return nil, false
			}
			values = append(values, pool[index%len(pool)])
			continue
		}
		values = append(values, generateValue(e, c, index))
	}
	return values, true
}

func association(e *schema.Entity, column string) string {
	for _, a := range e.Associations {
		if a.Column == column {
			return a.RefEntity
		}
	}
	return ""
}

// refreshPool collects the entity's PK values so child entities can pick
// valid foreign keys.
func refreshPool(db *sql.DB, d dialect.Dialect, e *schema.Entity, fkPool map[string][]interface{}) {
	rows, err := db.Query(fmt.Sprintf("SELECT %s FROM %s", d.QuoteIdent("id"), d.QuoteIdent(e.Table)))
	if err != nil {
		return
	}
	defer rows.Close()

	fkPool[e.Name] = fkPool[e.Name][:0]
	for rows.Next() {
		var id interface{}
		if err := rows.Scan(&id); err == nil {
			fkPool[e.Name] = append(fkPool[e.Name], id)
		}
	}
}
