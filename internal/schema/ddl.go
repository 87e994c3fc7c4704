package schema

import (
	"fmt"
	"strings"

	"schema-gate/internal/dialect"
)

// CreateTableSQL renders the non-destructive create statement for an
// entity. Only CREATE is ever emitted here; the no-data-loss contract
// forbids ALTER and DROP, so an existing table is left exactly as it is.
func (r *Registry) CreateTableSQL(d dialect.Dialect, e *Entity) string {
	defs := make([]string, 0, len(e.Columns))
	for i := range e.Columns {
		defs = append(defs, r.columnDef(d, e, &e.Columns[i]))
	}

	stmt := "CREATE TABLE "
	if d.CreateTableSupportsIfNotExists() {
		stmt += "IF NOT EXISTS "
	}
	return fmt.Sprintf("%s%s (%s)", stmt, d.QuoteIdent(e.Table), strings.Join(defs, ", "))
}

func (r *Registry) columnDef(d dialect.Dialect, e *Entity, c *Column) string {
	var sqlType string
	switch c.Type {
	case TypeSerialPK:
		sqlType = d.SerialPKType()
	case TypeVarchar:
		sqlType = d.VarcharType(c.Length)
	case TypeText:
		sqlType = d.TextType()
	case TypeInt:
		sqlType = d.IntType()
	case TypeEnum:
		sqlType = d.EnumColumnType(c.Name, c.Enum.Name, c.Enum.Values)
	case TypeTimestamp:
		sqlType = d.TimestampType()
	}

	def := d.QuoteIdent(c.Name) + " " + sqlType
	if c.Type != TypeSerialPK {
		if !c.Nullable {
			def += " NOT NULL"
		}
		if c.Unique {
			def += " UNIQUE"
		}
	}
	for _, a := range e.Associations {
		if a.Column == c.Name {
			if ref := r.byName[a.RefEntity]; ref != nil {
				def += fmt.Sprintf(" REFERENCES %s (%s)", d.QuoteIdent(ref.Table), d.QuoteIdent(a.RefColumn))
			}
			break
		}
	}
	return def
}
