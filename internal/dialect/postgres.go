package dialect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"schema-gate/internal/dberr"
)

// PostgresDialect is the default and most completely supported dialect.
// lib/pq reports structured error fields (code, table, column, detail),
// which is what lets the benign-race detection avoid message sniffing.
type PostgresDialect struct{}

func (d *PostgresDialect) Name() string   { return "postgres" }
func (d *PostgresDialect) Driver() string { return "postgres" }

func (d *PostgresDialect) DSN(cfg ConnConfig) string {
	sslmode := "disable"
	if cfg.SSL {
		sslmode = "require"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, sslmode)
}

func (d *PostgresDialect) PingQuery() string { return "SELECT 1" }

func (d *PostgresDialect) TableExistsQuery() string {
	return `SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = $1 AND table_name = $2`
}

func (d *PostgresDialect) ListTablesQuery() string {
	return `SELECT table_name FROM information_schema.tables WHERE table_schema = $1 AND table_type = 'BASE TABLE'`
}

func (d *PostgresDialect) DefaultSchema(cfg ConnConfig) string { return "public" }

func (d *PostgresDialect) QuoteIdent(name string) string {
	return `"` + name + `"`
}

func (d *PostgresDialect) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index+1)
}

func (d *PostgresDialect) CountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", d.QuoteIdent(table))
}

func (d *PostgresDialect) SerialPKType() string          { return "SERIAL PRIMARY KEY" }
func (d *PostgresDialect) VarcharType(length int) string { return fmt.Sprintf("VARCHAR(%d)", length) }
func (d *PostgresDialect) TextType() string              { return "TEXT" }
func (d *PostgresDialect) IntType() string               { return "INTEGER" }
func (d *PostgresDialect) TimestampType() string         { return "TIMESTAMPTZ" }

func (d *PostgresDialect) EnumColumnType(column, enumName string, values []string) string {
	// The enum is a real type object, created separately by sync.
	return d.QuoteIdent(enumName)
}

func (d *PostgresDialect) SupportsEnumTypes() bool { return true }

func (d *PostgresDialect) EnumExistsQuery() string {
	return `SELECT COUNT(*) FROM pg_type WHERE typname = $1`
}

func (d *PostgresDialect) CreateEnumQuery(name string, values []string) string {
	// No IF NOT EXISTS for CREATE TYPE; sync checks pg_type first and the
	// remaining check-then-create window is exactly the benign race the
	// classifier tolerates (unique violation on pg_type).
	return fmt.Sprintf("CREATE TYPE %s AS ENUM (%s)", d.QuoteIdent(name), quoteEnumValues(values))
}

func (d *PostgresDialect) CreateTableSupportsIfNotExists() bool { return true }

func (d *PostgresDialect) Describe(err error) *dberr.Descriptor {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		desc := &dberr.Descriptor{
			Code:    string(pqErr.Code),
			Table:   pqErr.Table,
			Column:  pqErr.Column,
			Message: pqErr.Message,
		}
		switch {
		case pqErr.Code == "23505": // unique_violation
			desc.Kind = dberr.KindUniqueViolation
			col, val := parseUniqueDetail(pqErr.Detail)
			if desc.Column == "" {
				desc.Column = col
			}
			desc.Value = val
		case pqErr.Code == "42P01": // undefined_table
			desc.Kind = dberr.KindUndefinedRelation
			desc.Relation = firstQuoted(pqErr.Message)
		case pqErr.Code == "42710" || pqErr.Code == "42P07": // duplicate_object / duplicate_table
			desc.Kind = dberr.KindDuplicateObject
		case pqErr.Code.Class() == "28": // invalid_authorization_specification
			desc.Kind = dberr.KindAccessDenied
		case pqErr.Code.Class() == "08": // connection_exception
			desc.Kind = dberr.KindConnection
		case pqErr.Code.Class() == "42": // syntax_error_or_access_rule_violation
			desc.Kind = dberr.KindProgramming
		default:
			desc.Kind = dberr.KindDatabase
		}
		return desc
	}
	if desc := describeNetError(err); desc != nil {
		return desc
	}
	return &dberr.Descriptor{Kind: dberr.KindUnknown, Message: err.Error()}
}

// parseUniqueDetail pulls the conflicting column and value out of the
// detail line lib/pq reports for unique violations:
//
//	Key (typname, typnamespace)=(enum_users_role, 2200) already exists.
func parseUniqueDetail(detail string) (column, value string) {
	open := strings.Index(detail, "(")
	sep := strings.Index(detail, ")=(")
	if open < 0 || sep < 0 || sep < open {
		return "", ""
	}
	cols := detail[open+1 : sep]
	rest := detail[sep+3:]
	closeIdx := strings.Index(rest, ")")
	if closeIdx < 0 {
		return "", ""
	}
	vals := rest[:closeIdx]

	column = strings.TrimSpace(strings.Split(cols, ",")[0])
	value = strings.TrimSpace(strings.Split(vals, ",")[0])
	return column, value
}
