package dialect

import (
	"errors"
	"fmt"
	"net/url"

	mssql "github.com/denisenkom/go-mssqldb"

	"schema-gate/internal/dberr"
)

type MSSQLDialect struct{}

func (d *MSSQLDialect) Name() string   { return "mssql" }
func (d *MSSQLDialect) Driver() string { return "sqlserver" }

func (d *MSSQLDialect) DSN(cfg ConnConfig) string {
	q := url.Values{}
	q.Set("database", cfg.Database)
	if cfg.SSL {
		q.Set("encrypt", "true")
	} else {
		q.Set("encrypt", "disable")
	}
	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		RawQuery: q.Encode(),
	}
	return u.String()
}

func (d *MSSQLDialect) PingQuery() string { return "SELECT 1" }

func (d *MSSQLDialect) TableExistsQuery() string {
	return `SELECT COUNT(*) FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = @p1 AND TABLE_NAME = @p2`
}

func (d *MSSQLDialect) ListTablesQuery() string {
	return `SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = @p1 AND TABLE_TYPE = 'BASE TABLE'`
}

func (d *MSSQLDialect) DefaultSchema(cfg ConnConfig) string { return "dbo" }

func (d *MSSQLDialect) QuoteIdent(name string) string {
	return "[" + name + "]"
}

func (d *MSSQLDialect) Placeholder(index int) string {
	return fmt.Sprintf("@p%d", index+1)
}

func (d *MSSQLDialect) CountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", d.QuoteIdent(table))
}

func (d *MSSQLDialect) SerialPKType() string          { return "INT IDENTITY(1,1) PRIMARY KEY" }
func (d *MSSQLDialect) VarcharType(length int) string { return fmt.Sprintf("NVARCHAR(%d)", length) }
func (d *MSSQLDialect) TextType() string              { return "NVARCHAR(MAX)" }
func (d *MSSQLDialect) IntType() string               { return "INT" }
func (d *MSSQLDialect) TimestampType() string         { return "DATETIME2" }

func (d *MSSQLDialect) EnumColumnType(column, enumName string, values []string) string {
	// No enum types; emulate with a CHECK constraint on the column.
	return fmt.Sprintf("NVARCHAR(50) CHECK (%s IN (%s))", d.QuoteIdent(column), quoteEnumValues(values))
}

func (d *MSSQLDialect) SupportsEnumTypes() bool                 { return false }
func (d *MSSQLDialect) EnumExistsQuery() string                 { return "" }
func (d *MSSQLDialect) CreateEnumQuery(string, []string) string { return "" }
func (d *MSSQLDialect) CreateTableSupportsIfNotExists() bool    { return false }

func (d *MSSQLDialect) Describe(err error) *dberr.Descriptor {
	var sqlErr mssql.Error
	if errors.As(err, &sqlErr) {
		desc := &dberr.Descriptor{
			Code:    fmt.Sprintf("%d", sqlErr.Number),
			Message: sqlErr.Message,
		}
		switch sqlErr.Number {
		case 2627, 2601: // unique constraint / unique index violation
			desc.Kind = dberr.KindUniqueViolation
			desc.Value = firstSingleQuoted(sqlErr.Message)
		case 208: // invalid object name
			desc.Kind = dberr.KindUndefinedRelation
			desc.Relation = firstSingleQuoted(sqlErr.Message)
		case 2714: // there is already an object named ... in the database
			desc.Kind = dberr.KindDuplicateObject
		case 18456, 4060: // login failed / cannot open database
			desc.Kind = dberr.KindAccessDenied
		case 102, 207: // syntax error / invalid column
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
