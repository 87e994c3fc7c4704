package dialect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"schema-gate/internal/dberr"
)

type MysqlDialect struct{}

func (d *MysqlDialect) Name() string   { return "mysql" }
func (d *MysqlDialect) Driver() string { return "mysql" }

func (d *MysqlDialect) DSN(cfg ConnConfig) string {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database)
	if cfg.SSL {
		dsn += "&tls=true"
	}
	return dsn
}

func (d *MysqlDialect) PingQuery() string { return "SELECT 1" }

func (d *MysqlDialect) TableExistsQuery() string {
	return `SELECT COUNT(*) FROM information_schema.TABLES WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?`
}

func (d *MysqlDialect) ListTablesQuery() string {
	return `SELECT TABLE_NAME FROM information_schema.TABLES WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE'`
}

func (d *MysqlDialect) DefaultSchema(cfg ConnConfig) string { return cfg.Database }

func (d *MysqlDialect) QuoteIdent(name string) string {
	return "`" + name + "`"
}

func (d *MysqlDialect) Placeholder(index int) string { return "?" }

func (d *MysqlDialect) CountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", d.QuoteIdent(table))
}

func (d *MysqlDialect) SerialPKType() string          { return "INT AUTO_INCREMENT PRIMARY KEY" }
func (d *MysqlDialect) VarcharType(length int) string { return fmt.Sprintf("VARCHAR(%d)", length) }
func (d *MysqlDialect) TextType() string              { return "TEXT" }
func (d *MysqlDialect) IntType() string               { return "INT" }
func (d *MysqlDialect) TimestampType() string         { return "DATETIME" }

func (d *MysqlDialect) EnumColumnType(column, enumName string, values []string) string {
	// MySQL enums are inline column types, not schema objects.
	return fmt.Sprintf("ENUM(%s)", quoteEnumValues(values))
}

func (d *MysqlDialect) SupportsEnumTypes() bool                 { return false }
func (d *MysqlDialect) EnumExistsQuery() string                 { return "" }
func (d *MysqlDialect) CreateEnumQuery(string, []string) string { return "" }
func (d *MysqlDialect) CreateTableSupportsIfNotExists() bool    { return true }

func (d *MysqlDialect) Describe(err error) *dberr.Descriptor {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		desc := &dberr.Descriptor{
			Code:    fmt.Sprintf("%d", myErr.Number),
			Message: myErr.Message,
		}
		switch myErr.Number {
		case 1062: // ER_DUP_ENTRY: Duplicate entry 'x' for key 'tbl.key'
			desc.Kind = dberr.KindUniqueViolation
			desc.Value = firstSingleQuoted(myErr.Message)
		case 1146: // ER_NO_SUCH_TABLE
			desc.Kind = dberr.KindUndefinedRelation
			desc.Relation = firstSingleQuoted(myErr.Message)
		case 1050: // ER_TABLE_EXISTS_ERROR
			desc.Kind = dberr.KindDuplicateObject
		case 1044, 1045: // ER_DBACCESS_DENIED_ERROR, ER_ACCESS_DENIED_ERROR
			desc.Kind = dberr.KindAccessDenied
		case 1054, 1064: // ER_BAD_FIELD_ERROR, ER_PARSE_ERROR
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

func firstSingleQuoted(msg string) string {
	start := strings.Index(msg, "'")
	if start < 0 {
		return ""
	}
	end := strings.Index(msg[start+1:], "'")
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}
