package dialect

import (
	"errors"
	"fmt"
	"strings"

	go_ora "github.com/sijms/go-ora/v2"
	"github.com/sijms/go-ora/v2/network"

	"schema-gate/internal/dberr"
)

type OracleDialect struct{}

func (d *OracleDialect) Name() string   { return "oracle" }
func (d *OracleDialect) Driver() string { return "oracle" }

func (d *OracleDialect) DSN(cfg ConnConfig) string {
	var opts map[string]string
	if cfg.SSL {
		opts = map[string]string{"SSL": "TRUE"}
	}
	return go_ora.BuildUrl(cfg.Host, cfg.Port, cfg.Database, cfg.User, cfg.Password, opts)
}

func (d *OracleDialect) PingQuery() string { return "SELECT 1 FROM DUAL" }

func (d *OracleDialect) TableExistsQuery() string {
	return `SELECT COUNT(*) FROM ALL_TABLES WHERE OWNER = :1 AND TABLE_NAME = :2`
}

func (d *OracleDialect) ListTablesQuery() string {
	return `SELECT TABLE_NAME FROM ALL_TABLES WHERE OWNER = :1`
}

func (d *OracleDialect) DefaultSchema(cfg ConnConfig) string {
	return strings.ToUpper(cfg.User)
}

func (d *OracleDialect) QuoteIdent(name string) string {
	return `"` + name + `"`
}

func (d *OracleDialect) Placeholder(index int) string {
	return fmt.Sprintf(":%d", index+1)
}

func (d *OracleDialect) CountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", d.QuoteIdent(table))
}

func (d *OracleDialect) SerialPKType() string {
	return "NUMBER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY"
}
func (d *OracleDialect) VarcharType(length int) string { return fmt.Sprintf("VARCHAR2(%d)", length) }
func (d *OracleDialect) TextType() string              { return "CLOB" }
func (d *OracleDialect) IntType() string               { return "NUMBER(10)" }
func (d *OracleDialect) TimestampType() string         { return "TIMESTAMP" }

func (d *OracleDialect) EnumColumnType(column, enumName string, values []string) string {
	return fmt.Sprintf("VARCHAR2(50) CHECK (%s IN (%s))", d.QuoteIdent(column), quoteEnumValues(values))
}

func (d *OracleDialect) SupportsEnumTypes() bool                 { return false }
func (d *OracleDialect) EnumExistsQuery() string                 { return "" }
func (d *OracleDialect) CreateEnumQuery(string, []string) string { return "" }
func (d *OracleDialect) CreateTableSupportsIfNotExists() bool    { return false }

func (d *OracleDialect) Describe(err error) *dberr.Descriptor {
	var oraErr *network.OracleError
	if errors.As(err, &oraErr) {
		desc := &dberr.Descriptor{
			Code:    fmt.Sprintf("ORA-%05d", oraErr.ErrCode),
			Message: oraErr.ErrMsg,
		}
		switch oraErr.ErrCode {
		case 1: // unique constraint violated
			desc.Kind = dberr.KindUniqueViolation
		case 942: // table or view does not exist
			desc.Kind = dberr.KindUndefinedRelation
		case 955: // name is already used by an existing object
			desc.Kind = dberr.KindDuplicateObject
		case 1017: // invalid username/password
			desc.Kind = dberr.KindAccessDenied
		case 900, 904, 923: // invalid SQL / identifier / FROM keyword
			desc.Kind = dberr.KindProgramming
		case 12541: // TNS: no listener
			desc.Kind = dberr.KindConnRefused
		case 12154, 12545: // TNS: could not resolve / host unreachable
			desc.Kind = dberr.KindHostNotFound
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
