package dialect

import "schema-gate/internal/dberr"

// ConnConfig holds the connection parameters for one run. Immutable once
// built; the dialect turns it into a driver-specific DSN.
type ConnConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSL      bool
}

// Dialect abstracts database-specific operations for the gate.
type Dialect interface {
	Name() string
	Driver() string
	DSN(cfg ConnConfig) string

	// Liveness / introspection
	PingQuery() string
	TableExistsQuery() string // args: schema, table; returns a count
	ListTablesQuery() string  // args: schema; returns table names
	DefaultSchema(cfg ConnConfig) string

	// Identifier / statement helpers
	QuoteIdent(name string) string
	Placeholder(index int) string // Returns ?, $1, @p1, :1 ...
	CountQuery(table string) string

	// DDL type mapping
	SerialPKType() string
	VarcharType(length int) string
	TextType() string
	IntType() string
	TimestampType() string
	EnumColumnType(column, enumName string, values []string) string

	// Enumerated type objects. Only dialects that materialize enums as
	// schema objects (postgres) return true; the rest inline the values
	// into the column type via EnumColumnType.
	SupportsEnumTypes() bool
	EnumExistsQuery() string // args: type name; returns a count
	CreateEnumQuery(name string, values []string) string

	CreateTableSupportsIfNotExists() bool

	// Describe translates a driver-native error into the structured
	// descriptor the classifier operates on.
	Describe(err error) *dberr.Descriptor
}
