package dialect_test

import (
	"errors"
	"net"
	"strings"
	"testing"

	"github.com/lib/pq"

	"schema-gate/internal/dberr"
	"schema-gate/internal/dialect"
)

func TestPostgresDescribe(t *testing.T) {
	d := dialect.GetDialect("postgres")

	tests := []struct {
		name     string
		err      error
		wantKind dberr.Kind
	}{
		{
			name: "unique violation on pg_type",
			err: &pq.Error{
				Code:    "23505",
				Table:   "pg_type",
				Message: `duplicate key value violates unique constraint "pg_type_typname_nsp_index"`,
				Detail:  `Key (typname, typnamespace)=(enum_users_role, 2200) already exists.`,
			},
			wantKind: dberr.KindUniqueViolation,
		},
		{
			name:     "undefined table",
			err:      &pq.Error{Code: "42P01", Message: `relation "users" does not exist`},
			wantKind: dberr.KindUndefinedRelation,
		},
		{
			name:     "duplicate object",
			err:      &pq.Error{Code: "42710", Message: `type "enum_users_role" already exists`},
			wantKind: dberr.KindDuplicateObject,
		},
		{
			name:     "invalid password",
			err:      &pq.Error{Code: "28P01", Message: `password authentication failed for user "portal"`},
			wantKind: dberr.KindAccessDenied,
		},
		{
			name:     "connection exception class",
			err:      &pq.Error{Code: "08006", Message: "connection failure"},
			wantKind: dberr.KindConnection,
		},
		{
			name:     "undefined column is a programming error",
			err:      &pq.Error{Code: "42703", Message: `column "missing" does not exist`},
			wantKind: dberr.KindProgramming,
		},
		{
			name:     "anything else in the database class",
			err:      &pq.Error{Code: "XX000", Message: "internal error"},
			wantKind: dberr.KindDatabase,
		},
		{
			name:     "dns failure",
			err:      &net.DNSError{Err: "no such host", Name: "db.internal", IsNotFound: true},
			wantKind: dberr.KindHostNotFound,
		},
		{
			name:     "plain error",
			err:      errors.New("something odd"),
			wantKind: dberr.KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := d.Describe(tt.err)
			if desc.Kind != tt.wantKind {
				t.Errorf("Describe() kind = %s, want %s", desc.Kind, tt.wantKind)
			}
		})
	}
}

func TestPostgresDescribeExtractsStructuredFields(t *testing.T) {
	d := dialect.GetDialect("postgres")

	desc := d.Describe(&pq.Error{
		Code:    "23505",
		Table:   "pg_type",
		Message: `duplicate key value violates unique constraint "pg_type_typname_nsp_index"`,
		Detail:  `Key (typname, typnamespace)=(enum_users_role, 2200) already exists.`,
	})
	if desc.Table != "pg_type" {
		t.Errorf("Table = %q, want pg_type", desc.Table)
	}
	if desc.Column != "typname" {
		t.Errorf("Column = %q, want typname", desc.Column)
	}
	if desc.Value != "enum_users_role" {
		t.Errorf("Value = %q, want enum_users_role", desc.Value)
	}

	desc = d.Describe(&pq.Error{Code: "42P01", Message: `relation "degrees" does not exist`})
	if desc.Relation != "degrees" {
		t.Errorf("Relation = %q, want degrees", desc.Relation)
	}
}

func TestPostgresDSN(t *testing.T) {
	d := dialect.GetDialect("postgres")
	cfg := dialect.ConnConfig{
		Host:     "db.internal",
		Port:     5432,
		Database: "portal",
		User:     "portal",
		Password: "secret",
	}

	dsn := d.DSN(cfg)
	for _, want := range []string{"host=db.internal", "port=5432", "dbname=portal", "sslmode=disable"} {
		if !strings.Contains(dsn, want) {
			t.Errorf("DSN %q missing %q", dsn, want)
		}
	}

	cfg.SSL = true
	if !strings.Contains(d.DSN(cfg), "sslmode=require") {
		t.Error("SSL flag must switch sslmode to require")
	}
}

func TestDialectFactory(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"postgres", "postgres"},
		{"mysql", "mysql"},
		{"mssql", "mssql"},
		{"sqlserver", "mssql"},
		{"oracle", "oracle"},
		{"", "postgres"}, // default
	}
	for _, tt := range tests {
		if got := dialect.GetDialect(tt.in).Name(); got != tt.want {
			t.Errorf("GetDialect(%q).Name() = %q, want %q", tt.in, got, tt.want)
		}
	}
}
