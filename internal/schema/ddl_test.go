package schema_test

import (
	"strings"
	"testing"

	"schema-gate/internal/dialect"
	"schema-gate/internal/schema"
)

func TestCreateTableSQLIsNonDestructive(t *testing.T) {
	r := schema.Default()
	if err := r.InitAssociations(); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"postgres", "mysql", "mssql", "oracle"} {
		d := dialect.GetDialect(name)
		for _, e := range r.Ordered() {
			stmt := r.CreateTableSQL(d, e)
			upper := strings.ToUpper(stmt)
			if !strings.HasPrefix(upper, "CREATE TABLE") {
				t.Errorf("%s/%s: statement does not start with CREATE TABLE: %s", name, e.Table, stmt)
			}
			for _, destructive := range []string{"ALTER ", "DROP ", "TRUNCATE "} {
				if strings.Contains(upper, destructive) {
					t.Errorf("%s/%s: statement contains destructive keyword %q: %s", name, e.Table, destructive, stmt)
				}
			}
		}
	}
}

func TestCreateTableSQLPostgres(t *testing.T) {
	r := schema.Default()
	if err := r.InitAssociations(); err != nil {
		t.Fatal(err)
	}
	d := dialect.GetDialect("postgres")

	stmt := r.CreateTableSQL(d, r.Get("User"))
	for _, want := range []string{
		`CREATE TABLE IF NOT EXISTS "users"`,
		`"id" SERIAL PRIMARY KEY`,
		`"email" VARCHAR(255) NOT NULL UNIQUE`,
		`"role" "enum_users_role" NOT NULL`,
		`"department_id" INTEGER REFERENCES "departments" ("id")`,
	} {
		if !strings.Contains(stmt, want) {
			t.Errorf("users DDL missing %q:\n%s", want, stmt)
		}
	}

	// Nullable columns must not carry NOT NULL.
	if strings.Contains(stmt, `"department_id" INTEGER NOT NULL`) {
		t.Errorf("department_id is nullable, DDL says otherwise:\n%s", stmt)
	}
}

func TestCreateTableSQLInlinesEnumsWithoutTypeObjects(t *testing.T) {
	r := schema.Default()
	if err := r.InitAssociations(); err != nil {
		t.Fatal(err)
	}
	d := dialect.GetDialect("mysql")

	stmt := r.CreateTableSQL(d, r.Get("User"))
	if !strings.Contains(stmt, "ENUM('student', 'faculty', 'admin')") {
		t.Errorf("mysql users DDL should inline enum values:\n%s", stmt)
	}
	if strings.Contains(stmt, "enum_users_role") {
		t.Errorf("mysql DDL should not reference a type object:\n%s", stmt)
	}
}

func TestCreateEnumQueryPostgres(t *testing.T) {
	d := dialect.GetDialect("postgres")
	q := d.CreateEnumQuery("enum_messages_status", []string{"unread", "read", "archived"})
	want := `CREATE TYPE "enum_messages_status" AS ENUM ('unread', 'read', 'archived')`
	if q != want {
		t.Errorf("CreateEnumQuery = %q, want %q", q, want)
	}
}
