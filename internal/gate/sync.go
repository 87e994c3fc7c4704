package gate

import (
	"database/sql"
	"fmt"
	"strings"

	"schema-gate/internal/dberr"
	"schema-gate/internal/schema"
)

// SyncOptions carries the destructiveness flags. The gate only ever runs
// with both false; Synchronize rejects anything else so no caller can
// sneak an ALTER/DROP through this path.
type SyncOptions struct {
	AllowAlter bool
	AllowDrop  bool
}

func (g *Gate) synchronize(db *sql.DB, out *Outcome) error {
	return g.Synchronize(db, out, SyncOptions{AllowAlter: false, AllowDrop: false})
}

// Synchronize creates the registry's missing schema objects: enum types
// first (where the dialect has them), then tables in dependency order.
// Existing objects are never touched. Creation failures that classify as
// benign races are logged and skipped; anything else aborts.
func (g *Gate) Synchronize(db *sql.DB, out *Outcome, opts SyncOptions) error {
	if opts.AllowAlter || opts.AllowDrop {
		return fmt.Errorf("destructive synchronization is not supported (allowAlter=%v allowDrop=%v)",
			opts.AllowAlter, opts.AllowDrop)
	}
	d := g.Dialect

	if d.SupportsEnumTypes() {
		for _, enum := range g.Registry.EnumTypes() {
			exists, err := schema.EnumExists(db, d, enum.Name)
			if err != nil {
				return err
			}
			if exists {
				g.logf("[sync] enum type %s already exists", enum.Name)
				continue
			}
			// The check above narrows but cannot close the window: a
			// parallel worker may create the type between the check and
			// this statement. That loser's error is the benign race.
			if _, err := db.Exec(d.CreateEnumQuery(enum.Name, enum.Values)); err != nil {
				desc := d.Describe(err)
				if verdict := dberr.Classify(desc); !verdict.Fatal {
					g.logf("[sync] warning: %s", verdict.Reason)
					out.Warnings = append(out.Warnings, Warning{
						Stage:   StageSync,
						Subject: enum.Name,
						Reason:  verdict.Reason,
					})
					continue
				}
				return desc
			}
			g.logf("[sync] created enum type %s", enum.Name)
		}
	}

	existing, err := schema.ListTables(db, d, g.Schema)
	if err != nil {
		return err
	}
	for _, e := range g.Registry.Ordered() {
		if existing[strings.ToUpper(e.Table)] {
			g.logf("[sync] table %s already exists", e.Table)
			continue
		}
		if _, err := db.Exec(g.Registry.CreateTableSQL(d, e)); err != nil {
			desc := d.Describe(err)
			if verdict := dberr.Classify(desc); !verdict.Fatal {
				g.logf("[sync] warning: %s", verdict.Reason)
				out.Warnings = append(out.Warnings, Warning{
					Stage:   StageSync,
					Subject: e.Table,
					Reason:  verdict.Reason,
				})
				continue
			}
			return desc
		}
		g.logf("[sync] created table %s", e.Table)
	}
	return nil
}
