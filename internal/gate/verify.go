package gate

import (
	"database/sql"

	"schema-gate/internal/dberr"
	"schema-gate/internal/schema"
)

// verify counts every registry entity. Entities verify independently: a
// connection-level or database-level failure skips that entity with a
// warning and moves on (a freshly created table can be momentarily
// unqueryable behind a connection pooler, and an empty table is fine),
// while a programming error aborts immediately.
func (g *Gate) verify(db *sql.DB, out *Outcome) error {
	for _, e := range g.Registry.Ordered() {
		var n int
		err := db.QueryRow(g.Dialect.CountQuery(e.Table)).Scan(&n)
		if err != nil {
			desc := g.Dialect.Describe(err)
			verdict := dberr.VerifyVerdict(desc)
			if verdict.Fatal {
				return desc
			}
			g.logf("[verify] warning: %s skipped: %s", e.Name, verdict.Reason)
			out.Warnings = append(out.Warnings, Warning{
				Stage:   StageVerify,
				Subject: e.Name,
				Reason:  verdict.Reason,
			})
			out.Results = append(out.Results, schema.VerificationResult{
				Entity:  e.Name,
				Table:   e.Table,
				Skipped: true,
				Reason:  verdict.Reason,
			})
			if g.OnEntity != nil {
				g.OnEntity()
			}
			continue
		}

		g.logf("[verify] %s: %d records", e.Name, n)
		out.Results = append(out.Results, schema.VerificationResult{
			Entity: e.Name,
			Table:  e.Table,
			Count:  n,
		})
		if g.OnEntity != nil {
			g.OnEntity()
		}
	}
	return nil
}
