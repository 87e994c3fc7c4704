package gate

import (
	"database/sql"
	"errors"
	"log"

	"schema-gate/internal/dberr"
	"schema-gate/internal/dialect"
	"schema-gate/internal/schema"
)

// Stage identifies where in the pipeline a failure happened. Transitions
// only move forward; every stage has an escape edge to the aborted
// outcome and there are no retries within a run.
type Stage int

const (
	StageConnect Stage = iota
	StagePing
	StageAssociate
	StageSync
	StageVerify
)

func (s Stage) String() string {
	switch s {
	case StageConnect:
		return "connect"
	case StagePing:
		return "ping"
	case StageAssociate:
		return "associate"
	case StageSync:
		return "sync"
	default:
		return "verify"
	}
}

// Gate runs the deployment-time readiness check: connect, ping, wire
// associations, synchronize schema, verify entities. Strictly sequential
// within a run; safe to execute concurrently with other gate processes
// against the same database.
type Gate struct {
	// Connect yields the run's connection handle. Callers inject a
	// memoized provider so repeated use within a process reuses one
	// handle instead of reading ambient globals here.
	Connect  func() (*sql.DB, error)
	Dialect  dialect.Dialect
	Schema   string // target schema (namespace) for introspection
	Registry *schema.Registry

	Logf     func(format string, v ...interface{}) // defaults to log.Printf
	OnEntity func()                                // progress callback per verified entity
}

func (g *Gate) logf(format string, v ...interface{}) {
	if g.Logf != nil {
		g.Logf(format, v...)
		return
	}
	log.Printf(format, v...)
}

// Run executes the pipeline and returns the outcome. It never calls
// os.Exit; the caller owns the process boundary.
func (g *Gate) Run() *Outcome {
	out := &Outcome{Status: StatusSuccess}

	g.logf("[connect] acquiring database connection (%s)", g.Dialect.Name())
	db, err := g.Connect()
	if err != nil {
		return g.abort(out, StageConnect, err)
	}

	g.logf("[ping] checking connection liveness")
	if err := db.Ping(); err != nil {
		return g.abort(out, StagePing, err)
	}
	var one int
	if err := db.QueryRow(g.Dialect.PingQuery()).Scan(&one); err != nil {
		return g.abort(out, StagePing, err)
	}

	g.logf("[associate] wiring entity associations")
	if err := g.Registry.InitAssociations(); err != nil {
		// Registry wiring is in-memory; failure means the registry itself
		// is wrong, never the environment.
		return g.abort(out, StageAssociate, &dberr.Descriptor{
			Kind:    dberr.KindProgramming,
			Message: err.Error(),
		})
	}

	g.logf("[sync] synchronizing schema (create missing objects only)")
	if err := g.synchronize(db, out); err != nil {
		return g.abort(out, StageSync, err)
	}

	g.logf("[verify] counting registry entities")
	if err := g.verify(db, out); err != nil {
		return g.abort(out, StageVerify, err)
	}

	if len(out.Warnings) > 0 {
		out.Status = StatusWarnings
	}
	g.logf("[done] %s", out.Status)
	return out
}

// abort is the single fatal path, and doubles as the top-level safety
// net: the failure is classified once more, and a kind the classifier
// considers non-fatal (the enum creation race, a relation missing during
// first-ever setup) still ends the run as a success with warnings.
func (g *Gate) abort(out *Outcome, stage Stage, err error) *Outcome {
	var desc *dberr.Descriptor
	if !errors.As(err, &desc) {
		desc = g.Dialect.Describe(err)
	}

	verdict := dberr.Classify(desc)
	if !verdict.Fatal {
		g.logf("[%s] warning: %s", stage, verdict.Reason)
		out.Warnings = append(out.Warnings, Warning{Stage: stage, Reason: verdict.Reason})
		out.Status = StatusWarnings
		return out
	}

	g.logf("[%s] fatal: %s (%s)", stage, verdict.Reason, desc)
	if verdict.Hint != "" {
		g.logf("[%s] hint: %s", stage, verdict.Hint)
	}
	out.Status = StatusFatal
	out.Stage = stage
	out.Err = desc
	out.Hint = verdict.Hint
	return out
}
