package gate_test

// A scripted in-memory database/sql driver. Each test registers a script
// under a unique DSN; queries and statements are matched by substring
// against "query | args" signatures, with sensible defaults (exec
// succeeds, queries return a single 0) so scripts only state what the
// scenario cares about.

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

type rule struct {
	match string
	rows  [][]driver.Value
	err   error
}

type script struct {
	mu      sync.Mutex
	pingErr error
	rules   []rule
	execLog []string
}

// on registers a response for any statement whose signature contains
// match. First registered rule wins.
func (s *script) on(match string, rows [][]driver.Value, err error) {
	s.rules = append(s.rules, rule{match: match, rows: rows, err: err})
}

func (s *script) find(sig string) *rule {
	for i := range s.rules {
		if strings.Contains(sig, s.rules[i].match) {
			return &s.rules[i]
		}
	}
	return nil
}

func (s *script) executed(substr string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, q := range s.execLog {
		if strings.Contains(q, substr) {
			n++
		}
	}
	return n
}

type fakeDriver struct{}

var (
	scriptsMu sync.Mutex
	scripts   = map[string]*script{}
	scriptSeq int64
)

func (fakeDriver) Open(name string) (driver.Conn, error) {
	scriptsMu.Lock()
	defer scriptsMu.Unlock()
	s, ok := scripts[name]
	if !ok {
		return nil, fmt.Errorf("no script registered for %q", name)
	}
	return &fakeConn{s: s}, nil
}

func init() {
	sql.Register("gatefake", fakeDriver{})
}

// newScriptDB opens a *sql.DB backed by the given script.
func newScriptDB(t *testing.T, s *script) *sql.DB {
	t.Helper()
	name := fmt.Sprintf("script-%d", atomic.AddInt64(&scriptSeq, 1))
	scriptsMu.Lock()
	scripts[name] = s
	scriptsMu.Unlock()

	db, err := sql.Open("gatefake", name)
	if err != nil {
		t.Fatalf("open fake db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

type fakeConn struct {
	s *script
}

func (c *fakeConn) Prepare(query string) (driver.Stmt, error) {
	return nil, fmt.Errorf("prepare not supported by fake driver (query: %s)", query)
}

func (c *fakeConn) Close() error              { return nil }
func (c *fakeConn) Begin() (driver.Tx, error) { return nil, fmt.Errorf("transactions not supported") }

func (c *fakeConn) Ping(ctx context.Context) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	return c.s.pingErr
}

func signature(query string, args []driver.NamedValue) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, query)
	for _, a := range args {
		parts = append(parts, fmt.Sprint(a.Value))
	}
	return strings.Join(parts, " | ")
}

func (c *fakeConn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	sig := signature(query, args)
	c.s.mu.Lock()
	c.s.execLog = append(c.s.execLog, sig)
	r := c.s.find(sig)
	c.s.mu.Unlock()

	if r != nil && r.err != nil {
		return nil, r.err
	}
	return driver.RowsAffected(1), nil
}

func (c *fakeConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	sig := signature(query, args)
	c.s.mu.Lock()
	r := c.s.find(sig)
	c.s.mu.Unlock()

	if r != nil {
		if r.err != nil {
			return nil, r.err
		}
		return newFakeRows(r.rows), nil
	}
	// Default: a single row holding 0, which satisfies both the ping
	// round-trip and count/existence scans.
	return newFakeRows([][]driver.Value{{int64(0)}}), nil
}

var (
	_ driver.Pinger         = (*fakeConn)(nil)
	_ driver.ExecerContext  = (*fakeConn)(nil)
	_ driver.QueryerContext = (*fakeConn)(nil)
)

type fakeRows struct {
	cols []string
	rows [][]driver.Value
	idx  int
}

func newFakeRows(rows [][]driver.Value) *fakeRows {
	width := 1
	if len(rows) > 0 {
		width = len(rows[0])
	}
	cols := make([]string, width)
	for i := range cols {
		cols[i] = fmt.Sprintf("c%d", i)
	}
	return &fakeRows{cols: cols, rows: rows}
}

func (r *fakeRows) Columns() []string { return r.cols }
func (r *fakeRows) Close() error      { return nil }

func (r *fakeRows) Next(dest []driver.Value) error {
	if r.idx >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.idx])
	r.idx++
	return nil
}
