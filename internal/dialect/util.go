package dialect

import (
	"database/sql/driver"
	"errors"
	"io"
	"net"
	"strings"
	"syscall"

	"schema-gate/internal/dberr"
)

// describeNetError handles the error shapes the database/sql layer
// produces before the server ever answers: DNS failures, refused
// connections, dropped sockets. Shared by all dialects. Returns nil when
// the error is not connection-level.
func describeNetError(err error) *dberr.Descriptor {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &dberr.Descriptor{
			Kind:    dberr.KindHostNotFound,
			Message: dnsErr.Error(),
		}
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return &dberr.Descriptor{
			Kind:    dberr.KindConnRefused,
			Message: err.Error(),
		}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &dberr.Descriptor{
			Kind:    dberr.KindConnection,
			Message: opErr.Error(),
		}
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &dberr.Descriptor{
			Kind:    dberr.KindConnection,
			Message: err.Error(),
		}
	}
	return nil
}

// GeneratePlaceholders renders count placeholders as a comma-separated
// list using the dialect's placeholder function.
func GeneratePlaceholders(count int, placeholderFunc func(int) string) string {
	placeholders := make([]string, count)
	for i := 0; i < count; i++ {
		placeholders[i] = placeholderFunc(i)
	}
	return strings.Join(placeholders, ", ")
}

// quoteEnumValues renders enum values as a SQL list: 'a', 'b', 'c'.
func quoteEnumValues(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
	}
	return strings.Join(quoted, ", ")
}

// firstQuoted extracts the first substring enclosed in double quotes,
// e.g. the relation name out of `relation "users" does not exist`.
func firstQuoted(msg string) string {
	start := strings.Index(msg, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}
