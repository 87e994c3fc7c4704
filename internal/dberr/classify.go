package dberr

import (
	"fmt"
	"strings"
)

// EnumTypePrefix is the naming convention for enumerated column types
// (enum_<table>_<column>). A unique violation in the type catalog whose
// conflicting value carries this prefix means two workers raced to create
// the same enum type.
const EnumTypePrefix = "enum_"

// typeCatalogs lists the system tables that store type names per dialect.
// Only postgres materializes enum types as catalog rows, so this is where
// the fan-out creation race surfaces as a unique violation.
var typeCatalogs = map[string]bool{
	"pg_type": true,
}

// Verdict is the classifier's answer: whether the run must abort, plus a
// human-readable reason and, for fatal connection failures, a remediation
// hint for the log.
type Verdict struct {
	Fatal  bool
	Reason string
	Hint   string
}

// Classify decides whether the overall run may still succeed despite the
// given failure. Pure function of the descriptor: no I/O, no side effects.
func Classify(d *Descriptor) Verdict {
	switch d.Kind {
	case KindUniqueViolation:
		if typeCatalogs[d.Table] && strings.HasPrefix(d.Value, EnumTypePrefix) {
			return Verdict{
				Fatal:  false,
				Reason: fmt.Sprintf("concurrent worker already created enum type %q", d.Value),
			}
		}
		return Verdict{Fatal: true, Reason: "unique constraint violated outside the type catalog"}
	case KindUndefinedRelation:
		return Verdict{
			Fatal:  false,
			Reason: fmt.Sprintf("relation %q does not exist yet (first-time setup)", d.Relation),
		}
	case KindDuplicateObject:
		return Verdict{
			Fatal:  false,
			Reason: "object already exists (concurrent worker won the creation race)",
		}
	case KindConnRefused:
		return Verdict{
			Fatal:  true,
			Reason: "connection refused",
			Hint:   "check that the database server is running and accepting connections on DB_HOST:DB_PORT",
		}
	case KindHostNotFound:
		return Verdict{
			Fatal:  true,
			Reason: "database host could not be resolved",
			Hint:   "check DB_HOST (and your DNS / network path to the database)",
		}
	case KindAccessDenied:
		return Verdict{
			Fatal:  true,
			Reason: "authentication failed",
			Hint:   "check DB_USER and DB_PASSWORD",
		}
	case KindConnection:
		return Verdict{
			Fatal:  true,
			Reason: "connection-level failure",
			Hint:   "check network connectivity and connection limits on the database server",
		}
	case KindProgramming:
		return Verdict{Fatal: true, Reason: "programming error in statement or registry"}
	case KindDatabase:
		return Verdict{Fatal: true, Reason: "database error"}
	default:
		return Verdict{Fatal: true, Reason: "unrecognized error"}
	}
}

// VerifyVerdict applies the per-entity rule used while counting registry
// entities: connection-level and database-level failures are tolerated
// (the entity is skipped with a warning), anything that smells like a
// programming error aborts the run immediately.
func VerifyVerdict(d *Descriptor) Verdict {
	switch d.Kind {
	case KindProgramming, KindUnknown:
		return Verdict{Fatal: true, Reason: "programming error while verifying entity"}
	default:
		return Verdict{
			Fatal:  false,
			Reason: fmt.Sprintf("entity not queryable yet (%s)", d.Kind),
		}
	}
}
