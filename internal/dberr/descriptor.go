package dberr

import "fmt"

// Kind is the closed set of failure categories the gate can react to.
// Dialect adapters translate driver-native errors into one of these;
// nothing outside the adapters inspects raw driver error text.
type Kind int

const (
	KindUnknown Kind = iota
	KindConnRefused
	KindHostNotFound
	KindAccessDenied
	KindConnection // connection-level, none of the subtypes above
	KindUniqueViolation
	KindUndefinedRelation
	KindDuplicateObject
	KindDatabase // generic database error
	KindProgramming
)

func (k Kind) String() string {
	switch k {
	case KindConnRefused:
		return "CONN_REFUSED"
	case KindHostNotFound:
		return "HOST_NOT_FOUND"
	case KindAccessDenied:
		return "ACCESS_DENIED"
	case KindConnection:
		return "CONNECTION"
	case KindUniqueViolation:
		return "UNIQUE_VIOLATION"
	case KindUndefinedRelation:
		return "UNDEFINED_RELATION"
	case KindDuplicateObject:
		return "DUPLICATE_OBJECT"
	case KindDatabase:
		return "DATABASE"
	case KindProgramming:
		return "PROGRAMMING"
	default:
		return "UNKNOWN"
	}
}

// Descriptor is a structured view of a database failure. Fields beyond
// Kind/Message are filled only where the driver reports them: Table,
// Column and Value for unique violations, Relation for missing-relation
// errors, Code with the dialect-native error code.
type Descriptor struct {
	Kind     Kind
	Code     string
	Table    string
	Column   string
	Value    string
	Relation string
	Message  string
}

// Error makes Descriptor usable as a regular error value so pipeline
// stages can wrap and return it without losing the structured fields.
func (d *Descriptor) Error() string {
	if d.Code != "" {
		return fmt.Sprintf("%s (%s): %s", d.Kind, d.Code, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}
