package schema

// ColType is the logical column type; dialects map it to SQL.
type ColType int

const (
	TypeSerialPK ColType = iota
	TypeVarchar
	TypeText
	TypeInt
	TypeEnum
	TypeTimestamp
)

// EnumType is an enumerated column type. On postgres it becomes a real
// CREATE TYPE object named with the enum_<table>_<column> convention;
// elsewhere the values are inlined into the column definition.
type EnumType struct {
	Name   string
	Values []string
}

type Column struct {
	Name     string
	Type     ColType
	Length   int // for TypeVarchar
	Nullable bool
	Unique   bool
	Enum     *EnumType // for TypeEnum
}

// Association declares a foreign key from one entity's column to another
// registry entity. Wired into Dependencies by InitAssociations.
type Association struct {
	Column    string
	RefEntity string
	RefColumn string
}

type Entity struct {
	Name         string // logical name, e.g. "User"
	Table        string // physical table, e.g. "users"
	Columns      []Column
	Associations []Association
	Dependencies []string // referenced entity names, filled by InitAssociations
}

// Column returns the named column, or nil.
func (e *Entity) Column(name string) *Column {
	for i := range e.Columns {
		if e.Columns[i].Name == name {
			return &e.Columns[i]
		}
	}
	return nil
}

// VerificationResult is the per-entity outcome of the verify stage.
type VerificationResult struct {
	Entity  string
	Table   string
	Count   int
	Skipped bool
	Reason  string
}
