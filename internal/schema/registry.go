package schema

import "fmt"

// Registry is the fixed set of entities the gate creates and verifies.
// Loaded once, read-only after InitAssociations.
type Registry struct {
	entities []*Entity
	byName   map[string]*Entity
	ordered  []*Entity
}

func New(entities ...*Entity) *Registry {
	r := &Registry{entities: entities, byName: make(map[string]*Entity)}
	for _, e := range entities {
		r.byName[e.Name] = e
	}
	return r
}

func (r *Registry) Entities() []*Entity { return r.entities }

func (r *Registry) Get(name string) *Entity { return r.byName[name] }

// InitAssociations wires foreign-key metadata between entities. Pure
// in-memory bookkeeping: a failure here means the registry itself is
// wrong (dangling reference, missing column, dependency cycle), which is
// a programming error the caller must treat as fatal.
func (r *Registry) InitAssociations() error {
	for _, e := range r.entities {
		e.Dependencies = e.Dependencies[:0]
		for _, a := range e.Associations {
			ref, ok := r.byName[a.RefEntity]
			if !ok {
				return fmt.Errorf("entity %s references undefined entity %s", e.Name, a.RefEntity)
			}
			if e.Column(a.Column) == nil {
				return fmt.Errorf("entity %s has no column %s for association to %s", e.Name, a.Column, a.RefEntity)
			}
			if ref.Column(a.RefColumn) == nil {
				return fmt.Errorf("entity %s association targets missing column %s.%s", e.Name, a.RefEntity, a.RefColumn)
			}
			// Self references (Message sender/recipient -> User is not one,
			// but keep the rule general) never order an entity before itself.
			if ref.Name != e.Name {
				e.Dependencies = append(e.Dependencies, ref.Name)
			}
		}
	}

	ordered, err := sortByDependencies(r.entities)
	if err != nil {
		return err
	}
	r.ordered = ordered
	return nil
}

// Ordered returns entities in dependency order (referenced entities
// first), valid after InitAssociations.
func (r *Registry) Ordered() []*Entity { return r.ordered }

// EnumTypes returns the distinct enum types across all entities, in
// entity/column order.
func (r *Registry) EnumTypes() []*EnumType {
	var enums []*EnumType
	seen := make(map[string]bool)
	for _, e := range r.entities {
		for i := range e.Columns {
			c := &e.Columns[i]
			if c.Type == TypeEnum && c.Enum != nil && !seen[c.Enum.Name] {
				seen[c.Enum.Name] = true
				enums = append(enums, c.Enum)
			}
		}
	}
	return enums
}

// sortByDependencies orders entities so every entity comes after the
// entities it references. The registry is expected to be acyclic; a cycle
// is reported as an error rather than broken heuristically.
func sortByDependencies(entities []*Entity) ([]*Entity, error) {
	var sorted []*Entity
	processed := make(map[string]bool)

	for len(sorted) < len(entities) {
		added := false
		for _, e := range entities {
			if processed[e.Name] {
				continue
			}
			ready := true
			for _, dep := range e.Dependencies {
				if !processed[dep] {
					ready = false
					break
				}
			}
			if ready {
				sorted = append(sorted, e)
				processed[e.Name] = true
				added = true
			}
		}
		if !added {
			var stuck []string
			for _, e := range entities {
				if !processed[e.Name] {
					stuck = append(stuck, e.Name)
				}
			}
			return nil, fmt.Errorf("dependency cycle among entities: %v", stuck)
		}
	}
	return sorted, nil
}

// Default returns the application registry: the five entities the
// deployment gate must guarantee before traffic is allowed.
func Default() *Registry {
	timestamps := []Column{
		{Name: "created_at", Type: TypeTimestamp},
		{Name: "updated_at", Type: TypeTimestamp},
	}

	department := &Entity{
		Name:  "Department",
		Table: "departments",
		Columns: append([]Column{
			{Name: "id", Type: TypeSerialPK},
			{Name: "name", Type: TypeVarchar, Length: 100, Unique: true},
			{Name: "description", Type: TypeText, Nullable: true},
		}, timestamps...),
	}

	user := &Entity{
		Name:  "User",
		Table: "users",
		Columns: append([]Column{
			{Name: "id", Type: TypeSerialPK},
			{Name: "name", Type: TypeVarchar, Length: 100},
			{Name: "email", Type: TypeVarchar, Length: 255, Unique: true},
			{Name: "password_hash", Type: TypeVarchar, Length: 255},
			{Name: "role", Type: TypeEnum, Enum: &EnumType{
				Name:   "enum_users_role",
				Values: []string{"student", "faculty", "admin"},
			}},
			{Name: "department_id", Type: TypeInt, Nullable: true},
		}, timestamps...),
		Associations: []Association{
			{Column: "department_id", RefEntity: "Department", RefColumn: "id"},
		},
	}

	course := &Entity{
		Name:  "Course",
		Table: "courses",
		Columns: append([]Column{
			{Name: "id", Type: TypeSerialPK},
			{Name: "code", Type: TypeVarchar, Length: 20, Unique: true},
			{Name: "title", Type: TypeVarchar, Length: 200},
			{Name: "description", Type: TypeText, Nullable: true},
			{Name: "credits", Type: TypeInt},
			{Name: "department_id", Type: TypeInt},
		}, timestamps...),
		Associations: []Association{
			{Column: "department_id", RefEntity: "Department", RefColumn: "id"},
		},
	}

	degree := &Entity{
		Name:  "Degree",
		Table: "degrees",
		Columns: append([]Column{
			{Name: "id", Type: TypeSerialPK},
			{Name: "name", Type: TypeVarchar, Length: 150},
			{Name: "level", Type: TypeEnum, Enum: &EnumType{
				Name:   "enum_degrees_level",
				Values: []string{"bachelor", "master", "doctorate"},
			}},
			{Name: "department_id", Type: TypeInt},
		}, timestamps...),
		Associations: []Association{
			{Column: "department_id", RefEntity: "Department", RefColumn: "id"},
		},
	}

	message := &Entity{
		Name:  "Message",
		Table: "messages",
		Columns: append([]Column{
			{Name: "id", Type: TypeSerialPK},
			{Name: "subject", Type: TypeVarchar, Length: 200},
			{Name: "body", Type: TypeText},
			{Name: "status", Type: TypeEnum, Enum: &EnumType{
				Name:   "enum_messages_status",
				Values: []string{"unread", "read", "archived"},
			}},
			{Name: "sender_id", Type: TypeInt},
			{Name: "recipient_id", Type: TypeInt},
		}, timestamps...),
		Associations: []Association{
			{Column: "sender_id", RefEntity: "User", RefColumn: "id"},
			{Column: "recipient_id", RefEntity: "User", RefColumn: "id"},
		},
	}

	return New(department, user, course, degree, message)
}
