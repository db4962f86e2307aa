package stdapi

// TypeID is a handle to a type registered in an Arena.
// The zero value is never allocated.
type TypeID uint32

// InvalidType is the zero TypeID.
const InvalidType TypeID = 0

// IsValid reports whether id may refer to a registered type.
func (id TypeID) IsValid() bool {
	return id != InvalidType
}

// Member is a named struct field.
type Member struct {
	Type TypeID
	Name string
}

// Type is a node of the type model. Types are created through an Arena and
// are not modified after registration, except that an interface receives its
// methods until its builder is sealed.
type Type struct {
	Name    string
	Expr    string
	Tag     string
	Length  string // array length, blob size or string length expression
	Range   string // handle
	Key     string // handle
	Values  []string
	Members []Member
	methods []*Method
	ID      TypeID
	Elem    TypeID
	Base    TypeID
	Seq     int // per-kind sequence number for structs, enums and bitmasks
	Kind    Kind
	Format  Format
	Wide    bool
	sealed  bool
}

// String returns the C type expression.
func (t *Type) String() string {
	return t.Expr
}

// Sealed reports whether an interface has been finalized. Non-interface
// types are always sealed.
func (t *Type) Sealed() bool {
	return t.Kind != KindInterface || t.sealed
}

// OwnMethods returns the methods declared directly on an interface,
// excluding inherited ones.
func (t *Type) OwnMethods() []*Method {
	return t.methods
}

// IsVoid reports whether t is the void type.
func (t *Type) IsVoid() bool {
	return t.Kind == KindVoid
}
