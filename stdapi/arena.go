package stdapi

import (
	"strconv"
	"strings"
)

// Predeclared types. NewArena registers them first, in this order, so the
// constants are valid handles in every arena.
const (
	Void TypeID = iota + 1
	Bool
	SChar
	UChar
	Short
	Int
	Long
	LongLong
	UShort
	UInt
	ULong
	ULongLong
	Float
	Double
	SizeT
	Int8
	UInt8
	Int16
	UInt16
	Int32
	UInt32
	Int64
	UInt64
	CString
	WString
)

var predeclared = [...]struct {
	expr   string
	format Format
}{
	Bool:      {"bool", FormatBool},
	SChar:     {"signed char", FormatSInt},
	UChar:     {"unsigned char", FormatUInt},
	Short:     {"short", FormatSInt},
	Int:       {"int", FormatSInt},
	Long:      {"long", FormatSInt},
	LongLong:  {"long long", FormatSInt},
	UShort:    {"unsigned short", FormatUInt},
	UInt:      {"unsigned int", FormatUInt},
	ULong:     {"unsigned long", FormatUInt},
	ULongLong: {"unsigned long long", FormatUInt},
	Float:     {"float", FormatFloat},
	Double:    {"double", FormatDouble},
	SizeT:     {"size_t", FormatUInt},
	Int8:      {"int8_t", FormatSInt},
	UInt8:     {"uint8_t", FormatUInt},
	Int16:     {"int16_t", FormatSInt},
	UInt16:    {"uint16_t", FormatUInt},
	Int32:     {"int32_t", FormatSInt},
	UInt32:    {"uint32_t", FormatUInt},
	Int64:     {"int64_t", FormatSInt},
	UInt64:    {"uint64_t", FormatUInt},
}

// Arena owns every type and interface of one API description.
// Allocation is append-only and handles grow monotonically. An Arena is not
// safe for concurrent mutation.
type Arena struct {
	tags  map[string]TypeID
	types []*Type
	seq   [len(kindNames)]int

	// mutable caches StripConst results.
	mutable map[TypeID]TypeID
}

// NewArena creates an arena holding the predeclared types.
func NewArena() *Arena {
	a := &Arena{
		tags:  make(map[string]TypeID),
		types: []*Type{nil},
	}
	a.alloc(Type{Kind: KindVoid, Expr: "void"}, "")
	for id := Bool; id <= UInt64; id++ {
		p := predeclared[id]
		a.alloc(Type{Kind: KindLiteral, Expr: p.expr, Format: p.format}, "")
	}
	a.CharString("char *", "")
	a.WideString("wchar_t *", "")
	return a
}

// Type returns the type for id, or nil if id is not registered here.
func (a *Arena) Type(id TypeID) *Type {
	if !id.IsValid() || int(id) >= len(a.types) {
		return nil
	}
	return a.types[id]
}

// Expr returns the C expression of id, or the empty string for unknown ids.
func (a *Arena) Expr(id TypeID) string {
	if t := a.Type(id); t != nil {
		return t.Expr
	}
	return ""
}

// Kind returns the kind of id. Unknown ids report KindVoid.
func (a *Arena) Kind(id TypeID) Kind {
	if t := a.Type(id); t != nil {
		return t.Kind
	}
	return KindVoid
}

// Lookup finds a type by its tag.
func (a *Arena) Lookup(tag string) (TypeID, bool) {
	id, ok := a.tags[tag]
	return id, ok
}

// Len returns the number of registered types.
func (a *Arena) Len() int {
	return len(a.types) - 1
}

// Types returns every registered type in allocation order.
func (a *Arena) Types() []*Type {
	return a.types[1:]
}

func (a *Arena) alloc(t Type, tag string) TypeID {
	if tag == "" {
		tag = sanitizeTag(t.Expr)
	} else {
		tag = sanitizeTag(tag)
	}
	if _, taken := a.tags[tag]; taken {
		suffix := 1
		for {
			candidate := tag + strconv.Itoa(suffix)
			if _, taken := a.tags[candidate]; !taken {
				tag = candidate
				break
			}
			suffix++
		}
	}

	switch t.Kind {
	case KindEnum, KindBitmask, KindStruct:
		t.Seq = a.seq[t.Kind]
		a.seq[t.Kind]++
	}

	id := TypeID(len(a.types))
	t.ID = id
	t.Tag = tag
	a.types = append(a.types, &t)
	a.tags[tag] = id
	return id
}

func sanitizeTag(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func (a *Arena) tagOf(id TypeID) string {
	if t := a.Type(id); t != nil {
		return t.Tag
	}
	return ""
}

// Literal registers a primitive type printed with the given format.
func (a *Arena) Literal(expr string, format Format) TypeID {
	return a.alloc(Type{Kind: KindLiteral, Expr: expr, Format: format}, "")
}

// CharString registers a zero-terminated (or length bounded) char string.
func (a *Arena) CharString(expr, length string) TypeID {
	return a.alloc(Type{Kind: KindString, Expr: expr, Length: length}, "")
}

// WideString registers a wchar_t string.
func (a *Arena) WideString(expr, length string) TypeID {
	return a.alloc(Type{Kind: KindString, Expr: expr, Length: length, Wide: true}, "")
}

// Const registers a const-qualified elem.
//
// Strings become pointers to const characters; expressions that already start
// with const or contain a pointer take a trailing qualifier.
func (a *Arena) Const(elem TypeID) TypeID {
	inner := a.Type(elem)
	var expr string
	switch {
	case inner == nil:
		expr = "const"
	case inner.Kind == KindString:
		expr = "const " + inner.Expr
	case strings.HasPrefix(inner.Expr, "const ") || strings.Contains(inner.Expr, "*"):
		expr = inner.Expr + " const"
	default:
		expr = "const " + inner.Expr
	}
	return a.alloc(Type{Kind: KindConst, Expr: expr, Elem: elem}, "C"+a.tagOf(elem))
}

// Pointer registers a pointer to elem.
func (a *Arena) Pointer(elem TypeID) TypeID {
	return a.alloc(Type{Kind: KindPointer, Expr: a.Expr(elem) + " *", Elem: elem}, "P"+a.tagOf(elem))
}

// ConstPointer registers a pointer to const elem.
func (a *Arena) ConstPointer(elem TypeID) TypeID {
	return a.Pointer(a.Const(elem))
}

// Handle registers a tracked handle of the underlying elem type.
// rangeExpr and key may be empty.
func (a *Arena) Handle(name string, elem TypeID, rangeExpr, key string) TypeID {
	return a.alloc(Type{
		Kind:  KindHandle,
		Name:  name,
		Expr:  a.Expr(elem),
		Elem:  elem,
		Range: rangeExpr,
		Key:   key,
	}, "P"+a.tagOf(elem))
}

// Enum registers a named enumeration with its symbolic values.
func (a *Arena) Enum(name string, values ...string) TypeID {
	return a.alloc(Type{Kind: KindEnum, Name: name, Expr: name, Values: values}, "")
}

// FakeEnum registers an enumeration that type-checks as elem, for integer
// parameters that only have symbolic meaning.
func (a *Arena) FakeEnum(elem TypeID, values ...string) TypeID {
	expr := a.Expr(elem)
	return a.alloc(Type{Kind: KindEnum, Name: expr, Expr: expr, Values: values}, "")
}

// Bitmask registers a set of flags stored in elem.
func (a *Arena) Bitmask(elem TypeID, flags ...string) TypeID {
	return a.alloc(Type{Kind: KindBitmask, Expr: a.Expr(elem), Elem: elem, Values: flags}, "")
}

// Array registers a counted array of elem. length is a C expression
// evaluated at trace time.
func (a *Arena) Array(elem TypeID, length string) TypeID {
	return a.alloc(Type{Kind: KindArray, Expr: a.Expr(elem) + " *", Elem: elem, Length: length}, "")
}

// Blob registers a raw byte range; size is a C expression in bytes.
func (a *Arena) Blob(elem TypeID, size string) TypeID {
	return a.alloc(Type{Kind: KindBlob, Expr: a.Expr(elem) + " *", Elem: elem, Length: size}, "")
}

// Struct registers a structure with ordered members.
func (a *Arena) Struct(name string, members ...Member) TypeID {
	return a.alloc(Type{Kind: KindStruct, Name: name, Expr: name, Members: members}, "")
}

// Alias registers a typedef of elem.
func (a *Arena) Alias(expr string, elem TypeID) TypeID {
	return a.alloc(Type{Kind: KindAlias, Name: expr, Expr: expr, Elem: elem}, "")
}

// Opaque registers a pointer-sized value whose pointee is never inspected.
func (a *Arena) Opaque(expr string) TypeID {
	return a.alloc(Type{Kind: KindOpaque, Expr: expr}, "")
}

// OpaquePointer registers an opaque pointer to elem.
func (a *Arena) OpaquePointer(elem TypeID) TypeID {
	return a.Opaque(a.Expr(elem) + " *")
}
