package stdapi

// Kind identifies the variant of a Type. The set is closed; every switch over
// Kind in this module is exhaustive.
type Kind uint8

const (
	KindVoid Kind = iota
	KindLiteral
	KindString
	KindConst
	KindPointer
	KindHandle
	KindEnum
	KindBitmask
	KindArray
	KindBlob
	KindStruct
	KindAlias
	KindOpaque
	KindInterface
)

var kindNames = [...]string{
	KindVoid:      "void",
	KindLiteral:   "literal",
	KindString:    "string",
	KindConst:     "const",
	KindPointer:   "pointer",
	KindHandle:    "handle",
	KindEnum:      "enum",
	KindBitmask:   "bitmask",
	KindArray:     "array",
	KindBlob:      "blob",
	KindStruct:    "struct",
	KindAlias:     "alias",
	KindOpaque:    "opaque",
	KindInterface: "interface",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// HasElem reports whether types of this kind wrap an element type.
func (k Kind) HasElem() bool {
	switch k {
	case KindConst, KindPointer, KindHandle, KindBitmask, KindArray, KindBlob, KindAlias:
		return true
	default:
		return false
	}
}

// Format is the print format of a literal; it selects the writer call
// (writeSInt, writeUInt, ...) used to serialize values of that type.
type Format uint8

const (
	FormatNone Format = iota
	FormatSInt
	FormatUInt
	FormatFloat
	FormatDouble
	FormatBool
)

var formatNames = [...]string{
	FormatNone:   "",
	FormatSInt:   "SInt",
	FormatUInt:   "UInt",
	FormatFloat:  "Float",
	FormatDouble: "Double",
	FormatBool:   "Bool",
}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return "unknown"
}
