package stdapi

import (
	"testing"
)

func TestPredeclared(t *testing.T) {
	a := NewArena()

	tests := []struct {
		id     TypeID
		expr   string
		kind   Kind
		format Format
	}{
		{Void, "void", KindVoid, FormatNone},
		{Bool, "bool", KindLiteral, FormatBool},
		{SChar, "signed char", KindLiteral, FormatSInt},
		{Int, "int", KindLiteral, FormatSInt},
		{ULongLong, "unsigned long long", KindLiteral, FormatUInt},
		{Float, "float", KindLiteral, FormatFloat},
		{Double, "double", KindLiteral, FormatDouble},
		{SizeT, "size_t", KindLiteral, FormatUInt},
		{Int8, "int8_t", KindLiteral, FormatSInt},
		{UInt64, "uint64_t", KindLiteral, FormatUInt},
		{CString, "char *", KindString, FormatNone},
		{WString, "wchar_t *", KindString, FormatNone},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			typ := a.Type(tt.id)
			if typ == nil {
				t.Fatalf("Type(%d) = nil", tt.id)
			}
			if typ.Expr != tt.expr || typ.Kind != tt.kind || typ.Format != tt.format {
				t.Errorf("got %q %v %v, want %q %v %v", typ.Expr, typ.Kind, typ.Format, tt.expr, tt.kind, tt.format)
			}
		})
	}

	if !a.Type(WString).Wide || a.Type(CString).Wide {
		t.Error("only WString should be wide")
	}
	if a.Len() != int(WString) {
		t.Errorf("Len() = %d, want %d", a.Len(), WString)
	}
	if a.Type(InvalidType) != nil {
		t.Error("InvalidType should not resolve")
	}
}

func TestTagCollision(t *testing.T) {
	a := NewArena()

	first := a.Struct("RECT")
	second := a.Struct("RECT")
	third := a.Alias("RECT", Long)

	want := []string{"RECT", "RECT1", "RECT2"}
	for i, id := range []TypeID{first, second, third} {
		if got := a.Type(id).Tag; got != want[i] {
			t.Errorf("tag[%d] = %q, want %q", i, got, want[i])
		}
	}

	if id, ok := a.Lookup("RECT1"); !ok || id != second {
		t.Errorf("Lookup(RECT1) = %d, %v", id, ok)
	}
	if first == second {
		t.Error("structurally equal structs must be distinct")
	}
}

func TestTagsAreUnique(t *testing.T) {
	a := NewArena()
	for i := 0; i < 20; i++ {
		a.Pointer(Int)
		a.Opaque("void *")
	}
	seen := make(map[string]bool)
	for _, typ := range a.Types() {
		if seen[typ.Tag] {
			t.Fatalf("tag %q registered twice", typ.Tag)
		}
		seen[typ.Tag] = true
	}
}

func TestDerivedExprAndTag(t *testing.T) {
	a := NewArena()
	pint := a.Pointer(Int)

	tests := []struct {
		name string
		id   TypeID
		expr string
		tag  string
	}{
		{"const int", a.Const(Int), "const int", "Cint"},
		{"const pointer", a.Const(pint), "int * const", "CPint"},
		{"const string", a.Const(CString), "const char *", "Cchar"},
		{"const const", a.Const(a.Const(Float)), "const float const", "CCfloat"},
		{"pointer", a.Pointer(Double), "double *", "Pdouble"},
		{"pointer to const", a.ConstPointer(UInt), "const unsigned int *", "PCunsignedint"},
		{"handle", a.Handle("buffer", UInt, "n", ""), "unsigned int", "Punsignedint"},
		{"array", a.Array(Float, "count"), "float *", "float1"},
		{"blob", a.Blob(Void, "size"), "void *", "void1"},
		{"opaque pointer", a.OpaquePointer(Void), "void *", "void2"},
		{"fake enum", a.FakeEnum(UInt, "GL_FALSE", "GL_TRUE"), "unsigned int", "unsignedint1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ := a.Type(tt.id)
			if typ.Expr != tt.expr {
				t.Errorf("Expr = %q, want %q", typ.Expr, tt.expr)
			}
			if typ.Tag != tt.tag {
				t.Errorf("Tag = %q, want %q", typ.Tag, tt.tag)
			}
		})
	}
}

func TestSequenceNumbers(t *testing.T) {
	a := NewArena()
	s0 := a.Struct("A")
	e0 := a.Enum("E0", "X")
	s1 := a.Struct("B")
	b0 := a.Bitmask(UInt, "F_A", "F_B")
	e1 := a.FakeEnum(Int, "Y")

	tests := []struct {
		id  TypeID
		seq int
	}{
		{s0, 0}, {s1, 1}, {e0, 0}, {e1, 1}, {b0, 0},
	}
	for _, tt := range tests {
		if got := a.Type(tt.id).Seq; got != tt.seq {
			t.Errorf("%s Seq = %d, want %d", a.Type(tt.id).Expr, got, tt.seq)
		}
	}
}

func TestKindString(t *testing.T) {
	if KindInterface.String() != "interface" {
		t.Errorf("KindInterface.String() = %q", KindInterface.String())
	}
	if Kind(200).String() != "unknown" {
		t.Errorf("Kind(200).String() = %q", Kind(200).String())
	}
	if FormatSInt.String() != "SInt" {
		t.Errorf("FormatSInt.String() = %q", FormatSInt.String())
	}
}
