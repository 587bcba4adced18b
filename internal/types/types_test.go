package types

import "testing"

func TestIntegerBounds(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name    string
		wantMin string
		wantMax string
	}{
		{"u8", "0", "255"},
		{"s8", "-128", "127"},
		{"u16", "0", "65535"},
		{"s16", "-32768", "32767"},
		{"u32", "0", "4294967295"},
		{"s32", "-2147483648", "2147483647"},
		{"u64", "0", "18446744073709551615"},
		{"s64", "-9223372036854775808", "9223372036854775807"},
	}

	for _, tc := range tests {
		typ := r.IntegerType(tc.name)
		if typ.IntMin().String() != tc.wantMin {
			t.Errorf("%s.min = %s, want %s", tc.name, typ.IntMin(), tc.wantMin)
		}
		if typ.IntMax().String() != tc.wantMax {
			t.Errorf("%s.max = %s, want %s", tc.name, typ.IntMax(), tc.wantMax)
		}
	}
}

func TestPointerEqualityIsIdentityEquality(t *testing.T) {
	r := NewRegistry()

	a := r.UniquePointer(r.UniqueArray(4, r.IntegerType("u16")))
	b := r.UniquePointer(r.UniqueArray(4, r.IntegerType("u16")))

	if a != b {
		t.Fatalf("expected pointer-identical types for identical canonical names, got distinct pointers %p != %p", a, b)
	}
	if a.String() != "*[4]u16" {
		t.Errorf("canonical name = %q, want *[4]u16", a.String())
	}
}

func TestFunctionCanonicalName(t *testing.T) {
	r := NewRegistry()

	f := r.UniqueFunction([]*Type{r.IntegerType("u32"), r.UniquePointer(r.AnyType())}, r.VoidType())
	if f.String() != "func(u32, *any) void" {
		t.Errorf("canonical name = %q, want func(u32, *any) void", f.String())
	}

	f2 := r.UniqueFunction([]*Type{r.IntegerType("u32"), r.UniquePointer(r.AnyType())}, r.VoidType())
	if f != f2 {
		t.Errorf("expected identical function types to be pointer-identical")
	}
}

func TestStructDeclareThenComplete(t *testing.T) {
	r := NewRegistry()

	s1 := r.DeclareStruct("box")
	s2 := r.DeclareStruct("box")
	if s1 != s2 {
		t.Fatalf("expected re-declaring the same struct name to return the same pointer")
	}
	if s1.IsComplete() {
		t.Fatalf("expected freshly declared struct to be incomplete")
	}

	r.CompleteStruct(s1, []Member{{Name: "v", Type: r.IntegerType("u32"), Offset: 0}}, 4, 4, nil)
	if !s1.IsComplete() {
		t.Fatalf("expected struct to be complete after CompleteStruct")
	}
	if m, ok := s1.FindMember("v"); !ok || m.Type != r.IntegerType("u32") {
		t.Fatalf("expected member 'v' of type u32, got %+v, ok=%v", m, ok)
	}
}

func TestCompleteStructTwicePanics(t *testing.T) {
	r := NewRegistry()
	s := r.DeclareStruct("once")
	r.CompleteStruct(s, nil, 0, 1, nil)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on double completion")
		}
	}()
	r.CompleteStruct(s, nil, 0, 1, nil)
}
