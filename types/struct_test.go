package types

import "testing"

func TestPadMembers(t *testing.T) {
	def, err := NewStructDef("S", []Member{
		{Name: "a", Def: NewPrimitive(Char)},
		{Name: "b", Def: NewPrimitive(Int32)},
		{Name: "c", Def: NewPrimitive(Float32)},
	})
	if err != nil {
		t.Fatalf("NewStructDef: %v", err)
	}
	def.PadMembers()

	wantOffsets := []int{0, 4, 8}
	for i, want := range wantOffsets {
		if def.Members[i].Offset != want {
			t.Errorf("member %d offset = %d, want %d", i, def.Members[i].Offset, want)
		}
	}
	if def.Size != 12 {
		t.Errorf("padded size = %d, want 12", def.Size)
	}
}

func TestPackMembers(t *testing.T) {
	def, err := NewStructDef("P", []Member{
		{Name: "a", Def: NewPrimitive(Char)},
		{Name: "b", Def: NewPrimitive(Int32)},
		{Name: "c", Def: NewPrimitive(Float32)},
	})
	if err != nil {
		t.Fatalf("NewStructDef: %v", err)
	}
	def.PackMembers()

	wantOffsets := []int{0, 1, 5}
	for i, want := range wantOffsets {
		if def.Members[i].Offset != want {
			t.Errorf("member %d offset = %d, want %d", i, def.Members[i].Offset, want)
		}
	}
	if def.Size != 9 {
		t.Errorf("packed size = %d, want 9", def.Size)
	}
}

func TestDuplicateMemberRejected(t *testing.T) {
	_, err := NewStructDef("D", []Member{
		{Name: "a", Def: NewPrimitive(Int32)},
		{Name: "a", Def: NewPrimitive(Float32)},
	})
	if err == nil {
		t.Fatal("expected error for duplicate member name")
	}
}

func TestMemberLookup(t *testing.T) {
	def, _ := NewStructDef("S", []Member{
		{Name: "x", Def: NewPrimitive(Int64)},
	})
	def.PadMembers()

	m, ok := def.Member("x")
	if !ok || m.Offset != 0 {
		t.Fatalf("Member(x) = %+v, %v", m, ok)
	}
	if _, ok := def.Member("y"); ok {
		t.Fatal("Member(y) should not be found")
	}
}
