package types

import "fmt"

// Member is one named field of a StructDef, with its type and byte offset
// as committed by PackMembers/PadMembers.
type Member struct {
	Name   string
	Def    *TypeDef
	Offset int
}

// StructDef is a user-declared struct: an ordered member list with offsets
// committed at declaration time under a packed or padded layout policy.
// A StructDef is immutable once returned from PackMembers/PadMembers.
type StructDef struct {
	Name    string
	Packed  bool
	Members []Member
	Size    int
}

// NewStructDef declares a struct with the given member order but no layout
// committed yet; callers must call PackMembers or PadMembers before any
// AotNode may reference a field (§4.2).
func NewStructDef(name string, members []Member) (*StructDef, error) {
	seen := make(map[string]bool, len(members))
	for _, m := range members {
		if seen[m.Name] {
			return nil, fmt.Errorf("types: duplicate member %q in struct %q", m.Name, name)
		}
		seen[m.Name] = true
	}
	return &StructDef{Name: name, Members: members}, nil
}

// PackMembers lays members out with no padding: each offset is the running
// sum of preceding sizes, and the struct size is the sum of all sizes.
func (s *StructDef) PackMembers() {
	offset := 0
	for i := range s.Members {
		s.Members[i].Offset = offset
		offset += s.Members[i].Def.Size()
	}
	s.Packed = true
	s.Size = offset
}

// PadMembers lays members out with natural alignment: each member's offset
// is rounded up to a multiple of its own size (power-of-two sizes make size
// and alignment coincide for every primitive), and the struct's total size
// is rounded up to the largest member's size.
func (s *StructDef) PadMembers() {
	offset := 0
	maxAlign := 1
	for i := range s.Members {
		align := s.Members[i].Def.Size()
		if align == 0 {
			align = 1
		}
		if align > maxAlign {
			maxAlign = align
		}
		offset = alignUp(offset, align)
		s.Members[i].Offset = offset
		offset += s.Members[i].Def.Size()
	}
	s.Packed = false
	s.Size = alignUp(offset, maxAlign)
}

func alignUp(offset, align int) int {
	if align <= 1 {
		return offset
	}
	rem := offset % align
	if rem == 0 {
		return offset
	}
	return offset + (align - rem)
}

// Member looks a field up by name, returning (member, true) or a zero value
// and false when the struct has no such field.
func (s *StructDef) Member(name string) (Member, bool) {
	for _, m := range s.Members {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}

// IRStructDef is the wire-serializable form of a StructDef, published
// alongside every StructDef so the runtime interpreter can lay objects out
// without relinking against this compiler's in-memory types.
type IRStructDef struct {
	Name    string          `yaml:"name"`
	Packed  bool            `yaml:"packed"`
	Members []IRStructMember `yaml:"members"`
	Size    int             `yaml:"size"`
}

// IRStructMember is one field entry in the wire form of a struct.
type IRStructMember struct {
	Name     string `yaml:"name"`
	Offset   int    `yaml:"offset"`
	TypeName string `yaml:"type"`
}

// ToIR serializes a committed StructDef into its wire form.
func (s *StructDef) ToIR() IRStructDef {
	members := make([]IRStructMember, len(s.Members))
	for i, m := range s.Members {
		members[i] = IRStructMember{Name: m.Name, Offset: m.Offset, TypeName: m.Def.Name()}
	}
	return IRStructDef{Name: s.Name, Packed: s.Packed, Members: members, Size: s.Size}
}
