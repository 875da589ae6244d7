package wasm

// Binary format constants
const (
	Magic   uint32 = 0x6D736100 // "\0asm" little-endian
	Version uint32 = 1
)

// Section IDs
const (
	SectionCustom    byte = 0
	SectionType      byte = 1
	SectionImport    byte = 2
	SectionFunction  byte = 3
	SectionTable     byte = 4
	SectionMemory    byte = 5
	SectionGlobal    byte = 6
	SectionExport    byte = 7
	SectionStart     byte = 8
	SectionElement   byte = 9
	SectionCode      byte = 10
	SectionData      byte = 11
	SectionDataCount byte = 12
	SectionTag       byte = 13
)

// Kind identifies what an import or export refers to.
type Kind byte

const (
	KindFunc   Kind = 0
	KindTable  Kind = 1
	KindMemory Kind = 2
	KindGlobal Kind = 3
	KindTag    Kind = 4
)

func (k Kind) String() string {
	switch k {
	case KindFunc:
		return "func"
	case KindTable:
		return "table"
	case KindMemory:
		return "memory"
	case KindGlobal:
		return "global"
	case KindTag:
		return "tag"
	default:
		return "unknown"
	}
}

// Import is one entry of the binary's import section, in declaration
// order. Duplicate (Module, Name) pairs are preserved as declared.
type Import struct {
	Module string
	Name   string
	Kind   Kind
}

// Export is one entry of the binary's export section, in declaration
// order.
type Export struct {
	Name string
	Kind Kind
}

// ImportGroup collects the names a binary imports from one declaring
// module. Names keeps the binary's declaration order, duplicates
// included.
type ImportGroup struct {
	From  string
	Names []string
}

// Surface is a binary's import/export surface.
type Surface struct {
	Imports []Import
	Exports []Export
}

// Groups returns the imports grouped by declaring module. Groups appear
// in first-seen module order and each From value is unique across the
// result. Deduplicating repeated names is the caller's concern.
func (s *Surface) Groups() []ImportGroup {
	var groups []ImportGroup
	index := make(map[string]int)
	for _, imp := range s.Imports {
		i, ok := index[imp.Module]
		if !ok {
			i = len(groups)
			index[imp.Module] = i
			groups = append(groups, ImportGroup{From: imp.Module})
		}
		groups[i].Names = append(groups[i].Names, imp.Name)
	}
	return groups
}

// ExportNames returns the export names in declaration order.
func (s *Surface) ExportNames() []string {
	names := make([]string, len(s.Exports))
	for i, e := range s.Exports {
		names[i] = e.Name
	}
	return names
}
