package wasm

import (
	"errors"
	"fmt"
	"io"

	"github.com/wippyai/wasm-bundler/wasm/internal/binary"
)

// Parsing errors returned by ParseSurface.
var (
	ErrInvalidMagic   = errors.New("invalid wasm magic number")
	ErrInvalidVersion = errors.New("invalid wasm version")
)

// Reference value type bytes carrying an s33 heap type immediate.
const (
	valRefNull byte = 0x63
	valRef     byte = 0x64
)

// Limits flag bits
const (
	limitsHasMax   byte = 0x01
	limitsShared   byte = 0x02
	limitsMemory64 byte = 0x04
)

// ParseSurface parses a WebAssembly binary and returns its import/export
// surface. Sections other than import and export are validated for
// layout (ordering, declared sizes) and their payloads skipped.
func ParseSurface(data []byte) (*Surface, error) {
	r := binary.NewReader(data)

	magic, err := r.ReadU32LE()
	if err != nil {
		return nil, r.WrapError("header", err)
	}
	if magic != Magic {
		return nil, ErrInvalidMagic
	}

	version, err := r.ReadU32LE()
	if err != nil {
		return nil, r.WrapError("header", err)
	}
	if version != Version {
		return nil, ErrInvalidVersion
	}

	s := &Surface{}

	// Track section ordering using canonical order, not section IDs.
	// Custom sections can appear anywhere.
	var lastSectionOrder int

	for {
		sectionID, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, r.WrapError("section header", err)
		}

		if sectionID != SectionCustom {
			order := sectionOrder(sectionID)
			if order <= lastSectionOrder {
				return nil, fmt.Errorf("section %d appears out of order", sectionID)
			}
			lastSectionOrder = order
		}

		sectionSize, err := r.ReadU32()
		if err != nil {
			return nil, r.WrapError("section size", err)
		}

		sectionData, err := r.ReadBytes(int(sectionSize))
		if err != nil {
			return nil, r.WrapError("section data", err)
		}

		sr := binary.NewReader(sectionData)

		switch sectionID {
		case SectionImport:
			if err := parseImportSection(sr, s); err != nil {
				return nil, fmt.Errorf("import section: %w", err)
			}
		case SectionExport:
			if err := parseExportSection(sr, s); err != nil {
				return nil, fmt.Errorf("export section: %w", err)
			}
		case SectionCustom, SectionType, SectionFunction, SectionTable,
			SectionMemory, SectionGlobal, SectionStart, SectionElement,
			SectionCode, SectionData, SectionDataCount, SectionTag:
			// Payload already consumed by the size-prefixed read.
		default:
			return nil, fmt.Errorf("unknown section ID: 0x%02x", sectionID)
		}
	}

	return s, nil
}

// sectionOrder returns the canonical ordering for a section ID.
// The binary format requires sections in a specific order that differs
// from the raw section IDs.
func sectionOrder(id byte) int {
	switch id {
	case SectionType:
		return 1
	case SectionImport:
		return 2
	case SectionFunction:
		return 3
	case SectionTable:
		return 4
	case SectionMemory:
		return 5
	case SectionTag:
		return 6
	case SectionGlobal:
		return 7
	case SectionExport:
		return 8
	case SectionStart:
		return 9
	case SectionElement:
		return 10
	case SectionDataCount:
		return 11
	case SectionCode:
		return 12
	case SectionData:
		return 13
	default:
		return 100
	}
}

func parseImportSection(r *binary.Reader, s *Surface) error {
	count, err := r.ReadU32()
	if err != nil {
		return err
	}
	s.Imports = make([]Import, count)
	for i := uint32(0); i < count; i++ {
		module, err := r.ReadName()
		if err != nil {
			return err
		}
		name, err := r.ReadName()
		if err != nil {
			return err
		}
		kind, err := r.ReadByte()
		if err != nil {
			return err
		}
		if err := skipImportDesc(r, kind); err != nil {
			return fmt.Errorf("import %s.%s: %w", module, name, err)
		}
		s.Imports[i] = Import{Module: module, Name: name, Kind: Kind(kind)}
	}
	if r.Len() != 0 {
		return fmt.Errorf("%d trailing bytes after %d imports", r.Len(), count)
	}
	return nil
}

// skipImportDesc consumes an import descriptor without modeling it. The
// descriptor grammar must still be followed byte for byte to find the
// next entry.
func skipImportDesc(r *binary.Reader, kind byte) error {
	switch Kind(kind) {
	case KindFunc:
		_, err := r.ReadU32() // type index
		return err
	case KindTable:
		if err := skipValType(r); err != nil {
			return err
		}
		return skipLimits(r)
	case KindMemory:
		return skipLimits(r)
	case KindGlobal:
		if err := skipValType(r); err != nil {
			return err
		}
		_, err := r.ReadByte() // mutability
		return err
	case KindTag:
		if _, err := r.ReadByte(); err != nil { // attribute
			return err
		}
		_, err := r.ReadU32() // type index
		return err
	default:
		return fmt.Errorf("unknown import kind: %d", kind)
	}
}

// skipValType consumes a value or reference type, including the s33 heap
// type immediate carried by typed references.
func skipValType(r *binary.Reader) error {
	b, err := r.ReadByte()
	if err != nil {
		return err
	}
	if b == valRefNull || b == valRef {
		_, err = r.ReadS64()
	}
	return err
}

func skipLimits(r *binary.Reader) error {
	flags, err := r.ReadByte()
	if err != nil {
		return err
	}
	if flags&^(limitsHasMax|limitsShared|limitsMemory64) != 0 {
		return fmt.Errorf("invalid limits flags: 0x%02x", flags)
	}

	read := func() error {
		if flags&limitsMemory64 != 0 {
			_, err := r.ReadU64()
			return err
		}
		_, err := r.ReadU32()
		return err
	}

	if err := read(); err != nil {
		return err
	}
	if flags&limitsHasMax != 0 {
		return read()
	}
	return nil
}

func parseExportSection(r *binary.Reader, s *Surface) error {
	count, err := r.ReadU32()
	if err != nil {
		return err
	}
	s.Exports = make([]Export, count)
	for i := uint32(0); i < count; i++ {
		name, err := r.ReadName()
		if err != nil {
			return err
		}
		kind, err := r.ReadByte()
		if err != nil {
			return err
		}
		if Kind(kind) > KindTag {
			return fmt.Errorf("invalid export kind: 0x%02x", kind)
		}
		if _, err := r.ReadU32(); err != nil { // entity index
			return err
		}
		s.Exports[i] = Export{Name: name, Kind: Kind(kind)}
	}
	if r.Len() != 0 {
		return fmt.Errorf("%d trailing bytes after %d exports", r.Len(), count)
	}
	return nil
}
