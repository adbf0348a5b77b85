package gdsii

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/robert-malhotra/go-gdsii/internal/binary"
	"github.com/robert-malhotra/go-gdsii/internal/record"
)

// ScanStructs reads records from the current position through ENDLIB and
// indexes every structure by the offset just after its STRNAME record.
// Only BGNSTR and STRNAME payloads are decoded; everything else is skipped
// by length. On success the stream is positioned just after ENDLIB.
func ScanStructs(r io.ReadSeeker) (*Index, error) {
	return scanStructs(binary.NewReader(r), discardLogger())
}

func scanStructs(br *binary.Reader, logger *log.Logger) (*Index, error) {
	ix := newIndex()
	for {
		h, err := record.ReadHeaderStrict(br)
		if err != nil {
			return nil, err
		}

		switch h.Tag {
		case record.ENDLIB:
			if err := record.Skip(br, h); err != nil {
				return nil, err
			}
			logger.Debug("indexed structures", "count", ix.Len())
			return ix, nil

		case record.BGNSTR:
			if err := record.Skip(br, h); err != nil {
				return nil, err
			}
			nh, err := record.Expect(br, record.STRNAME)
			if err != nil {
				return nil, fmt.Errorf("reading structure name: %w", err)
			}
			name, err := record.DecodeASCII(br, nh)
			if err != nil {
				return nil, err
			}
			offset, err := br.Pos()
			if err != nil {
				return nil, err
			}
			start := offset - int64(2*record.HeaderSize+h.Size+nh.Size)
			if err := ix.insert(name, indexEntry{offset: offset, start: start}); err != nil {
				return nil, err
			}

		default:
			if err := record.Skip(br, h); err != nil {
				return nil, err
			}
		}
	}
}

// ScanHierarchy reads records from the current position through ENDLIB
// and counts, for every structure, the instances of each structure it
// references. Geometry is skipped without decoding.
func ScanHierarchy(r io.ReadSeeker) (*Hierarchy, error) {
	return scanHierarchy(binary.NewReader(r), discardLogger())
}

// structCounts accumulates the references of the structure being scanned.
type structCounts struct {
	name   string
	counts map[string]int
}

// refState tracks the element being scanned.
type refState struct {
	open      bool
	isRef     bool
	name      string
	hasName   bool
	tiling    int
	hasTiling bool
}

func (s refState) count() int {
	if s.hasTiling {
		return s.tiling
	}
	return 1
}

func scanHierarchy(br *binary.Reader, logger *log.Logger) (*Hierarchy, error) {
	hier := newHierarchy()

	var (
		cur      *structCounts
		inStruct bool
		elem     refState
	)

	flush := func() error {
		if cur == nil {
			return nil
		}
		err := hier.insert(cur.name, cur.counts)
		cur = nil
		return err
	}

	for {
		h, err := record.ReadHeaderStrict(br)
		if err != nil {
			return nil, err
		}

		if elem.open {
			switch h.Tag {
			case record.BGNSTR, record.ENDSTR, record.ENDLIB:
				return nil, fmt.Errorf("%w: %v inside an open element", ErrInconsistentGrammar, h.Tag)
			}
		}

		switch {
		case h.Tag == record.ENDLIB:
			if err := record.Skip(br, h); err != nil {
				return nil, err
			}
			if inStruct {
				return nil, fmt.Errorf("%w: ENDLIB inside structure %q", ErrInconsistentGrammar, cur.name)
			}
			if err := flush(); err != nil {
				return nil, err
			}
			logger.Debug("scanned hierarchy", "structures", hier.Len())
			return hier, nil

		case h.Tag == record.BGNSTR:
			if inStruct {
				return nil, fmt.Errorf("%w: BGNSTR inside structure %q", ErrInconsistentGrammar, cur.name)
			}
			if err := record.Skip(br, h); err != nil {
				return nil, err
			}
			if err := flush(); err != nil {
				return nil, err
			}
			name, err := record.ReadASCII(br, record.STRNAME)
			if err != nil {
				return nil, fmt.Errorf("reading structure name: %w", err)
			}
			if hier.has(name) {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
			}
			cur = &structCounts{name: name, counts: make(map[string]int)}
			inStruct = true

		case h.Tag == record.ENDSTR:
			if !inStruct {
				return nil, fmt.Errorf("%w: ENDSTR outside a structure", ErrInconsistentGrammar)
			}
			if err := record.Skip(br, h); err != nil {
				return nil, err
			}
			inStruct = false

		case isElementStart(h.Tag), h.Tag == record.TEXTNODE:
			if elem.open {
				return nil, fmt.Errorf("%w: %v inside an open element", ErrInconsistentGrammar, h.Tag)
			}
			if !inStruct {
				return nil, fmt.Errorf("%w: %v outside a structure", ErrInconsistentGrammar, h.Tag)
			}
			if err := record.Skip(br, h); err != nil {
				return nil, err
			}
			elem = refState{open: true, isRef: h.Tag == record.SREF || h.Tag == record.AREF}

		case h.Tag == record.SNAME:
			if !elem.isRef {
				return nil, fmt.Errorf("%w: SNAME outside a reference element", ErrInconsistentGrammar)
			}
			name, err := record.DecodeASCII(br, h)
			if err != nil {
				return nil, err
			}
			elem.name, elem.hasName = name, true

		case h.Tag == record.COLROW && elem.isRef:
			cr, err := decodeColRow(br, h)
			if err != nil {
				return nil, err
			}
			elem.tiling, elem.hasTiling = cr.Count(), true

		case h.Tag == record.ENDEL:
			if !elem.open {
				return nil, fmt.Errorf("%w: ENDEL outside an element", ErrInconsistentGrammar)
			}
			if err := record.Skip(br, h); err != nil {
				return nil, err
			}
			if elem.isRef {
				if !elem.hasName {
					return nil, fmt.Errorf("%w: reference element without SNAME in %q", ErrInconsistentGrammar, cur.name)
				}
				cur.counts[elem.name] += elem.count()
			}
			elem = refState{}

		default:
			if err := record.Skip(br, h); err != nil {
				return nil, err
			}
		}
	}
}
