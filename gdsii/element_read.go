package gdsii

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/robert-malhotra/go-gdsii/internal/binary"
	"github.com/robert-malhotra/go-gdsii/internal/record"
)

// isElementStart reports whether tag opens an element.
func isElementStart(tag record.Tag) bool {
	switch tag {
	case record.BOUNDARY, record.PATH, record.SREF, record.AREF,
		record.TEXT, record.NODE, record.BOX:
		return true
	}
	return false
}

// readElement reads the element opened by tag, whose header has already
// been consumed, through its ENDEL.
func readElement(br *binary.Reader, tag record.Tag, logger *log.Logger) (Element, error) {
	switch tag {
	case record.BOUNDARY:
		return readBoundary(br, logger)
	case record.PATH:
		return readPath(br, logger)
	case record.NODE:
		return readNode(br, logger)
	case record.BOX:
		return readBox(br, logger)
	case record.TEXT:
		return readText(br, logger)
	case record.SREF, record.AREF:
		return readReference(br, tag, logger)
	}
	return nil, fmt.Errorf("%w: %v does not open an element", ErrInconsistentGrammar, tag)
}

// skipElement consumes an element this package does not model, such as a
// legacy TEXTNODE, through its ENDEL.
func skipElement(br *binary.Reader, tag record.Tag, logger *log.Logger) error {
	var skipped int
	for {
		h, err := record.ReadHeaderStrict(br)
		if err != nil {
			return fmt.Errorf("skipping %v element: %w", tag, err)
		}
		switch {
		case h.Tag == record.ENDEL:
			if err := record.DecodeNoData(br, h); err != nil {
				return err
			}
			logger.Debug("skipped element", "tag", tag, "records", skipped)
			return nil
		case isElementStart(h.Tag), h.Tag == record.TEXTNODE, h.Tag == record.ENDSTR,
			h.Tag == record.BGNSTR, h.Tag == record.ENDLIB:
			return fmt.Errorf("%w: %v inside %v element", ErrInconsistentGrammar, h.Tag, tag)
		default:
			if err := record.Skip(br, h); err != nil {
				return err
			}
			skipped++
		}
	}
}

// fieldFunc decodes one element sub-record. It returns false for records
// it does not handle, which are then skipped.
type fieldFunc func(h record.Header) (bool, error)

// readBody reads sub-records up to and including ENDEL. Properties are
// collected here; every other record goes to field.
func readBody(br *binary.Reader, kind Kind, logger *log.Logger, field fieldFunc) ([]Property, error) {
	var (
		props   []Property
		attr    int16
		hasAttr bool
	)
	for {
		h, err := record.ReadHeaderStrict(br)
		if err != nil {
			return nil, fmt.Errorf("reading %v element: %w", kind, err)
		}

		switch {
		case h.Tag == record.ENDEL:
			if err := record.DecodeNoData(br, h); err != nil {
				return nil, err
			}
			return props, nil

		case h.Tag == record.PROPATTR:
			vals, err := record.DecodeInt16s(br, h)
			if err != nil {
				return nil, err
			}
			if len(vals) != 1 {
				return nil, fmt.Errorf("%w: PROPATTR holds %d values", ErrMalformedStream, len(vals))
			}
			attr, hasAttr = vals[0], true

		case h.Tag == record.PROPVALUE:
			v, err := record.DecodeASCII(br, h)
			if err != nil {
				return nil, err
			}
			if !hasAttr {
				return nil, fmt.Errorf("%w: PROPVALUE without PROPATTR in %v element", ErrInconsistentGrammar, kind)
			}
			props = append(props, Property{Attr: attr, Value: v})
			hasAttr = false

		case isElementStart(h.Tag), h.Tag == record.TEXTNODE, h.Tag == record.ENDSTR,
			h.Tag == record.BGNSTR, h.Tag == record.ENDLIB:
			return nil, fmt.Errorf("%w: %v inside %v element", ErrInconsistentGrammar, h.Tag, kind)

		default:
			handled, err := field(h)
			if err != nil {
				return nil, fmt.Errorf("reading %v element: %w", kind, err)
			}
			if !handled {
				logger.Debug("skipping element record", "element", kind, "tag", h.Tag, "size", h.Size)
				if err := record.Skip(br, h); err != nil {
					return nil, err
				}
			}
		}
	}
}

// decodeColRow reads a COLROW record. Both dimensions must be at least 1.
func decodeColRow(br *binary.Reader, h record.Header) (ColRow, error) {
	vals, err := record.DecodeInt16s(br, h)
	if err != nil {
		return ColRow{}, err
	}
	if len(vals) != 2 {
		return ColRow{}, fmt.Errorf("%w: COLROW holds %d values, want 2", ErrMalformedStream, len(vals))
	}
	if vals[0] < 1 || vals[1] < 1 {
		return ColRow{}, fmt.Errorf("%w: COLROW %dx%d is not a positive tiling", ErrMalformedStream, vals[0], vals[1])
	}
	return ColRow{Columns: vals[0], Rows: vals[1]}, nil
}

func decodeInt16(br *binary.Reader, h record.Header) (int16, error) {
	vals, err := record.DecodeInt16s(br, h)
	if err != nil {
		return 0, err
	}
	if len(vals) != 1 {
		return 0, fmt.Errorf("%w: %v holds %d values, want 1", ErrMalformedStream, h.Tag, len(vals))
	}
	return vals[0], nil
}

func decodeInt32(br *binary.Reader, h record.Header) (int32, error) {
	vals, err := record.DecodeInt32s(br, h)
	if err != nil {
		return 0, err
	}
	if len(vals) != 1 {
		return 0, fmt.Errorf("%w: %v holds %d values, want 1", ErrMalformedStream, h.Tag, len(vals))
	}
	return vals[0], nil
}

func decodeReal8(br *binary.Reader, h record.Header) (float64, error) {
	vals, err := record.DecodeReal8s(br, h)
	if err != nil {
		return 0, err
	}
	if len(vals) != 1 {
		return 0, fmt.Errorf("%w: %v holds %d values, want 1", ErrMalformedStream, h.Tag, len(vals))
	}
	return vals[0], nil
}

func decodeXY(br *binary.Reader, h record.Header) ([]Point, error) {
	vals, err := record.DecodeInt32s(br, h)
	if err != nil {
		return nil, err
	}
	if len(vals)%2 != 0 {
		return nil, fmt.Errorf("%w: XY holds an odd number of coordinates (%d)", ErrMalformedStream, len(vals))
	}
	pts := make([]Point, len(vals)/2)
	for i := range pts {
		pts[i] = Point{X: vals[2*i], Y: vals[2*i+1]}
	}
	return pts, nil
}

// transformField decodes STRANS, MAG and ANGLE into *t. MAG and ANGLE
// before STRANS are accepted and create the transform.
func transformField(br *binary.Reader, h record.Header, t **Transform) (bool, error) {
	switch h.Tag {
	case record.STRANS:
		v, err := record.DecodeBitArray(br, h)
		if err != nil {
			return true, err
		}
		nt := transformFromFlags(v)
		if *t != nil {
			nt.Mag, nt.Angle = (*t).Mag, (*t).Angle
		}
		*t = nt
		return true, nil
	case record.MAG:
		v, err := decodeReal8(br, h)
		if err != nil {
			return true, err
		}
		if *t == nil {
			*t = &Transform{}
		}
		(*t).Mag = v
		return true, nil
	case record.ANGLE:
		v, err := decodeReal8(br, h)
		if err != nil {
			return true, err
		}
		if *t == nil {
			*t = &Transform{}
		}
		(*t).Angle = v
		return true, nil
	}
	return false, nil
}

func readBoundary(br *binary.Reader, logger *log.Logger) (*Boundary, error) {
	b := &Boundary{}
	props, err := readBody(br, KindBoundary, logger, func(h record.Header) (bool, error) {
		var err error
		switch h.Tag {
		case record.LAYER:
			b.Layer, err = decodeInt16(br, h)
		case record.DATATYPE:
			b.DataType, err = decodeInt16(br, h)
		case record.XY:
			b.XY, err = decodeXY(br, h)
		default:
			return false, nil
		}
		return true, err
	})
	if err != nil {
		return nil, err
	}
	b.Properties = props
	return b, nil
}

func readPath(br *binary.Reader, logger *log.Logger) (*Path, error) {
	p := &Path{}
	props, err := readBody(br, KindPath, logger, func(h record.Header) (bool, error) {
		var err error
		switch h.Tag {
		case record.LAYER:
			p.Layer, err = decodeInt16(br, h)
		case record.DATATYPE:
			p.DataType, err = decodeInt16(br, h)
		case record.PATHTYPE:
			p.PathType, err = decodeInt16(br, h)
		case record.WIDTH:
			p.Width, err = decodeInt32(br, h)
		case record.BGNEXTN:
			p.BeginExtension, err = decodeInt32(br, h)
		case record.ENDEXTN:
			p.EndExtension, err = decodeInt32(br, h)
		case record.XY:
			p.XY, err = decodeXY(br, h)
		default:
			return false, nil
		}
		return true, err
	})
	if err != nil {
		return nil, err
	}
	p.Properties = props
	return p, nil
}

func readNode(br *binary.Reader, logger *log.Logger) (*Node, error) {
	n := &Node{}
	props, err := readBody(br, KindNode, logger, func(h record.Header) (bool, error) {
		var err error
		switch h.Tag {
		case record.LAYER:
			n.Layer, err = decodeInt16(br, h)
		case record.NODETYPE:
			n.NodeType, err = decodeInt16(br, h)
		case record.XY:
			n.XY, err = decodeXY(br, h)
		default:
			return false, nil
		}
		return true, err
	})
	if err != nil {
		return nil, err
	}
	n.Properties = props
	return n, nil
}

func readBox(br *binary.Reader, logger *log.Logger) (*Box, error) {
	b := &Box{}
	props, err := readBody(br, KindBox, logger, func(h record.Header) (bool, error) {
		var err error
		switch h.Tag {
		case record.LAYER:
			b.Layer, err = decodeInt16(br, h)
		case record.BOXTYPE:
			b.BoxType, err = decodeInt16(br, h)
		case record.XY:
			b.XY, err = decodeXY(br, h)
		default:
			return false, nil
		}
		return true, err
	})
	if err != nil {
		return nil, err
	}
	b.Properties = props
	return b, nil
}

func readText(br *binary.Reader, logger *log.Logger) (*Text, error) {
	t := &Text{}
	var xy []Point
	props, err := readBody(br, KindText, logger, func(h record.Header) (bool, error) {
		if ok, err := transformField(br, h, &t.Transform); ok {
			return true, err
		}
		var err error
		switch h.Tag {
		case record.LAYER:
			t.Layer, err = decodeInt16(br, h)
		case record.TEXTTYPE:
			t.TextType, err = decodeInt16(br, h)
		case record.PRESENTATION:
			t.Presentation, err = record.DecodeBitArray(br, h)
		case record.PATHTYPE:
			t.PathType, err = decodeInt16(br, h)
		case record.WIDTH:
			t.Width, err = decodeInt32(br, h)
		case record.XY:
			xy, err = decodeXY(br, h)
		case record.STRING:
			t.String, err = record.DecodeASCII(br, h)
		default:
			return false, nil
		}
		return true, err
	})
	if err != nil {
		return nil, err
	}
	if len(xy) != 1 {
		return nil, fmt.Errorf("%w: text element has %d points, want 1", ErrMalformedStream, len(xy))
	}
	t.Position = xy[0]
	t.Properties = props
	return t, nil
}

func readReference(br *binary.Reader, tag record.Tag, logger *log.Logger) (*Reference, error) {
	r := &Reference{}
	var hasName bool
	props, err := readBody(br, KindReference, logger, func(h record.Header) (bool, error) {
		if ok, err := transformField(br, h, &r.Transform); ok {
			return true, err
		}
		var err error
		switch h.Tag {
		case record.SNAME:
			r.Name, err = record.DecodeASCII(br, h)
			hasName = true
		case record.COLROW:
			var cr ColRow
			cr, err = decodeColRow(br, h)
			if err == nil {
				r.ColRow = &cr
			}
		case record.XY:
			r.XY, err = decodeXY(br, h)
		default:
			return false, nil
		}
		return true, err
	})
	if err != nil {
		return nil, err
	}
	if !hasName {
		return nil, fmt.Errorf("%w: %v element without SNAME", ErrMalformedStream, tag)
	}

	want := 1
	if tag == record.AREF {
		if r.ColRow == nil {
			return nil, fmt.Errorf("%w: AREF element without COLROW", ErrMalformedStream)
		}
		want = 3
	} else if r.ColRow != nil {
		return nil, fmt.Errorf("%w: COLROW in SREF element", ErrInconsistentGrammar)
	}
	if len(r.XY) != want {
		return nil, fmt.Errorf("%w: %v element has %d points, want %d", ErrMalformedStream, tag, len(r.XY), want)
	}
	r.Properties = props
	return r, nil
}
