package gdsii

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/robert-malhotra/go-gdsii/internal/binary"
	"github.com/robert-malhotra/go-gdsii/internal/record"
)

// Structure is a named cell: a list of elements between BGNSTR and ENDSTR.
type Structure struct {
	Name         string
	CreationTime time.Time
	ModTime      time.Time
	Elements     []Element
}

// TryReadStruct skips forward to the next BGNSTR and reads that structure.
//
// It returns found == false and a nil error when the stream ends cleanly or
// ENDLIB is reached first. A structure that is cut short is an error.
func TryReadStruct(r io.ReadSeeker) (s Structure, found bool, err error) {
	return tryReadStruct(binary.NewReader(r), discardLogger())
}

func tryReadStruct(br *binary.Reader, logger *log.Logger) (Structure, bool, error) {
	h, found, err := record.SkipTo(br, record.BGNSTR)
	if err != nil || !found {
		return Structure{}, false, err
	}

	times, err := record.DecodeTimes(br, h)
	if err != nil {
		return Structure{}, false, fmt.Errorf("reading structure timestamps: %w", err)
	}
	if len(times) < 2 {
		return Structure{}, false, fmt.Errorf("%w: BGNSTR holds %d timestamps", ErrMalformedStream, len(times))
	}

	name, err := record.ReadASCII(br, record.STRNAME)
	if err != nil {
		return Structure{}, false, fmt.Errorf("reading structure name: %w", err)
	}

	elements, err := readElements(br, logger)
	if err != nil {
		return Structure{}, false, fmt.Errorf("reading structure %q: %w", name, err)
	}

	return Structure{
		Name:         name,
		CreationTime: times[0],
		ModTime:      times[1],
		Elements:     elements,
	}, true, nil
}

// ReadElements reads elements from the current position, which must be
// just after a STRNAME record, through the closing ENDSTR. Elements are
// returned in stream order. Records that are not elements are skipped.
func ReadElements(r io.ReadSeeker) ([]Element, error) {
	return readElements(binary.NewReader(r), discardLogger())
}

func readElements(br *binary.Reader, logger *log.Logger) ([]Element, error) {
	var elements []Element
	for {
		h, err := record.ReadHeaderStrict(br)
		if err != nil {
			return nil, err
		}

		switch {
		case h.Tag == record.ENDSTR:
			if err := record.DecodeNoData(br, h); err != nil {
				return nil, err
			}
			return elements, nil

		case isElementStart(h.Tag):
			if err := record.DecodeNoData(br, h); err != nil {
				return nil, err
			}
			e, err := readElement(br, h.Tag, logger)
			if err != nil {
				return nil, err
			}
			elements = append(elements, e)

		case h.Tag == record.TEXTNODE:
			if err := record.DecodeNoData(br, h); err != nil {
				return nil, err
			}
			if err := skipElement(br, h.Tag, logger); err != nil {
				return nil, err
			}

		case h.Tag == record.ENDLIB:
			return nil, fmt.Errorf("%w: ENDLIB before ENDSTR", ErrMalformedStream)

		case h.Tag == record.BGNSTR, h.Tag == record.ENDEL:
			return nil, fmt.Errorf("%w: unexpected %v in element list", ErrInconsistentGrammar, h.Tag)

		default:
			logger.Debug("skipping record", "tag", h.Tag, "size", h.Size)
			if err := record.Skip(br, h); err != nil {
				return nil, err
			}
		}
	}
}

// WriteStruct writes BGNSTR, STRNAME, the elements in order and ENDSTR,
// and returns the number of bytes written.
func WriteStruct(w io.Writer, name string, elements []Element, opts ...StructOption) (int64, error) {
	o := defaultStructOptions()
	for _, opt := range opts {
		opt(o)
	}

	rw := newRecordWriter(w)
	rw.times(record.BGNSTR, o.creationTime, o.modTime)
	rw.ascii(record.STRNAME, name)
	for i, e := range elements {
		if e == nil {
			return rw.n, fmt.Errorf("writing structure %q: element %d is nil", name, i)
		}
		e.writeTo(rw)
	}
	rw.noData(record.ENDSTR)

	n, err := rw.result()
	if err != nil {
		return n, fmt.Errorf("writing structure %q: %w", name, err)
	}
	return n, nil
}
