package gdsii

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/robert-malhotra/go-gdsii/internal/binary"
)

// File represents an open GDSII file.
//
// Every read operation uses its own cursor over the underlying file, so a
// File may be shared between goroutines.
type File struct {
	path   string
	file   *os.File
	size   int64
	header FileHeader
	logger *log.Logger

	// dataStart is the offset of the first record after UNITS.
	dataStart int64

	mu        sync.Mutex
	closed    bool
	index     *Index
	hierarchy *Hierarchy
}

// Open opens a GDSII file for reading and reads its header.
func Open(path string, opts ...FileOption) (*File, error) {
	o := defaultFileOptions()
	for _, opt := range opts {
		opt(o)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat file: %w", err)
	}

	gf := &File{
		path:   path,
		file:   f,
		size:   info.Size(),
		logger: o.logger,
	}

	sr := gf.section()
	header, err := ReadHeader(sr)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("reading header: %w", err)
	}
	pos, err := sr.Seek(0, io.SeekCurrent)
	if err != nil {
		f.Close()
		return nil, err
	}
	gf.header = header
	gf.dataStart = pos

	gf.logger.Debug("opened library", "path", path, "library", header.Name, "size", gf.size)
	return gf, nil
}

// Close closes the file. Closing twice is a no-op.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	return f.file.Close()
}

// Path returns the file path.
func (f *File) Path() string {
	return f.path
}

// Size returns the file size in bytes.
func (f *File) Size() int64 {
	return f.size
}

// Header returns the library header.
func (f *File) Header() FileHeader {
	return f.header
}

// section returns a fresh cursor over the whole file.
func (f *File) section() *io.SectionReader {
	return io.NewSectionReader(f.file, 0, f.size)
}

// data returns a fresh reader positioned after the header.
func (f *File) data() (*binary.Reader, error) {
	br := binary.NewReader(f.section())
	if err := br.Seek(f.dataStart); err != nil {
		return nil, err
	}
	return br, nil
}

// Index returns the structure index, building it on first use.
func (f *File) Index() (*Index, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, ErrClosed
	}
	if f.index != nil {
		return f.index, nil
	}

	br, err := f.data()
	if err != nil {
		return nil, err
	}
	ix, err := scanStructs(br, f.logger)
	if err != nil {
		return nil, fmt.Errorf("indexing structures: %w", err)
	}
	f.index = ix
	return ix, nil
}

// Hierarchy returns the reference hierarchy, scanning the file on first use.
func (f *File) Hierarchy() (*Hierarchy, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, ErrClosed
	}
	if f.hierarchy != nil {
		return f.hierarchy, nil
	}

	br, err := f.data()
	if err != nil {
		return nil, err
	}
	h, err := scanHierarchy(br, f.logger)
	if err != nil {
		return nil, fmt.Errorf("scanning hierarchy: %w", err)
	}
	f.hierarchy = h
	return h, nil
}

func (f *File) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// ReadStruct reads the named structure using the index.
func (f *File) ReadStruct(name string) (Structure, error) {
	ix, err := f.Index()
	if err != nil {
		return Structure{}, err
	}
	start, ok := ix.start(name)
	if !ok {
		return Structure{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	br := binary.NewReader(f.section())
	if err := br.Seek(start); err != nil {
		return Structure{}, err
	}
	s, found, err := tryReadStruct(br, f.logger)
	if err != nil {
		return Structure{}, err
	}
	if !found || s.Name != name {
		return Structure{}, fmt.Errorf("%w: index entry for %q does not point at BGNSTR", ErrMalformedStream, name)
	}
	return s, nil
}

// Elements reads the element list of the named structure, seeking
// directly to the offset recorded in the index.
func (f *File) Elements(name string) ([]Element, error) {
	ix, err := f.Index()
	if err != nil {
		return nil, err
	}
	offset, ok := ix.Offset(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	br := binary.NewReader(f.section())
	if err := br.Seek(offset); err != nil {
		return nil, err
	}
	elements, err := readElements(br, f.logger)
	if err != nil {
		return nil, fmt.Errorf("reading structure %q: %w", name, err)
	}
	return elements, nil
}

// Structures calls fn for every structure in stream order. Returning
// ErrStopWalk from fn ends the iteration without error; any other error
// is returned as is.
func (f *File) Structures(fn func(Structure) error) error {
	if f.isClosed() {
		return ErrClosed
	}
	br, err := f.data()
	if err != nil {
		return err
	}
	for {
		s, found, err := tryReadStruct(br, f.logger)
		if err != nil {
			return err
		}
		if !found {
			return nil
		}
		if err := fn(s); err != nil {
			if errors.Is(err, ErrStopWalk) {
				return nil
			}
			return err
		}
	}
}
