package gdsii

import (
	"bufio"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// Writer writes a GDSII library to a file, one structure at a time.
type Writer struct {
	path   string
	file   *os.File
	buf    *bufio.Writer
	logger *log.Logger

	names   map[string]struct{}
	written int64
	err     error // first failed write; the stream is unusable after it
	closed  bool
}

// Create creates a new GDSII file at the given path and writes its header.
// Structures are added with WriteStruct; Close writes ENDLIB.
func Create(path string, header FileHeader, opts ...FileOption) (*Writer, error) {
	o := defaultFileOptions()
	for _, opt := range opts {
		opt(o)
	}

	if err := header.Validate(); err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}

	w := &Writer{
		path:   path,
		file:   f,
		buf:    bufio.NewWriter(f),
		logger: o.logger,
		names:  make(map[string]struct{}),
	}

	n, err := header.Write(w.buf)
	if err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("writing header: %w", err)
	}
	w.written = n

	w.logger.Debug("created library", "path", path, "library", header.Name)
	return w, nil
}

// WriteStruct appends a structure. Names must be unique within the library.
func (w *Writer) WriteStruct(s Structure) error {
	if w.closed {
		return ErrClosed
	}
	if w.err != nil {
		return w.err
	}
	if _, ok := w.names[s.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, s.Name)
	}

	n, err := WriteStruct(w.buf, s.Name, s.Elements,
		WithCreationTime(s.CreationTime), WithModTime(s.ModTime))
	w.written += n
	if err != nil {
		w.err = fmt.Errorf("library %s is incomplete: %w", w.path, err)
		return err
	}
	w.names[s.Name] = struct{}{}

	w.logger.Debug("wrote structure", "name", s.Name, "elements", len(s.Elements), "bytes", n)
	return nil
}

// Written returns the number of bytes written so far.
func (w *Writer) Written() int64 {
	return w.written
}

// Path returns the file path.
func (w *Writer) Path() string {
	return w.path
}

// Close writes ENDLIB, flushes and closes the file. Closing twice is a no-op.
// After a failed WriteStruct, Close only closes the file and returns that
// failure; no ENDLIB is appended to the partial stream.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if w.err != nil {
		w.file.Close()
		return w.err
	}

	n, err := WriteEndLib(w.buf)
	w.written += n
	if err == nil {
		err = w.buf.Flush()
	}
	if err != nil {
		w.file.Close()
		return fmt.Errorf("finishing library: %w", err)
	}
	return w.file.Close()
}
