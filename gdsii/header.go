package gdsii

import (
	"fmt"
	"io"
	"time"

	"github.com/robert-malhotra/go-gdsii/internal/binary"
	"github.com/robert-malhotra/go-gdsii/internal/record"
)

// Version is the stream format version written by FileHeader.Write,
// whatever version the header was read with.
const Version = 600

// DefaultTime is the timestamp written when none is given.
var DefaultTime = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// FileHeader is the library prologue: HEADER, BGNLIB, LIBNAME and UNITS.
//
// Optional prologue records (LIBDIRSIZE, SRFNAME, LIBSECUR, REFLIBS, FONTS,
// ATTRTABLE, GENERATIONS, FORMAT) are skipped on read and never written.
type FileHeader struct {
	// Name is the library name.
	Name string

	// UserUnitsPerDBUnit is the size of a database unit in user units.
	UserUnitsPerDBUnit float64

	// MetersPerDBUnit is the size of a database unit in meters.
	MetersPerDBUnit float64

	// ModTime and AccTime are the last-modified and last-accessed times.
	ModTime time.Time
	AccTime time.Time
}

// NewFileHeader returns a header with default timestamps.
func NewFileHeader(name string, userUnitsPerDBUnit, metersPerDBUnit float64) FileHeader {
	return FileHeader{
		Name:               name,
		UserUnitsPerDBUnit: userUnitsPerDBUnit,
		MetersPerDBUnit:    metersPerDBUnit,
		ModTime:            DefaultTime,
		AccTime:            DefaultTime,
	}
}

// Validate checks that both unit scales are positive.
func (h FileHeader) Validate() error {
	if !(h.UserUnitsPerDBUnit > 0) || !(h.MetersPerDBUnit > 0) {
		return fmt.Errorf("%w: unit scales must be positive, got %g and %g",
			ErrInvalidHeader, h.UserUnitsPerDBUnit, h.MetersPerDBUnit)
	}
	return nil
}

// ReadHeader reads the library prologue at the current stream position.
// On success the stream is positioned just after the UNITS record.
func ReadHeader(r io.ReadSeeker) (FileHeader, error) {
	br := binary.NewReader(r)

	version, err := record.ReadInt16s(br, record.HEADER)
	if err != nil {
		return FileHeader{}, fmt.Errorf("reading version: %w", err)
	}
	if len(version) == 0 {
		return FileHeader{}, fmt.Errorf("%w: empty HEADER record", ErrMalformedStream)
	}

	times, err := record.ReadTimes(br, record.BGNLIB)
	if err != nil {
		return FileHeader{}, fmt.Errorf("reading library timestamps: %w", err)
	}
	if len(times) < 2 {
		return FileHeader{}, fmt.Errorf("%w: BGNLIB holds %d timestamps", ErrMalformedStream, len(times))
	}

	h, err := record.SkipAndRead(br, record.LIBNAME)
	if err != nil {
		return FileHeader{}, fmt.Errorf("reading library name: %w", err)
	}
	name, err := record.DecodeASCII(br, h)
	if err != nil {
		return FileHeader{}, fmt.Errorf("reading library name: %w", err)
	}

	h, err = record.SkipAndRead(br, record.UNITS)
	if err != nil {
		return FileHeader{}, fmt.Errorf("reading units: %w", err)
	}
	units, err := record.DecodeReal8s(br, h)
	if err != nil {
		return FileHeader{}, fmt.Errorf("reading units: %w", err)
	}
	if len(units) != 2 {
		return FileHeader{}, fmt.Errorf("%w: UNITS holds %d values", ErrMalformedStream, len(units))
	}

	header := FileHeader{
		Name:               name,
		UserUnitsPerDBUnit: units[0],
		MetersPerDBUnit:    units[1],
		ModTime:            times[0],
		AccTime:            times[1],
	}
	if err := header.Validate(); err != nil {
		return FileHeader{}, fmt.Errorf("%w: %w", ErrMalformedStream, err)
	}
	return header, nil
}

// Write writes the library prologue and returns the number of bytes written.
func (h FileHeader) Write(w io.Writer) (int64, error) {
	if err := h.Validate(); err != nil {
		return 0, err
	}
	rw := newRecordWriter(w)
	rw.int16s(record.HEADER, Version)
	rw.times(record.BGNLIB, h.ModTime, h.AccTime)
	rw.ascii(record.LIBNAME, h.Name)
	rw.real8s(record.UNITS, h.UserUnitsPerDBUnit, h.MetersPerDBUnit)
	return rw.result()
}

// WriteEndLib writes the ENDLIB record that closes a library.
func WriteEndLib(w io.Writer) (int64, error) {
	rw := newRecordWriter(w)
	rw.noData(record.ENDLIB)
	return rw.result()
}
