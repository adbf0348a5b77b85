package gdsii

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-gdsii/internal/record"
)

func TestHeaderRoundTrip(t *testing.T) {
	want := FileHeader{
		Name:               "TESTLIB",
		UserUnitsPerDBUnit: 0.001,
		MetersPerDBUnit:    1e-9,
		ModTime:            time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC),
		AccTime:            time.Date(2024, time.March, 16, 8, 0, 5, 0, time.UTC),
	}

	var buf bytes.Buffer
	n, err := want.Write(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	r := bytes.NewReader(buf.Bytes())
	got, err := ReadHeader(r)
	require.NoError(t, err)

	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.UserUnitsPerDBUnit, got.UserUnitsPerDBUnit)
	assert.Equal(t, want.MetersPerDBUnit, got.MetersPerDBUnit)
	assert.True(t, want.ModTime.Equal(got.ModTime), "mod time: got %v", got.ModTime)
	assert.True(t, want.AccTime.Equal(got.AccTime), "acc time: got %v", got.AccTime)

	// Nothing is left after UNITS.
	_, err = r.ReadByte()
	assert.ErrorIs(t, err, io.EOF)
}

func TestHeaderWritesVersion600(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewFileHeader("LIB", 0.001, 1e-9).Write(&buf)
	require.NoError(t, err)

	// HEADER record: length 6, tag 0x0002, value 600.
	assert.Equal(t, []byte{0x00, 0x06, 0x00, 0x02, 0x02, 0x58}, buf.Bytes()[:6])
}

func TestHeaderVersionIsNotPreserved(t *testing.T) {
	s := newStream(t).
		int16s(record.HEADER, 3).
		times(record.BGNLIB, DefaultTime, DefaultTime).
		ascii(record.LIBNAME, "OLD").
		real8s(record.UNITS, 0.001, 1e-9)

	h, err := ReadHeader(s.reader())
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = h.Write(&buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x58}, buf.Bytes()[4:6])
}

func TestHeaderSkipsOptionalRecords(t *testing.T) {
	s := newStream(t).
		int16s(record.HEADER, 600).
		times(record.BGNLIB, DefaultTime, DefaultTime).
		int16s(record.LIBDIRSIZE, 10).
		ascii(record.SRFNAME, "srf").
		ascii(record.LIBNAME, "LIB").
		ascii(record.FONTS, "font0").
		int16s(record.GENERATIONS, 3).
		int16s(record.FORMAT, 0).
		real8s(record.UNITS, 0.01, 1e-8)

	h, err := ReadHeader(s.reader())
	require.NoError(t, err)
	assert.Equal(t, "LIB", h.Name)
	assert.Equal(t, 0.01, h.UserUnitsPerDBUnit)
	assert.Equal(t, 1e-8, h.MetersPerDBUnit)
}

func TestHeaderTwoDigitYear(t *testing.T) {
	s := newStream(t).
		int16s(record.HEADER, 600).
		int16s(record.BGNLIB, 99, 1, 2, 3, 4, 5, 124, 6, 7, 8, 9, 10).
		ascii(record.LIBNAME, "LIB").
		real8s(record.UNITS, 0.001, 1e-9)

	h, err := ReadHeader(s.reader())
	require.NoError(t, err)
	assert.Equal(t, 1999, h.ModTime.Year())
	assert.Equal(t, 2024, h.AccTime.Year())
}

func TestReadHeaderErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func(s *stream)
	}{
		{"empty", func(s *stream) {}},
		{"missing BGNLIB", func(s *stream) {
			s.int16s(record.HEADER, 600).ascii(record.LIBNAME, "LIB")
		}},
		{"BGNLIB first", func(s *stream) {
			s.times(record.BGNLIB, DefaultTime, DefaultTime)
		}},
		{"ENDLIB before UNITS", func(s *stream) {
			s.int16s(record.HEADER, 600).
				times(record.BGNLIB, DefaultTime, DefaultTime).
				ascii(record.LIBNAME, "LIB").
				endLib()
		}},
		{"truncated", func(s *stream) {
			s.int16s(record.HEADER, 600).
				times(record.BGNLIB, DefaultTime, DefaultTime)
		}},
		{"one timestamp", func(s *stream) {
			s.int16s(record.HEADER, 600).
				times(record.BGNLIB, DefaultTime).
				ascii(record.LIBNAME, "LIB").
				real8s(record.UNITS, 0.001, 1e-9)
		}},
		{"zero units", func(s *stream) {
			s.int16s(record.HEADER, 600).
				times(record.BGNLIB, DefaultTime, DefaultTime).
				ascii(record.LIBNAME, "LIB").
				real8s(record.UNITS, 0, 1e-9)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStream(t)
			tt.build(s)
			_, err := ReadHeader(s.reader())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedStream)
		})
	}
}

func TestReadHeaderWrongFirstRecord(t *testing.T) {
	s := newStream(t).times(record.BGNLIB, DefaultTime, DefaultTime)
	_, err := ReadHeader(s.reader())
	assert.True(t, errors.Is(err, record.ErrUnexpectedTag))
}

func TestHeaderWriteRejectsInvalidUnits(t *testing.T) {
	tests := []struct {
		name       string
		user, mtrs float64
	}{
		{"zero user", 0, 1e-9},
		{"negative meters", 0.001, -1e-9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			n, err := NewFileHeader("LIB", tt.user, tt.mtrs).Write(&buf)
			assert.ErrorIs(t, err, ErrInvalidHeader)
			assert.Zero(t, n)
			assert.Zero(t, buf.Len())
		})
	}
}

func TestHeaderZeroTimesWriteDefault(t *testing.T) {
	var buf bytes.Buffer
	_, err := FileHeader{Name: "LIB", UserUnitsPerDBUnit: 1, MetersPerDBUnit: 1}.Write(&buf)
	require.NoError(t, err)

	h, err := ReadHeader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.True(t, h.ModTime.Equal(DefaultTime))
	assert.True(t, h.AccTime.Equal(DefaultTime))
}
