package gdsii

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-gdsii/internal/binary"
	"github.com/robert-malhotra/go-gdsii/internal/record"
)

func TestScanStructsOffsets(t *testing.T) {
	s := newStream(t).header().
		begin("A").end().
		begin("B").end().
		begin("C").end().
		endLib()

	r := s.reader()
	_, err := ReadHeader(r)
	require.NoError(t, err)

	ix, err := ScanStructs(r)
	require.NoError(t, err)

	// Header: HEADER 6 + BGNLIB 28 + LIBNAME 8 + UNITS 20 = 62 bytes.
	// Each structure: BGNSTR 28 + STRNAME 6 + ENDSTR 4 = 38 bytes.
	assert.Equal(t, []string{"A", "B", "C"}, ix.Names())
	assert.Equal(t, map[string]int64{"A": 96, "B": 134, "C": 172}, ix.Map())

	// The cursor sits just after ENDLIB.
	pos, err := r.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(len(s.bytes())), pos)
}

func TestScanStructsOffsetsPointAfterName(t *testing.T) {
	s := newStream(t).header().
		begin("FIRST").boundary().end().
		begin("SECOND_ODD").sref("FIRST").end().
		endLib()

	data := s.bytes()
	ix, err := ScanStructs(bytes.NewReader(data))
	require.NoError(t, err)

	var prev int64 = -1
	for _, name := range ix.Names() {
		off, ok := ix.Offset(name)
		require.True(t, ok)
		assert.Greater(t, off, prev)
		prev = off

		// The record just before the offset is this structure's STRNAME.
		padded := len(name) + len(name)%2
		nameStart := off - int64(record.HeaderSize+padded)
		br := binary.NewReader(bytes.NewReader(data))
		require.NoError(t, br.Seek(nameStart))
		got, err := record.ReadASCII(br, record.STRNAME)
		require.NoError(t, err)
		assert.Equal(t, name, got)

		// And the first element list read from it succeeds.
		elements, err := ReadElements(bytes.NewReader(data[off:]))
		require.NoError(t, err)
		assert.Len(t, elements, 1)
	}
}

func TestScanStructsDuplicate(t *testing.T) {
	s := newStream(t).header().
		begin("A").end().
		begin("X").end().
		begin("B").end().
		begin("X").end().
		endLib()

	_, err := ScanStructs(s.reader())
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = ScanHierarchy(s.reader())
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestScanStructsMissingEndLib(t *testing.T) {
	s := newStream(t).header().begin("A").end()
	_, err := ScanStructs(s.reader())
	assert.ErrorIs(t, err, ErrMalformedStream)
}

func TestScanStructsMissingName(t *testing.T) {
	s := newStream(t).header().
		times(record.BGNSTR, DefaultTime, DefaultTime).
		end().
		endLib()
	_, err := ScanStructs(s.reader())
	assert.ErrorIs(t, err, ErrMalformedStream)
}

func TestScanStructsIdempotent(t *testing.T) {
	s := newStream(t).header().
		begin("A").boundary().end().
		begin("B").sref("A").end().
		begin("C").aref("B", 2, 2).end().
		endLib()
	data := s.bytes()

	first, err := ScanStructs(bytes.NewReader(data))
	require.NoError(t, err)
	second, err := ScanStructs(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, first.Names(), second.Names())
	assert.Equal(t, first.Map(), second.Map())
}

func TestScanHierarchyCounts(t *testing.T) {
	t.Run("sref and aref", func(t *testing.T) {
		s := newStream(t).header().
			begin("CELL1").boundary().end().
			begin("CELL2").boundary().end().
			begin("TOP").sref("CELL1").aref("CELL2", 3, 4).end().
			endLib()

		h, err := ScanHierarchy(s.reader())
		require.NoError(t, err)
		assert.Equal(t, []string{"CELL1", "CELL2", "TOP"}, h.Names())
		assert.Equal(t, map[string]int{"CELL1": 1, "CELL2": 12}, h.Refs("TOP"))
		assert.Empty(t, h.Refs("CELL1"))
		assert.NotNil(t, h.Refs("CELL1"))
		assert.Nil(t, h.Refs("MISSING"))
	})

	t.Run("repeated sref", func(t *testing.T) {
		s := newStream(t).header().
			begin("CELL1").end().
			begin("TOP").sref("CELL1").boundary().sref("CELL1").end().
			endLib()

		h, err := ScanHierarchy(s.reader())
		require.NoError(t, err)
		assert.Equal(t, map[string]map[string]int{
			"CELL1": {},
			"TOP":   {"CELL1": 2},
		}, h.Map())
	})

	t.Run("reference to undefined structure", func(t *testing.T) {
		s := newStream(t).header().
			begin("TOP").sref("ELSEWHERE").end().
			endLib()

		h, err := ScanHierarchy(s.reader())
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"ELSEWHERE": 1}, h.Refs("TOP"))
		assert.Equal(t, 1, h.Len())
	})

	t.Run("transform and properties", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := NewFileHeader("LIB", 0.001, 1e-9).Write(&buf)
		require.NoError(t, err)
		_, err = WriteStruct(&buf, "LEAF", nil)
		require.NoError(t, err)
		_, err = WriteStruct(&buf, "TOP", []Element{
			&Reference{
				Name:       "LEAF",
				Transform:  &Transform{Reflect: true, Mag: 0.5, Angle: 180},
				ColRow:     &ColRow{Columns: 5, Rows: 1},
				XY:         []Point{{0, 0}, {50, 0}, {0, 10}},
				Properties: []Property{{Attr: 1, Value: "p"}},
			},
		})
		require.NoError(t, err)
		_, err = WriteEndLib(&buf)
		require.NoError(t, err)

		h, err := ScanHierarchy(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"LEAF": 5}, h.Refs("TOP"))
	})
}

func TestScanHierarchyGrammarErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func(s *stream)
	}{
		{"ENDEL outside element", func(s *stream) {
			s.begin("A").noData(record.ENDEL).end().endLib()
		}},
		{"reference without SNAME", func(s *stream) {
			s.begin("A").noData(record.SREF).int32s(record.XY, 0, 0).noData(record.ENDEL).end().endLib()
		}},
		{"SNAME in boundary", func(s *stream) {
			s.begin("A").noData(record.BOUNDARY).ascii(record.SNAME, "B").noData(record.ENDEL).end().endLib()
		}},
		{"ENDSTR inside element", func(s *stream) {
			s.begin("A").noData(record.SREF).ascii(record.SNAME, "B").end().endLib()
		}},
		{"reference outside structure", func(s *stream) {
			s.sref("B").endLib()
		}},
		{"nested BGNSTR", func(s *stream) {
			s.begin("A").begin("B").end().end().endLib()
		}},
		{"ENDSTR outside structure", func(s *stream) {
			s.end().endLib()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStream(t).header()
			tt.build(s)
			r := s.reader()
			_, err := ReadHeader(r)
			require.NoError(t, err)
			_, err = ScanHierarchy(r)
			assert.ErrorIs(t, err, ErrInconsistentGrammar)
		})
	}
}

func TestScanHierarchyRejectsEmptyTiling(t *testing.T) {
	tests := []struct {
		name       string
		cols, rows int16
	}{
		{"zero columns", 0, 5},
		{"zero rows", 4, 0},
		{"negative columns", -2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStream(t).header().
				begin("CELL").end().
				begin("TOP").aref("CELL", tt.cols, tt.rows).end().
				endLib()
			_, err := ScanHierarchy(s.reader())
			assert.ErrorIs(t, err, ErrMalformedStream)
		})
	}
}

func TestScanHierarchyTextNode(t *testing.T) {
	s := newStream(t).header().
		begin("LEAF").end().
		begin("TOP").
		noData(record.TEXTNODE).int16s(record.LAYER, 1).int32s(record.XY, 0, 0).noData(record.ENDEL).
		sref("LEAF").
		end().
		endLib()

	h, err := ScanHierarchy(s.reader())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"LEAF": 1}, h.Refs("TOP"))
}

func TestScanHierarchyMissingEndLib(t *testing.T) {
	s := newStream(t).begin("A").sref("B").end()
	_, err := ScanHierarchy(s.reader())
	assert.ErrorIs(t, err, ErrMalformedStream)
}

func TestScanHierarchyEmptyLibrary(t *testing.T) {
	s := newStream(t).header().endLib()
	h, err := ScanHierarchy(s.reader())
	require.NoError(t, err)
	assert.Zero(t, h.Len())
	assert.Empty(t, h.Top())
}
