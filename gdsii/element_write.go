package gdsii

import (
	"io"
	"time"

	"github.com/robert-malhotra/go-gdsii/internal/binary"
	"github.com/robert-malhotra/go-gdsii/internal/record"
)

// recordWriter emits records until the first error, which it keeps.
// Callers check result once at the end.
type recordWriter struct {
	w   *binary.Writer
	n   int64
	err error
}

func newRecordWriter(w io.Writer) *recordWriter {
	return &recordWriter{w: binary.NewWriter(w)}
}

func (rw *recordWriter) add(n int64, err error) {
	rw.n += n
	rw.err = err
}

func (rw *recordWriter) noData(tag record.Tag) {
	if rw.err == nil {
		rw.add(record.WriteNoData(rw.w, tag))
	}
}

func (rw *recordWriter) bitArray(tag record.Tag, v uint16) {
	if rw.err == nil {
		rw.add(record.WriteBitArray(rw.w, tag, v))
	}
}

func (rw *recordWriter) int16s(tag record.Tag, vals ...int16) {
	if rw.err == nil {
		rw.add(record.WriteInt16s(rw.w, tag, vals...))
	}
}

func (rw *recordWriter) int32s(tag record.Tag, vals ...int32) {
	if rw.err == nil {
		rw.add(record.WriteInt32s(rw.w, tag, vals...))
	}
}

func (rw *recordWriter) real8s(tag record.Tag, vals ...float64) {
	if rw.err == nil {
		rw.add(record.WriteReal8s(rw.w, tag, vals...))
	}
}

func (rw *recordWriter) ascii(tag record.Tag, s string) {
	if rw.err == nil {
		rw.add(record.WriteASCII(rw.w, tag, s))
	}
}

// times writes timestamps, substituting DefaultTime for zero values.
func (rw *recordWriter) times(tag record.Tag, ts ...time.Time) {
	if rw.err != nil {
		return
	}
	out := make([]time.Time, len(ts))
	for i, t := range ts {
		if t.IsZero() {
			t = DefaultTime
		}
		out[i] = t
	}
	rw.add(record.WriteTimes(rw.w, tag, out...))
}

func (rw *recordWriter) xy(pts []Point) {
	vals := make([]int32, 0, 2*len(pts))
	for _, p := range pts {
		vals = append(vals, p.X, p.Y)
	}
	rw.int32s(record.XY, vals...)
}

func (rw *recordWriter) transform(t *Transform) {
	if t == nil {
		return
	}
	rw.bitArray(record.STRANS, t.flags())
	if t.Mag != 0 {
		rw.real8s(record.MAG, t.Mag)
	}
	if t.Angle != 0 {
		rw.real8s(record.ANGLE, t.Angle)
	}
}

func (rw *recordWriter) properties(props []Property) {
	for _, p := range props {
		rw.int16s(record.PROPATTR, p.Attr)
		rw.ascii(record.PROPVALUE, p.Value)
	}
}

// endElement writes the properties and the closing ENDEL.
func (rw *recordWriter) endElement(props []Property) {
	rw.properties(props)
	rw.noData(record.ENDEL)
}

func (rw *recordWriter) result() (int64, error) {
	return rw.n, rw.err
}

func (b *Boundary) writeTo(rw *recordWriter) {
	rw.noData(record.BOUNDARY)
	rw.int16s(record.LAYER, b.Layer)
	rw.int16s(record.DATATYPE, b.DataType)
	rw.xy(b.XY)
	rw.endElement(b.Properties)
}

func (p *Path) writeTo(rw *recordWriter) {
	rw.noData(record.PATH)
	rw.int16s(record.LAYER, p.Layer)
	rw.int16s(record.DATATYPE, p.DataType)
	if p.PathType != 0 {
		rw.int16s(record.PATHTYPE, p.PathType)
	}
	if p.Width != 0 {
		rw.int32s(record.WIDTH, p.Width)
	}
	if p.BeginExtension != 0 {
		rw.int32s(record.BGNEXTN, p.BeginExtension)
	}
	if p.EndExtension != 0 {
		rw.int32s(record.ENDEXTN, p.EndExtension)
	}
	rw.xy(p.XY)
	rw.endElement(p.Properties)
}

func (n *Node) writeTo(rw *recordWriter) {
	rw.noData(record.NODE)
	rw.int16s(record.LAYER, n.Layer)
	rw.int16s(record.NODETYPE, n.NodeType)
	rw.xy(n.XY)
	rw.endElement(n.Properties)
}

func (b *Box) writeTo(rw *recordWriter) {
	rw.noData(record.BOX)
	rw.int16s(record.LAYER, b.Layer)
	rw.int16s(record.BOXTYPE, b.BoxType)
	rw.xy(b.XY)
	rw.endElement(b.Properties)
}

func (t *Text) writeTo(rw *recordWriter) {
	rw.noData(record.TEXT)
	rw.int16s(record.LAYER, t.Layer)
	rw.int16s(record.TEXTTYPE, t.TextType)
	if t.Presentation != 0 {
		rw.bitArray(record.PRESENTATION, t.Presentation)
	}
	if t.PathType != 0 {
		rw.int16s(record.PATHTYPE, t.PathType)
	}
	if t.Width != 0 {
		rw.int32s(record.WIDTH, t.Width)
	}
	rw.transform(t.Transform)
	rw.xy([]Point{t.Position})
	rw.ascii(record.STRING, t.String)
	rw.endElement(t.Properties)
}

func (r *Reference) writeTo(rw *recordWriter) {
	if r.ColRow != nil {
		rw.noData(record.AREF)
	} else {
		rw.noData(record.SREF)
	}
	rw.ascii(record.SNAME, r.Name)
	rw.transform(r.Transform)
	if r.ColRow != nil {
		rw.int16s(record.COLROW, r.ColRow.Columns, r.ColRow.Rows)
	}
	rw.xy(r.XY)
	rw.endElement(r.Properties)
}
