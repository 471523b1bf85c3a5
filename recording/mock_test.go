package recording

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gogpu/cursor"
)

// mockBackend logs every call it receives, one line per call.
type mockBackend struct {
	name     string
	events   []string
	beginErr error
	out      bytes.Buffer
}

func newMockBackend(name string) *mockBackend {
	return &mockBackend{name: name}
}

func (b *mockBackend) Begin(_ *Recording) error {
	b.events = b.events[:0]
	b.out.Reset()
	if b.beginErr != nil {
		return b.beginErr
	}
	b.events = append(b.events, "begin")
	return nil
}

func (b *mockBackend) BeginPath(p *cursor.Path) error {
	b.events = append(b.events, fmt.Sprintf("path %d", p.Len()))
	return nil
}

func (b *mockBackend) Line(start, end cursor.TimedPosition) {
	b.events = append(b.events, fmt.Sprintf("line %g,%g %g,%g", start.X, start.Y, end.X, end.Y))
}

func (b *mockBackend) EndPath(_ *cursor.Path) error {
	b.events = append(b.events, "endpath")
	return nil
}

func (b *mockBackend) Box(bb cursor.BoundingBox) {
	b.events = append(b.events, "box "+bb.String())
}

func (b *mockBackend) End() error {
	b.events = append(b.events, "end")
	for _, e := range b.events {
		b.out.WriteString(e)
		b.out.WriteByte('\n')
	}
	return nil
}

func (b *mockBackend) Extension() string { return ".mock" }

func (b *mockBackend) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.out.Bytes())
	return int64(n), err
}

func line(pts ...float64) *cursor.Path {
	p := &cursor.Path{}
	for i := 0; i+1 < len(pts); i += 2 {
		p.Add(pts[i], pts[i+1], float64(i/2))
	}
	return p
}

func collection(paths ...*cursor.Path) *cursor.PathCollection {
	pc := cursor.NewPathCollection(cursor.WithTimestamp(1))
	for _, p := range paths {
		pc.Add(p)
	}
	return pc
}
