package views

import (
	"bytes"
	"context"
	"html"
	"io"
	"sort"

	"github.com/a-h/templ"
)

// markup accumulates escaped HTML for a component.
type markup struct {
	buf bytes.Buffer
}

func component(build func(m *markup)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var m markup
		build(&m)
		_, err := w.Write(m.buf.Bytes())
		return err
	})
}

func (m *markup) raw(s string) {
	m.buf.WriteString(s)
}

func (m *markup) text(s string) {
	m.buf.WriteString(html.EscapeString(s))
}

// open writes a start tag. String attributes are escaped; a true bool renders
// the bare attribute name and false omits it.
func (m *markup) open(tag string, attrs templ.Attributes) {
	m.buf.WriteByte('<')
	m.buf.WriteString(tag)
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		switch v := attrs[name].(type) {
		case string:
			m.buf.WriteByte(' ')
			m.buf.WriteString(name)
			m.buf.WriteString(`="`)
			m.buf.WriteString(html.EscapeString(v))
			m.buf.WriteByte('"')
		case bool:
			if v {
				m.buf.WriteByte(' ')
				m.buf.WriteString(name)
			}
		}
	}
	m.buf.WriteByte('>')
}

func (m *markup) close(tag string) {
	m.buf.WriteString("</")
	m.buf.WriteString(tag)
	m.buf.WriteByte('>')
}

// element writes a complete element containing escaped text.
func (m *markup) element(tag string, attrs templ.Attributes, text string) {
	m.open(tag, attrs)
	m.text(text)
	m.close(tag)
}
