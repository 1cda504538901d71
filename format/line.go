package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/jtype/resolved"
)

// LineEncoder writes one tab-separated record per type, supertype and
// member, for grep and awk.
type LineEncoder struct {
	w      io.Writer
	filter *MemberFilter
	typ    resolved.Type
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) WithFilter(f *MemberFilter) *LineEncoder {
	e.filter = f
	return e
}

func (e *LineEncoder) Encode(t resolved.Type) error {
	e.typ = t
	return write(e.w, e)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	t := e.typ

	fmt.Fprintf(&sb, "%s\t%s\t%s\n", typeKind(t), t.Description(), joinOrDash(typeModifiers(t)))

	super, ifaces := supertypes(t)
	if super != nil {
		fmt.Fprintf(&sb, "extends\t%s\n", super.Description())
	}
	for _, i := range ifaces {
		fmt.Fprintf(&sb, "implements\t%s\n", i.Description())
	}

	for _, f := range e.filter.Fields(t.Fields()) {
		fmt.Fprintf(&sb, "field\t%s\t%s\t%s\t%s\n",
			f.Name(),
			f.Type().Description(),
			f.Visibility(),
			joinOrDash(fieldModifiers(f)),
		)
	}

	for _, c := range e.filter.Constructors(t.Constructors()) {
		fmt.Fprintf(&sb, "constructor\t%s\t%s\n",
			parametersStr(c.Parameters()),
			c.Visibility(),
		)
	}

	for _, m := range e.filter.Methods(t.Methods()) {
		ret := "void"
		if rt := m.ReturnType(); rt != nil {
			ret = rt.Description()
		}
		fmt.Fprintf(&sb, "method\t%s\t%s\t%s\t%s\t%s\n",
			m.Name(),
			ret,
			parametersStr(m.Parameters()),
			m.Visibility(),
			joinOrDash(methodModifiers(m)),
		)
	}

	for _, d := range dropped(t) {
		fmt.Fprintf(&sb, "dropped\t%s\t%s\t%v\n", d.Kind, d.Name, d.Err)
	}

	return []byte(sb.String()), nil
}

func parametersStr(params []*resolved.Parameter) string {
	if len(params) == 0 {
		return "-"
	}
	var parts []string
	for _, p := range params {
		parts = append(parts, p.Type.Description())
	}
	return strings.Join(parts, ",")
}

func joinOrDash(parts []string) string {
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}
