package format

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dhamidi/jtype/resolved"
)

// TreeEncoder renders a type and its members as an indented tree for the
// terminal. Colors are only emitted when w is a color-capable terminal.
type TreeEncoder struct {
	w      io.Writer
	filter *MemberFilter
	typ    resolved.Type

	title   lipgloss.Style
	section lipgloss.Style
	muted   lipgloss.Style
	failed  lipgloss.Style
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	r := lipgloss.NewRenderer(w)
	return &TreeEncoder{
		w:       w,
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")),
		section: r.NewStyle().Foreground(lipgloss.Color("#AAAAAA")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#888888")),
		failed:  r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
	}
}

func (e *TreeEncoder) WithFilter(f *MemberFilter) *TreeEncoder {
	e.filter = f
	return e
}

func (e *TreeEncoder) Encode(t resolved.Type) error {
	e.typ = t
	return write(e.w, e)
}

type treeNode struct {
	label    string
	children []treeNode
}

func (e *TreeEncoder) MarshalText() ([]byte, error) {
	t := e.typ
	var sections []treeNode

	var hierarchy []treeNode
	super, ifaces := supertypes(t)
	if super != nil {
		hierarchy = append(hierarchy, treeNode{label: "extends " + super.SimpleDescription()})
	}
	for _, i := range ifaces {
		hierarchy = append(hierarchy, treeNode{label: "implements " + i.SimpleDescription()})
	}
	sections = appendSection(sections, e.section.Render("supertypes"), hierarchy)

	var fields []treeNode
	for _, f := range e.filter.Fields(t.Fields()) {
		fields = append(fields, treeNode{label: f.Describe()})
	}
	sections = appendSection(sections, e.section.Render("fields"), fields)

	var ctors []treeNode
	for _, c := range e.filter.Constructors(t.Constructors()) {
		ctors = append(ctors, treeNode{label: c.Describe()})
	}
	sections = appendSection(sections, e.section.Render("constructors"), ctors)

	var methods []treeNode
	for _, m := range e.filter.Methods(t.Methods()) {
		label := m.SignatureIn(t.Language())
		if m.IsStatic() {
			label += " " + e.muted.Render("static")
		}
		methods = append(methods, treeNode{label: label})
	}
	sections = appendSection(sections, e.section.Render("methods"), methods)

	var failures []treeNode
	for _, d := range dropped(t) {
		failures = append(failures, treeNode{label: e.failed.Render(d.Kind + " " + d.Name + ": " + d.Err.Error())})
	}
	sections = appendSection(sections, e.failed.Render("dropped"), failures)

	lines := []string{e.title.Render(t.Description())}
	lines = renderChildren(lines, sections, "")
	return []byte(strings.Join(lines, "\n") + "\n"), nil
}

func appendSection(sections []treeNode, label string, children []treeNode) []treeNode {
	if len(children) == 0 {
		return sections
	}
	return append(sections, treeNode{label: label, children: children})
}

func renderChildren(lines []string, nodes []treeNode, prefix string) []string {
	for i, n := range nodes {
		branch, indent := "├── ", "│   "
		if i == len(nodes)-1 {
			branch, indent = "└── ", "    "
		}
		lines = append(lines, prefix+branch+strings.ReplaceAll(n.label, "\n", " "))
		lines = renderChildren(lines, n.children, prefix+indent)
	}
	return lines
}
