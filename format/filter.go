package format

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/dhamidi/jtype/resolved"
)

// matchTimeout bounds a single member name match.
const matchTimeout = 100 * time.Millisecond

// MemberFilter selects fields, methods and constructors by name. Patterns
// use .NET regular expression syntax, so lookarounds such as
// "^(?!get).*" work.
type MemberFilter struct {
	re *regexp2.Regexp
}

func NewMemberFilter(pattern string) (*MemberFilter, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("member pattern %q: %w", pattern, err)
	}
	re.MatchTimeout = matchTimeout
	return &MemberFilter{re: re}, nil
}

func (f *MemberFilter) String() string {
	if f == nil {
		return ""
	}
	return f.re.String()
}

// Match reports whether name is selected. A nil filter selects everything;
// a match that times out does not select.
func (f *MemberFilter) Match(name string) bool {
	if f == nil {
		return true
	}
	ok, err := f.re.MatchString(name)
	if err != nil {
		log.Warningf("member pattern %s: %v", f.re, err)
		return false
	}
	return ok
}

func (f *MemberFilter) Fields(fields []*resolved.Field) []*resolved.Field {
	var result []*resolved.Field
	for _, field := range fields {
		if f.Match(field.Name()) {
			result = append(result, field)
		}
	}
	return result
}

func (f *MemberFilter) Methods(methods []*resolved.Method) []*resolved.Method {
	var result []*resolved.Method
	for _, m := range methods {
		if f.Match(m.Name()) {
			result = append(result, m)
		}
	}
	return result
}

// Constructors matches against "<init>".
func (f *MemberFilter) Constructors(ctors []*resolved.Constructor) []*resolved.Constructor {
	var result []*resolved.Constructor
	for _, c := range ctors {
		if f.Match(c.Declaration().Name()) {
			result = append(result, c)
		}
	}
	return result
}
