// Package perm parses and manipulates POSIX permission modes in the two
// forms accepted on the command line: octal numbers ("0755", "644") and
// symbolic clauses ("u=rwx,go=rx", "g-w").
package perm

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode holds the low twelve permission bits of a file mode:
// setuid, setgid, sticky, and the three rwx triplets.
type Mode uint32

// Special permission bits.
const (
	Setuid Mode = 0o4000
	Setgid Mode = 0o2000
	Sticky Mode = 0o1000
)

// Octal renders the mode the way chmod expects it, zero-padded to at
// least four digits ("0755", "1777").
func (m Mode) Octal() string {
	return fmt.Sprintf("%04o", uint32(m))
}

func (m Mode) String() string {
	return m.Octal()
}

// ParseOctal parses a numeric mode string. A leading zero is accepted but
// not required; anything above 07777 is rejected.
func ParseOctal(s string) (Mode, error) {
	n, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid octal mode %q", s)
	}
	if n > 0o7777 {
		return 0, fmt.Errorf("octal mode %q out of range", s)
	}
	return Mode(n), nil
}

// Spec is a parsed mode specification. An absolute spec resolves to the
// same bits regardless of the base mode; a symbolic spec ("g-w") is
// relative and needs a base to resolve against.
type Spec struct {
	absolute Mode
	clauses  []clause
	symbolic bool
}

type clause struct {
	who Mode // mask of bits the clause may touch
	op  byte // '+', '-' or '='
	bit Mode // permission bits within the mask
}

// Parse parses either an octal or a symbolic mode specification.
func Parse(s string) (*Spec, error) {
	if s == "" {
		return nil, fmt.Errorf("empty mode")
	}
	if s[0] >= '0' && s[0] <= '9' {
		m, err := ParseOctal(s)
		if err != nil {
			return nil, err
		}
		return &Spec{absolute: m}, nil
	}

	var clauses []clause
	for _, part := range strings.Split(s, ",") {
		c, err := parseClause(part)
		if err != nil {
			return nil, fmt.Errorf("invalid mode %q: %w", s, err)
		}
		clauses = append(clauses, c)
	}
	return &Spec{clauses: clauses, symbolic: true}, nil
}

// Symbolic reports whether the spec depends on a base mode.
func (s *Spec) Symbolic() bool {
	return s.symbolic
}

// Apply resolves the spec against base and returns the resulting bits.
// Absolute specs ignore base entirely.
func (s *Spec) Apply(base Mode) Mode {
	if !s.symbolic {
		return s.absolute
	}
	m := base
	for _, c := range s.clauses {
		bits := c.bit & c.who
		switch c.op {
		case '+':
			m |= bits
		case '-':
			m &^= bits
		case '=':
			m = (m &^ c.who) | bits
		}
	}
	return m
}

// whoMasks maps the "who" letters to the mode bits they govern. The
// special bits ride along with their triplet: setuid with u, setgid with
// g, sticky with o.
var whoMasks = map[byte]Mode{
	'u': 0o700 | Setuid,
	'g': 0o070 | Setgid,
	'o': 0o007 | Sticky,
	'a': 0o777 | Setuid | Setgid | Sticky,
}

func parseClause(s string) (clause, error) {
	var c clause

	i := 0
	for i < len(s) {
		mask, ok := whoMasks[s[i]]
		if !ok {
			break
		}
		c.who |= mask
		i++
	}
	if c.who == 0 {
		c.who = whoMasks['a']
	}

	if i >= len(s) || (s[i] != '+' && s[i] != '-' && s[i] != '=') {
		return c, fmt.Errorf("clause %q: expected one of '+', '-', '='", s)
	}
	c.op = s[i]
	i++

	for ; i < len(s); i++ {
		switch s[i] {
		case 'r':
			c.bit |= 0o444
		case 'w':
			c.bit |= 0o222
		case 'x':
			c.bit |= 0o111
		case 's':
			c.bit |= Setuid | Setgid
		case 't':
			c.bit |= Sticky
		default:
			return c, fmt.Errorf("clause %q: unknown permission %q", s, s[i])
		}
	}
	if c.op != '=' && c.bit == 0 {
		return c, fmt.Errorf("clause %q: no permissions given", s)
	}
	return c, nil
}
