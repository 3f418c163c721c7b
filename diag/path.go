package diag

import (
	"strconv"
	"strings"
)

type elementKind int

const (
	elementField elementKind = iota
	elementIndex
)

// element is one step of a Path: either a named field or a numeric index.
type element struct {
	kind  elementKind
	name  string
	index int
}

// Path addresses a location inside a structured document as an ordered chain
// of field and index steps. Paths are immutable: Field and Index return a new
// Path, so diagnostics may safely share a common prefix.
type Path struct {
	elements []element
}

// Root is the empty path addressing the document itself.
var Root = Path{}

// Field appends a named field step.
func (p Path) Field(name string) Path {
	return p.append(element{kind: elementField, name: name})
}

// Index appends an array index step.
func (p Path) Index(i int) Path {
	return p.append(element{kind: elementIndex, index: i})
}

func (p Path) append(e element) Path {
	// Clone with exact capacity so divergent appends never share a backing
	// array.
	elements := make([]element, len(p.elements), len(p.elements)+1)
	copy(elements, p.elements)

	return Path{elements: append(elements, e)}
}

// IsRoot reports whether the path has no steps.
func (p Path) IsRoot() bool {
	return len(p.elements) == 0
}

// Equal compares paths step-wise. Two paths built through different call
// sequences are equal when they produce the same chain.
func (p Path) Equal(o Path) bool {
	if len(p.elements) != len(o.elements) {
		return false
	}
	for i, e := range p.elements {
		if e != o.elements[i] {
			return false
		}
	}

	return true
}

// String renders the canonical form, e.g. "item[2].text"; the empty path
// renders as "root".
func (p Path) String() string {
	if p.IsRoot() {
		return "root"
	}

	var b strings.Builder
	for i, e := range p.elements {
		switch e.kind {
		case elementField:
			if i > 0 {
				b.WriteString(".")
			}
			b.WriteString(e.name)
		case elementIndex:
			b.WriteString("[")
			b.WriteString(strconv.Itoa(e.index))
			b.WriteString("]")
		}
	}

	return b.String()
}
