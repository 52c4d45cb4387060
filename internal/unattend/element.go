package unattend

import "strings"

// Attr is an element attribute keyed by local name.
type Attr struct {
	Space string
	Name  string
	Value string
}

// Element is a node of the parsed answer file.
type Element struct {
	Name     string
	Space    string
	Attrs    []Attr
	Children []*Element
	Line     int

	text strings.Builder
}

// Attr returns the value of the first attribute with the given local name.
// Namespace declarations are never matched.
func (e *Element) Attr(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Text returns the element's own character data with surrounding whitespace removed.
func (e *Element) Text() string {
	if e == nil {
		return ""
	}
	return strings.TrimSpace(e.text.String())
}

// Child returns the first direct child with the given local name, or nil.
func (e *Element) Child(name string) *Element {
	if e == nil {
		return nil
	}
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns all direct children with the given local name.
func (e *Element) ChildrenNamed(name string) []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// ChildText returns the text of the first direct child named name.
func (e *Element) ChildText(name string) string {
	return e.Child(name).Text()
}

// Find returns the first descendant (depth first, document order) named name.
func (e *Element) Find(name string) *Element {
	if e == nil {
		return nil
	}
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant named name in document order.
func (e *Element) FindAll(name string) []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
		out = append(out, c.FindAll(name)...)
	}
	return out
}

// IsBlank reports whether the element is absent, or has neither child
// elements nor text. <Password/> is blank, <Password><Value/></Password> is not.
func (e *Element) IsBlank() bool {
	return e == nil || (len(e.Children) == 0 && e.Text() == "")
}
