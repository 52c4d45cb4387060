package unattend

// Namespace is the XML namespace Windows Setup expects on the root element.
const Namespace = "urn:schemas-microsoft-com:unattend"

// RootName is the local name of the answer file root element.
const RootName = "unattend"

// Document is a parsed answer file.
type Document struct {
	// Path is the file the document was loaded from, if any.
	Path string
	// Root is the document element. It is never nil for a parsed document.
	Root *Element
}

// HasUnattendRoot reports whether the document element is <unattend>.
func (d *Document) HasUnattendRoot() bool {
	return d != nil && d.Root != nil && d.Root.Name == RootName
}

// Settings returns the <settings> blocks directly under the document element.
func (d *Document) Settings() []*Element {
	if d == nil {
		return nil
	}
	return d.Root.ChildrenNamed("settings")
}

// SettingsForPass returns the settings blocks whose pass attribute equals pass.
func (d *Document) SettingsForPass(pass string) []*Element {
	var out []*Element
	for _, s := range d.Settings() {
		if p, _ := s.Attr("pass"); p == pass {
			out = append(out, s)
		}
	}
	return out
}

// Passes returns the pass attribute of every settings block in document order.
func (d *Document) Passes() []string {
	var out []string
	for _, s := range d.Settings() {
		if p, ok := s.Attr("pass"); ok {
			out = append(out, p)
		}
	}
	return out
}

// Components returns every <component> directly inside any settings block,
// across all passes, in document order.
func (d *Document) Components() []*Element {
	var out []*Element
	for _, s := range d.Settings() {
		out = append(out, s.ChildrenNamed("component")...)
	}
	return out
}
