package rules

import (
	"slices"

	"github.com/thoreinstein/unattend/internal/unattend"
	"github.com/thoreinstein/unattend/internal/validator"
)

// CheckStructure verifies the root element, its namespace and the required passes.
// Namespace and pass problems are warnings; Setup may still accept the file.
func (c *Checker) CheckStructure(doc *unattend.Document) []validator.Finding {
	var out []validator.Finding

	if !doc.HasUnattendRoot() {
		found := ""
		var root *unattend.Element
		if doc != nil && doc.Root != nil {
			root = doc.Root
			found = root.Name
		}
		out = append(out, c.errorf(unattend.RootName, root,
			"Missing root element: expected <%s>, found <%s>", unattend.RootName, found))
	} else {
		root := doc.Root
		switch root.Space {
		case unattend.Namespace:
		case "":
			out = append(out, c.warnf(unattend.RootName, root,
				"Missing namespace declaration, expected %q", unattend.Namespace))
		default:
			out = append(out, c.warnf(unattend.RootName, root,
				"Unexpected namespace %q, expected %q", root.Space, unattend.Namespace))
		}
	}

	passes := doc.Passes()
	for _, pass := range RequiredPasses {
		if slices.Contains(passes, pass) {
			out = append(out, c.infof("settings", doc.SettingsForPass(pass)[0],
				"Found configuration pass: %s", pass))
			continue
		}
		out = append(out, c.warnf("settings", nil, "Missing configuration pass: %s", pass))
	}

	return out
}
