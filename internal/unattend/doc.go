// Package unattend loads Windows answer files (unattend.xml) into a small,
// read-only element tree that validation rules can query.
//
// The tree keeps what the rules need and nothing else: local names, the
// resolved namespace URI, attributes by local name, trimmed text and the
// source line of every element.
//
//	doc, err := unattend.Load("autounattend.xml")
//	if err != nil {
//		var perr *unattend.ParseError
//		if errors.As(err, &perr) {
//			// malformed XML, perr.Line points at the problem
//		}
//		return err
//	}
//	for _, c := range doc.Components() {
//		name, _ := c.Attr("name")
//		...
//	}
package unattend
