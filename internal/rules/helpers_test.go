package rules

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/unattend/internal/unattend"
	"github.com/thoreinstein/unattend/internal/validator"
)

var fixedTime = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func newTestChecker() *Checker {
	return New(WithClock(func() time.Time { return fixedTime }))
}

func parse(t *testing.T, xml string) *unattend.Document {
	t.Helper()
	doc, err := unattend.ParseBytes([]byte(xml), "test.xml")
	require.NoError(t, err)
	return doc
}

// component wraps body in a component element with valid identity attributes.
func component(name, body string) string {
	return fmt.Sprintf(`<component name=%q processorArchitecture="amd64" publicKeyToken="31bf3856ad364e35">%s</component>`, name, body)
}

// document wraps components in a complete answer file with all required passes.
func document(pass string, components ...string) string {
	passes := map[string]string{"windowsPE": "", "specialize": "", "oobeSystem": ""}
	passes[pass] = strings.Join(components, "\n")
	var sb strings.Builder
	sb.WriteString(`<unattend xmlns="urn:schemas-microsoft-com:unattend">` + "\n")
	for _, p := range []string{"windowsPE", "specialize", "oobeSystem"} {
		fmt.Fprintf(&sb, "<settings pass=%q>%s</settings>\n", p, passes[p])
	}
	if _, ok := map[string]bool{"windowsPE": true, "specialize": true, "oobeSystem": true}[pass]; !ok {
		fmt.Fprintf(&sb, "<settings pass=%q>%s</settings>\n", pass, strings.Join(components, "\n"))
	}
	sb.WriteString("</unattend>")
	return sb.String()
}

func bySeverity(findings []validator.Finding, sev validator.Severity) []validator.Finding {
	var out []validator.Finding
	for _, f := range findings {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}

func messages(findings []validator.Finding) []string {
	out := make([]string, len(findings))
	for i, f := range findings {
		out[i] = f.Message
	}
	return out
}
