package rules

import (
	"strings"

	"github.com/thoreinstein/unattend/internal/unattend"
	"github.com/thoreinstein/unattend/internal/validator"
)

// Component names with dedicated rules.
const (
	ShellSetupComponent = "Microsoft-Windows-Shell-Setup"
	RDPComponent        = "Microsoft-Windows-TerminalServices-LocalSessionManager"
	FirewallComponent   = "Networking-MPSSVC-Svc"
)

// ComponentKind is the closed set of components that receive specific checks.
type ComponentKind int

const (
	// KindOther receives only the generic attribute checks.
	KindOther ComponentKind = iota
	// KindShellSetup is Microsoft-Windows-Shell-Setup.
	KindShellSetup
	// KindRDP is Microsoft-Windows-TerminalServices-LocalSessionManager.
	KindRDP
	// KindFirewall is Networking-MPSSVC-Svc.
	KindFirewall
)

// KindOf maps a component name to its kind by exact, case-sensitive match.
func KindOf(name string) ComponentKind {
	switch name {
	case ShellSetupComponent:
		return KindShellSetup
	case RDPComponent:
		return KindRDP
	case FirewallComponent:
		return KindFirewall
	default:
		return KindOther
	}
}

func (k ComponentKind) String() string {
	switch k {
	case KindShellSetup:
		return "shell-setup"
	case KindRDP:
		return "rdp"
	case KindFirewall:
		return "firewall"
	default:
		return "other"
	}
}

const unnamedComponent = "(unnamed component)"

// CheckComponents validates every component in every pass: identity
// attributes first, then the component-specific rule when there is one.
func (c *Checker) CheckComponents(doc *unattend.Document) []validator.Finding {
	var out []validator.Finding

	for _, comp := range doc.Components() {
		name, _ := comp.Attr("name")
		label := name
		if label == "" {
			label = unnamedComponent
		}

		if v, _ := comp.Attr("processorArchitecture"); v == "" {
			out = append(out, c.errorf(label, comp, "Missing processorArchitecture attribute"))
		}
		if v, _ := comp.Attr("publicKeyToken"); v == "" {
			out = append(out, c.errorf(label, comp, "Missing publicKeyToken attribute"))
		}

		switch KindOf(name) {
		case KindShellSetup:
			out = append(out, c.checkShellSetup(comp)...)
		case KindRDP:
			out = append(out, c.checkRDP(comp)...)
		case KindFirewall:
			out = append(out, c.checkFirewall(comp)...)
		case KindOther:
		}
	}

	return out
}

func (c *Checker) checkShellSetup(comp *unattend.Element) []validator.Finding {
	var out []validator.Finding

	admin := comp.Find("AdministratorPassword")
	switch {
	case admin == nil:
		out = append(out, c.warnf(ShellSetupComponent, comp, "No administrator password configured"))
	case admin.ChildText("Value") == "":
		out = append(out, c.errorf(ShellSetupComponent, admin, "Administrator password is empty"))
	case admin.ChildText("PlainText") == "true":
		out = append(out, c.warnf(ShellSetupComponent, admin,
			"Administrator password is stored in plain text; consider encoding it"))
	}

	auto := comp.Find("AutoLogon")
	if auto == nil || auto.ChildText("Enabled") != "true" {
		return out
	}
	if auto.Child("Username").IsBlank() {
		out = append(out, c.errorf(ShellSetupComponent, auto, "AutoLogon is enabled but no username is specified"))
	}
	if auto.Child("Password").IsBlank() {
		out = append(out, c.errorf(ShellSetupComponent, auto, "AutoLogon is enabled but no password is specified"))
	}

	return out
}

func (c *Checker) checkRDP(comp *unattend.Element) []validator.Finding {
	flag := comp.Child("fDenyTSConnections")
	if value := flag.Text(); value == "false" {
		return []validator.Finding{c.infof(RDPComponent, flag, "RDP is enabled (fDenyTSConnections=false)")}
	}
	if flag == nil {
		return []validator.Finding{c.warnf(RDPComponent, comp, "RDP may be disabled: fDenyTSConnections is not set")}
	}
	return []validator.Finding{c.warnf(RDPComponent, flag, "RDP may be disabled (fDenyTSConnections=%s)", flag.Text())}
}

// firewallProfiles are the per-profile switches of Networking-MPSSVC-Svc.
var firewallProfiles = []struct {
	element string
	profile string
}{
	{"DomainProfile_EnableFirewall", "Domain"},
	{"PrivateProfile_EnableFirewall", "Private"},
	{"PublicProfile_EnableFirewall", "Public"},
}

// checkFirewall emits a single warning naming every profile whose switch is
// "false". The finding points at the first disabled switch.
func (c *Checker) checkFirewall(comp *unattend.Element) []validator.Finding {
	var disabled []string
	var first *unattend.Element
	for _, p := range firewallProfiles {
		flag := comp.Child(p.element)
		if flag.Text() != "false" {
			continue
		}
		if first == nil {
			first = flag
		}
		disabled = append(disabled, p.profile)
	}
	if len(disabled) == 0 {
		return nil
	}
	return []validator.Finding{c.warnf(FirewallComponent, first,
		"Windows Firewall is disabled for profile(s): %s", strings.Join(disabled, ", "))}
}
