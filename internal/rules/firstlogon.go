package rules

import (
	"strings"

	"github.com/thoreinstein/unattend/internal/unattend"
	"github.com/thoreinstein/unattend/internal/validator"
)

const firstLogonComponent = "FirstLogonCommands"

// CheckFirstLogonCommands reports on first logon commands. It only ever emits infos.
func (c *Checker) CheckFirstLogonCommands(doc *unattend.Document) []validator.Finding {
	commands := firstLogonCommands(doc)
	if len(commands) == 0 {
		return nil
	}

	out := []validator.Finding{
		c.infof(firstLogonComponent, commands[0], "Found %d first logon command(s)", len(commands)),
	}

	var rdp, remote *unattend.Element
	for _, cmd := range commands {
		line := cmd.ChildText("CommandLine")
		if rdp == nil && strings.Contains(line, "fDenyTSConnections") {
			rdp = cmd
		}
		if remote == nil && (strings.Contains(line, "winrm") || strings.Contains(line, "RemoteRegistry")) {
			remote = cmd
		}
	}

	if rdp != nil {
		out = append(out, c.infof(firstLogonComponent, rdp, "RDP enabling commands found"))
	}
	if remote != nil {
		out = append(out, c.infof(firstLogonComponent, remote, "Remote management commands found (WinRM/RemoteRegistry)"))
	}

	return out
}

// firstLogonCommands collects SynchronousCommand entries, in document
// order, from settings blocks with pass="firstLogonCommands". Commands
// placed elsewhere, such as under oobeSystem Shell-Setup, are not counted.
func firstLogonCommands(doc *unattend.Document) []*unattend.Element {
	var out []*unattend.Element
	for _, settings := range doc.SettingsForPass("firstLogonCommands") {
		out = append(out, settings.FindAll("SynchronousCommand")...)
	}
	return out
}
