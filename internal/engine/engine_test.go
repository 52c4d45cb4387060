package engine

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/unattend/internal/logging"
	"github.com/thoreinstein/unattend/internal/validator"
)

var fixedTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestEngine() *Engine {
	return New(WithClock(func() time.Time { return fixedTime }))
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	return logging.NewContext(context.Background(), logging.ForTest(t))
}

func messages(findings []validator.Finding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Message)
	}
	return out
}

func TestValidateFile_Valid(t *testing.T) {
	result := newTestEngine().ValidateFile(testContext(t), filepath.Join("testdata", "valid.xml"))

	assert.True(t, result.Valid)
	assert.True(t, result.XMLWellFormed)
	assert.True(t, result.SchemaValid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, []string{
		"XML syntax validation passed",
		"Found configuration pass: windowsPE",
		"Found configuration pass: specialize",
		"Found configuration pass: oobeSystem",
		"RDP is enabled (fDenyTSConnections=false)",
		"Found 2 first logon command(s)",
		"RDP enabling commands found",
		"Remote management commands found (WinRM/RemoteRegistry)",
	}, messages(result.Infos))
	assert.Equal(t, "PASS", result.Status())
}

func TestValidateFile_Insecure(t *testing.T) {
	result := newTestEngine().ValidateFile(testContext(t), filepath.Join("testdata", "insecure.xml"))

	assert.False(t, result.Valid)
	assert.True(t, result.XMLWellFormed)
	assert.True(t, result.SchemaValid, "root is present, only warnings from structure")

	assert.Equal(t, []string{
		"Missing processorArchitecture attribute",
		"Missing publicKeyToken attribute",
		"AutoLogon is enabled but no username is specified",
		"AutoLogon is enabled but no password is specified",
	}, messages(result.Errors))

	require.Len(t, result.Warnings, 4)
	assert.Contains(t, result.Warnings[0].Message, "Missing namespace declaration")
	assert.Equal(t, "Missing configuration pass: specialize", result.Warnings[1].Message)
	assert.Contains(t, result.Warnings[2].Message, "plain text")
	assert.Equal(t, "Windows Firewall is disabled for profile(s): Public", result.Warnings[3].Message)

	assert.Len(t, result.Infos, 3)
}

func TestValidateFile_Malformed(t *testing.T) {
	result := newTestEngine().ValidateFile(testContext(t), filepath.Join("testdata", "malformed.xml"))

	assert.False(t, result.Valid)
	assert.False(t, result.XMLWellFormed)
	assert.False(t, result.SchemaValid)
	require.Len(t, result.Errors, 1)
	assert.True(t, strings.HasPrefix(result.Errors[0].Message, "XML syntax error: "))
	assert.Positive(t, result.Errors[0].Line)
	assert.Empty(t, result.Warnings, "rules are skipped")
	assert.Empty(t, result.Infos, "rules are skipped")
}

func TestValidateFile_Missing(t *testing.T) {
	result := newTestEngine().ValidateFile(testContext(t), filepath.Join(t.TempDir(), "absent.xml"))

	assert.False(t, result.Valid)
	assert.False(t, result.XMLWellFormed)
	require.Len(t, result.Errors, 1)
	assert.True(t, strings.HasPrefix(result.Errors[0].Message, "Unable to read file: "))
	assert.Empty(t, result.Warnings)
	assert.Empty(t, result.Infos)
}

func TestValidateFile_Unreadable(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced")
	}
	path := filepath.Join(t.TempDir(), "locked.xml")
	require.NoError(t, os.WriteFile(path, []byte("<unattend/>"), 0o000))

	result := newTestEngine().ValidateFile(testContext(t), path)

	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "Unable to read file")
	assert.False(t, result.XMLWellFormed)
}

func TestValidateBytes(t *testing.T) {
	tests := []struct {
		name         string
		data         string
		wantValid    bool
		wantWellForm bool
		wantSchema   bool
		wantErrors   int
	}{
		{
			name:         "empty document",
			data:         "",
			wantValid:    false,
			wantWellForm: false,
			wantErrors:   1,
		},
		{
			name:         "whitespace only",
			data:         "  \n\t\n",
			wantValid:    false,
			wantWellForm: false,
			wantErrors:   1,
		},
		{
			name:         "wrong root",
			data:         `<answers xmlns="urn:schemas-microsoft-com:unattend"/>`,
			wantValid:    false,
			wantWellForm: true,
			wantSchema:   false,
			wantErrors:   1,
		},
		{
			name:         "bare root",
			data:         `<unattend xmlns="urn:schemas-microsoft-com:unattend"/>`,
			wantValid:    true,
			wantWellForm: true,
			wantSchema:   true,
			wantErrors:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := newTestEngine().ValidateBytes(testContext(t), "inline.xml", []byte(tt.data))

			assert.Equal(t, "inline.xml", result.File)
			assert.Equal(t, tt.wantValid, result.Valid)
			assert.Equal(t, tt.wantWellForm, result.XMLWellFormed)
			assert.Equal(t, tt.wantSchema, result.SchemaValid)
			assert.Len(t, result.Errors, tt.wantErrors)
			assert.Equal(t, len(result.Errors) == 0, result.Valid)
		})
	}
}

func TestValidate_Deterministic(t *testing.T) {
	ctx := testContext(t)
	e := newTestEngine()
	path := filepath.Join("testdata", "insecure.xml")

	first := e.ValidateFile(ctx, path)
	second := e.ValidateFile(ctx, path)

	assert.Equal(t, first, second)
}

func TestValidate_TimestampsFromClock(t *testing.T) {
	result := newTestEngine().ValidateFile(testContext(t), filepath.Join("testdata", "valid.xml"))

	for _, f := range result.Findings() {
		assert.True(t, f.Timestamp.Equal(fixedTime), "finding %q", f.Message)
	}
}

func TestValidate_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{
		Level:  logging.LevelTrace,
		Format: logging.FormatJSON,
		Output: &buf,
	})
	ctx := logging.NewContext(context.Background(), logger)

	newTestEngine().ValidateFile(ctx, filepath.Join("testdata", "valid.xml"))

	out := buf.String()
	assert.Contains(t, out, `"msg":"structure checked"`)
	assert.Contains(t, out, `"msg":"validation complete"`)
	assert.Contains(t, out, `"valid":true`)
}

func TestValidateBytes_FirstLogonOutsidePassIgnored(t *testing.T) {
	data := `<unattend xmlns="urn:schemas-microsoft-com:unattend">
  <settings pass="oobeSystem">
    <component name="Microsoft-Windows-Shell-Setup" processorArchitecture="amd64" publicKeyToken="31bf3856ad364e35">
      <UserAccounts><AdministratorPassword><Value>UABAAA==</Value><PlainText>false</PlainText></AdministratorPassword></UserAccounts>
      <FirstLogonCommands>
        <SynchronousCommand>
          <CommandLine>winrm quickconfig</CommandLine>
        </SynchronousCommand>
      </FirstLogonCommands>
    </component>
  </settings>
</unattend>`

	result := newTestEngine().ValidateBytes(testContext(t), "inline.xml", []byte(data))

	for _, f := range result.Findings() {
		assert.NotEqual(t, "FirstLogonCommands", f.Component, "unexpected finding %q", f.Message)
	}
}

func TestValidateFile_MalformedLogsOneLine(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{
		Level:  slog.LevelInfo,
		Format: logging.FormatText,
		Output: &buf,
	})
	ctx := logging.NewContext(context.Background(), logger)

	newTestEngine().ValidateFile(ctx, filepath.Join("testdata", "malformed.xml"))

	out := strings.TrimRight(buf.String(), "\n")
	assert.Contains(t, out, "answer file is not well-formed")
	assert.NotContains(t, out, "\n", "error is logged without a stack trace")
}
