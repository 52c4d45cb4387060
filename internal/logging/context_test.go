package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestContext_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Output: &buf})

	ctx := NewContext(t.Context(), logger)
	FromContext(ctx).Info("from context")

	if !strings.Contains(buf.String(), "from context") {
		t.Errorf("expected message written through context logger, got: %q", buf.String())
	}
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	if FromContext(context.Background()) != slog.Default() {
		t.Error("expected slog.Default() for context without logger")
	}
	//nolint:staticcheck // nil context is accepted deliberately
	if FromContext(nil) != slog.Default() {
		t.Error("expected slog.Default() for nil context")
	}
}

func TestMaskProductKeys(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"VK7JG-NPHTM-C97JM-9MPGT-3V66T", "****V66T"},
		{"key=W269N-WFGWX-YVC9B-4J6C9-T83GX done", "key=****83GX done"},
		{"no key here", "no key here"},
		{"ABCDE-FGHIJ", "ABCDE-FGHIJ"},
	}
	for _, tt := range tests {
		if got := MaskProductKeys(tt.in); got != tt.want {
			t.Errorf("MaskProductKeys(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestShouldMask(t *testing.T) {
	for _, key := range []string{"password", "AdministratorPassword", "ProductKey", "api_token", "client_secret"} {
		if !ShouldMask(key) {
			t.Errorf("ShouldMask(%q) = false, want true", key)
		}
	}
	for _, key := range []string{"file", "line", "component", "pass"} {
		if ShouldMask(key) {
			t.Errorf("ShouldMask(%q) = true, want false", key)
		}
	}
}

func TestNewJSONHandler_Redacts(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewJSONHandler(&buf, slog.LevelInfo))

	logger.Info("loaded", "admin_password", "P@ssw0rd!", "note", "key ABCDE-FGHIJ-KLMNO-PQRST-UV83G in file")

	out := buf.String()
	if strings.Contains(out, "P@ssw0rd!") || strings.Contains(out, "ABCDE-FGHIJ") {
		t.Errorf("secret leaked: %s", out)
	}
	if !strings.Contains(out, `"admin_password":"****0rd!"`) {
		t.Errorf("expected masked password, got %s", out)
	}
}
