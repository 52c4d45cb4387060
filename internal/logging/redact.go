package logging

import (
	"log/slog"
	"regexp"
	"strings"
)

// secretKeyPatterns are key substrings (matched case-insensitively) whose
// values are always masked.
var secretKeyPatterns = []string{
	"PASSWORD",
	"SECRET",
	"TOKEN",
	"CREDENTIAL",
	"PRODUCTKEY",
	"PRODUCT_KEY",
}

// productKeyRE matches a Windows product key (five groups of five).
var productKeyRE = regexp.MustCompile(`\b[A-Z0-9]{5}(-[A-Z0-9]{5}){4}\b`)

// ShouldMask reports whether values logged under key must be masked.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, p := range secretKeyPatterns {
		if strings.Contains(upper, p) {
			return true
		}
	}
	return false
}

// MaskValue masks a sensitive string, keeping the last four characters of
// values longer than four.
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// MaskProductKeys masks every product key embedded in s.
func MaskProductKeys(s string) string {
	return productKeyRE.ReplaceAllStringFunc(s, MaskValue)
}

// RedactAttr is a slog ReplaceAttr function applying the same masking as
// the terminal handler. Use it with slog.NewJSONHandler.
func RedactAttr(_ []string, a slog.Attr) slog.Attr {
	switch {
	case ShouldMask(a.Key):
		return slog.String(a.Key, MaskValue(a.Value.String()))
	case a.Value.Kind() == slog.KindString:
		return slog.String(a.Key, MaskProductKeys(a.Value.String()))
	case a.Value.Kind() == slog.KindAny:
		if err, ok := a.Value.Any().(error); ok {
			return slog.String(a.Key, MaskProductKeys(err.Error()))
		}
	}
	return a
}
