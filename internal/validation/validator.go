package validation

import (
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
)

// Rule is one field-level predicate with its human-readable failure message.
// Check receives the raw field value and whether the field was present at
// all; returning false records the message.
type Rule struct {
	Field   string
	Message string
	Check   func(value string, present bool) bool
}

// Chain is a named, ordered list of rules. Run walks every rule and collects
// every failure instead of stopping at the first, so clients see the full
// list in one response.
type Chain struct {
	Name  string
	Rules []Rule
}

func (c Chain) Run(fields map[string]string) []string {
	var failures []string
	for _, rule := range c.Rules {
		value, present := fields[rule.Field]
		if !rule.Check(value, present) {
			failures = append(failures, rule.Message)
		}
	}
	return failures
}

/* =========================
   RULE PREDICATES
========================= */

func required() func(string, bool) bool {
	return func(value string, present bool) bool {
		return present && strings.TrimSpace(value) != ""
	}
}

// lengthBetween passes absent values through; the required rule already
// reports those.
func lengthBetween(min, max int) func(string, bool) bool {
	return func(value string, present bool) bool {
		if !present || strings.TrimSpace(value) == "" {
			return true
		}
		n := len(strings.TrimSpace(value))
		return n >= min && n <= max
	}
}

func maxLength(max int) func(string, bool) bool {
	return func(value string, present bool) bool {
		if !present {
			return true
		}
		return len(strings.TrimSpace(value)) <= max
	}
}

func positiveNumber() func(string, bool) bool {
	return func(value string, present bool) bool {
		if !present || strings.TrimSpace(value) == "" {
			return true
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		return err == nil && parsed > 0
	}
}

func boolean() func(string, bool) bool {
	return func(value string, present bool) bool {
		if !present {
			return false
		}
		_, err := strconv.ParseBool(strings.TrimSpace(value))
		return err == nil
	}
}

func optional(inner func(string, bool) bool) func(string, bool) bool {
	return func(value string, present bool) bool {
		if !present || strings.TrimSpace(value) == "" {
			return true
		}
		return inner(value, present)
	}
}

func objectIDHex() func(string, bool) bool {
	return func(value string, present bool) bool {
		if !present {
			return false
		}
		trimmed := strings.TrimSpace(value)
		if len(trimmed) != 24 {
			return false
		}
		for _, r := range trimmed {
			isHex := (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
			if !isHex {
				return false
			}
		}
		return true
	}
}

/* =========================
   FILE RULES
========================= */

const maxUploadSize = 10 << 20

var allowedImageMimes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// CheckUpload applies the shared file rules: present, within 10MB, MIME in
// the image allow-list. Failures accumulate like field rule failures.
func CheckUpload(file *multipart.FileHeader, label string) []string {
	if file == nil {
		return []string{fmt.Sprintf("%s file is required", label)}
	}

	var failures []string
	if file.Size > maxUploadSize {
		failures = append(failures, "File size must be less than 10MB")
	}

	mime := strings.TrimSpace(file.Header.Get("Content-Type"))
	if idx := strings.Index(mime, ";"); idx >= 0 {
		mime = strings.TrimSpace(mime[:idx])
	}
	if _, ok := allowedImageMimes[strings.ToLower(mime)]; !ok {
		failures = append(failures, "Only image files are allowed")
	}
	return failures
}
