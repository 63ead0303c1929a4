package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// AllowedEmailDomains is the registration allow-list carried over from the
// previous deployment. gmail/yahoo/outlook plus the company domain reads like
// demo policy rather than something a production service would ship, but the
// behavior is preserved; widening it means editing this one slice.
var AllowedEmailDomains = []string{
	"gmail.com",
	"yahoo.com",
	"outlook.com",
	"company.com",
}

// DisposableEmailDomains rejects throwaway providers.
var DisposableEmailDomains = []string{
	"10minutemail.com",
	"temp-mail.org",
	"guerrillamail.com",
}

func isWellFormedEmail(value string) bool {
	return validate.Var(strings.TrimSpace(value), "email") == nil
}

func emailDomain(value string) string {
	parts := strings.Split(strings.TrimSpace(value), "@")
	if len(parts) != 2 {
		return ""
	}
	return strings.ToLower(parts[1])
}

func domainAllowed(value string) bool {
	domain := emailDomain(value)
	for _, allowed := range AllowedEmailDomains {
		if domain == allowed {
			return true
		}
	}
	return false
}

func domainDisposable(value string) bool {
	domain := emailDomain(value)
	for _, bad := range DisposableEmailDomains {
		if domain == bad {
			return true
		}
	}
	return false
}

// CanonicalEmail lowercases and applies provider-specific folding so that
// cosmetic variants of one mailbox compare equal: gmail drops dots and
// +subaddresses, outlook drops +subaddresses, yahoo drops -subaddresses.
// The canonical form is what gets stored and looked up.
func CanonicalEmail(value string) string {
	email := strings.ToLower(strings.TrimSpace(value))
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	local, domain := email[:at], email[at+1:]

	switch domain {
	case "gmail.com", "googlemail.com":
		if idx := strings.Index(local, "+"); idx >= 0 {
			local = local[:idx]
		}
		local = strings.ReplaceAll(local, ".", "")
	case "outlook.com", "hotmail.com", "live.com":
		if idx := strings.Index(local, "+"); idx >= 0 {
			local = local[:idx]
		}
	case "yahoo.com":
		if idx := strings.Index(local, "-"); idx >= 0 {
			local = local[:idx]
		}
	}

	return local + "@" + domain
}
