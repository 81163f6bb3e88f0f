package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"
)

var (
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)
	idnaProfile  = idna.Lookup
)

const defaultPhoneRegion = "IN"

// normalizeEmail lowercases the address and converts its domain to ASCII.
func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return "", ValidationError{Message: "invalid email address"}
	}

	asciiDomain, err := idnaProfile.ToASCII(domain)
	if err != nil || asciiDomain == "" || !isDomainValid(asciiDomain) {
		return "", ValidationError{Message: "invalid email domain"}
	}

	email = local + "@" + asciiDomain
	if !emailPattern.MatchString(email) {
		return "", ValidationError{Message: "invalid email address"}
	}
	return email, nil
}

// normalizeContactNumber returns the E.164 form of raw or a ValidationError.
func normalizeContactNumber(raw, region string) (string, error) {
	normalized := normalizePhone(raw, region)
	if normalized == "" {
		return "", ValidationError{Message: fmt.Sprintf("invalid phone number %q", strings.TrimSpace(raw))}
	}
	return normalized, nil
}

func normalizePhone(raw, region string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if region == "" {
		region = defaultPhoneRegion
	}
	number, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return ""
	}
	if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumber(number) {
		return ""
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

func isDomainValid(domain string) bool {
	if strings.Count(domain, ".") == 0 {
		return false
	}
	parts := strings.Split(domain, ".")
	for _, part := range parts {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}
