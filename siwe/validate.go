package siwe

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	reasonChainID   = "chain id must be a non-negative EIP-155 chain id"
	reasonDomain    = "domain must be an RFC 3986 authority"
	reasonNonce     = "nonce must be at least 8 alphanumeric characters"
	reasonURI       = "uri must be an RFC 3986 URI referring to the resource that is the subject of the signing"
	reasonVersion   = "version must be '1'"
	reasonScheme    = "scheme must be an RFC 3986 URI scheme"
	reasonStatement = "statement must not include line breaks"
	reasonRequestID = "request id must not include line breaks"
)

// lineBreaks are the characters that end a line of the rendered message.
const lineBreaks = "\n\r\u2028\u2029"

var (
	domainPattern = regexp.MustCompile(`^(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,63}$`)
	noncePattern  = regexp.MustCompile(`^[a-zA-Z0-9]{8,}$`)
	schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*$`)
)

// Validate checks the message fields in a fixed order and returns the first
// failure as an *InvalidFieldError. The address is not checked here; it is
// normalized separately by CreateMessage.
func (m *Message) Validate() error {
	if m.ChainID < 0 {
		return invalidField("chainId", fmt.Sprint(m.ChainID), reasonChainID)
	}
	if !domainPattern.MatchString(m.Domain) {
		return invalidField("domain", m.Domain, reasonDomain)
	}
	if !noncePattern.MatchString(m.Nonce) {
		return invalidField("nonce", m.Nonce, reasonNonce)
	}
	if !IsURI(m.URI) {
		return invalidField("uri", m.URI, reasonURI)
	}
	if m.Version != "1" {
		return invalidField("version", m.Version, reasonVersion)
	}

	if present(m.Scheme) && !schemePattern.MatchString(*m.Scheme) {
		return invalidField("scheme", *m.Scheme, reasonScheme)
	}
	if m.Statement != nil && strings.ContainsAny(*m.Statement, lineBreaks) {
		return invalidField("statement", *m.Statement, reasonStatement)
	}
	for i, resource := range m.Resources {
		if !IsURI(resource) {
			return invalidField("resources", resource, fmt.Sprintf("resource at position %d must be an RFC 3986 URI", i))
		}
	}
	if m.RequestID != nil && strings.ContainsAny(*m.RequestID, lineBreaks) {
		return invalidField("requestId", *m.RequestID, reasonRequestID)
	}

	return nil
}

var (
	uriIllegalChars = regexp.MustCompile(`(?i)[^a-z0-9:/?#\[\]@!$&'()*+,;=.\-_~%]`)
	uriBadEscape    = regexp.MustCompile(`(?i)%[^0-9a-f]`)
	uriShortEscape  = regexp.MustCompile(`(?i)%[0-9a-f](?:[^0-9a-f]|$)`)
	uriParts        = regexp.MustCompile(`^(?:([^:/?#]+):)?(?://([^/?#]*))?([^?#]*)(?:\?([^#]*))?(?:#(.*))?`)
	uriSchemePart   = regexp.MustCompile(`^[a-z][a-z0-9+\-.]*$`)
)

// IsURI reports whether value is a syntactically valid RFC 3986 URI with a
// scheme. It performs no normalization and no network access.
func IsURI(value string) bool {
	if uriIllegalChars.MatchString(value) {
		return false
	}
	if uriBadEscape.MatchString(value) || uriShortEscape.MatchString(value) {
		return false
	}

	parts := uriParts.FindStringSubmatch(value)
	if parts == nil {
		return false
	}
	scheme, authority, path := parts[1], parts[2], parts[3]

	if scheme == "" {
		return false
	}
	// With an authority the path is empty or absolute; without one it must
	// not look like an authority.
	if authority != "" {
		if path != "" && !strings.HasPrefix(path, "/") {
			return false
		}
	} else if strings.HasPrefix(path, "//") {
		return false
	}

	return uriSchemePart.MatchString(strings.ToLower(scheme))
}
