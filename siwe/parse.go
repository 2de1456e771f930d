package siwe

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/relvacode/iso8601"
	"github.com/rs/zerolog"
)

const resourcesMarker = "Resources:"

var (
	originSchemePattern = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9+.\-]*)://(.*)$`)
	digitsPattern       = regexp.MustCompile(`^[0-9]+$`)
	alnumPattern        = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
)

// ParseMessage extracts every field the text structurally yields. It never
// fails: malformed or truncated input produces a record with fewer fields.
// Values that match the layout but cannot be coerced (an unparsable
// timestamp, an overflowing chain id) are omitted and logged at debug level.
func ParseMessage(text string, opts ...Option) *ParsedMessage {
	o := newOptions(opts...)
	lines := strings.Split(text, "\n")

	msg := &ParsedMessage{}
	parsePrefix(lines, msg)
	if end := parseSuffix(lines, msg, o.logger); end >= 0 {
		msg.Resources = parseResources(lines[end:])
	}

	return msg
}

// parsePrefix reads the header, address and optional statement, all anchored
// at the start of the text.
func parsePrefix(lines []string, msg *ParsedMessage) {
	// header, address and the blank line must be followed by more text
	if len(lines) < 4 {
		return
	}

	origin, ok := strings.CutSuffix(lines[0], headerSuffix)
	if !ok || strings.Contains(origin, " ") || !isLineText(origin) {
		return
	}
	if !addressPattern.MatchString(lines[1]) || lines[2] != "" {
		return
	}

	domain := origin
	if m := originSchemePattern.FindStringSubmatch(origin); m != nil {
		msg.Scheme = Ptr(m[1])
		domain = m[2]
	}
	msg.Domain = Ptr(domain)
	msg.Address = Ptr(lines[1])

	if len(lines) >= 6 && lines[4] == "" && lines[3] != "" && isLineText(lines[3]) {
		msg.Statement = Ptr(lines[3])
	}
}

// parseSuffix finds the first "URI: " occurrence that starts the fixed run
// of URI, Version, Chain ID, Nonce and Issued At lines, then picks up the
// optional trailing lines in order. It returns the index of the first line
// after the suffix, or -1 when no suffix was found.
func parseSuffix(lines []string, msg *ParsedMessage, logger zerolog.Logger) int {
	for i, line := range lines {
		idx := strings.Index(line, "URI: ")
		if idx < 0 || i+4 >= len(lines) {
			continue
		}
		uri := line[idx+len("URI: "):]
		if !isValue(uri) {
			continue
		}

		version, ok1 := lineValue(lines[i+1], "Version: ")
		chainID, ok2 := lineValue(lines[i+2], "Chain ID: ")
		nonce, ok3 := lineValue(lines[i+3], "Nonce: ")
		issuedAt, ok4 := lineValue(lines[i+4], "Issued At: ")
		if !ok1 || !ok2 || !ok3 || !ok4 || !digitsPattern.MatchString(chainID) || !alnumPattern.MatchString(nonce) {
			continue
		}

		msg.URI = Ptr(uri)
		msg.Version = Ptr(version)
		msg.Nonce = Ptr(nonce)
		if id, err := strconv.ParseInt(chainID, 10, 64); err == nil {
			msg.ChainID = Ptr(id)
		} else {
			logger.Debug().Str("field", "chainId").Str("value", chainID).Err(err).Msg("siwe field dropped")
		}
		msg.IssuedAt = parseTime("issuedAt", issuedAt, logger)

		next := i + 5
		if next < len(lines) {
			if v, ok := lineValue(lines[next], "Expiration Time: "); ok {
				msg.ExpirationTime = parseTime("expirationTime", v, logger)
				next++
			}
		}
		if next < len(lines) {
			if v, ok := lineValue(lines[next], "Not Before: "); ok {
				msg.NotBefore = parseTime("notBefore", v, logger)
				next++
			}
		}
		if next < len(lines) {
			if v, ok := lineValue(lines[next], "Request ID: "); ok {
				msg.RequestID = Ptr(v)
				next++
			}
		}
		return next
	}
	return -1
}

// parseResources reads the resources block, which must start on the first
// line of lines with a marker line of its own. A marker with no entries
// yields an empty, non-nil slice.
func parseResources(lines []string) []string {
	if len(lines) == 0 || lines[0] != resourcesMarker {
		return nil
	}

	resources := []string{}
	for _, line := range lines[1:] {
		resource, ok := strings.CutPrefix(line, "- ")
		if !ok {
			break
		}
		resources = append(resources, resource)
	}
	return resources
}

func parseTime(field, value string, logger zerolog.Logger) *time.Time {
	t, err := iso8601.ParseString(value)
	if err != nil {
		logger.Debug().Str("field", field).Str("value", value).Err(err).Msg("siwe field dropped")
		return nil
	}
	return &t
}

func lineValue(line, key string) (string, bool) {
	v, ok := strings.CutPrefix(line, key)
	if !ok || !isValue(v) {
		return "", false
	}
	return v, true
}

func isValue(s string) bool {
	return s != "" && isLineText(s)
}

// isLineText rejects the line terminators other than '\n' that the layout
// does not allow inside a value.
func isLineText(s string) bool {
	return !strings.ContainsAny(s, "\r\u2028\u2029")
}
