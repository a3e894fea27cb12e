package extract

import (
	"strings"
)

// Path decodes a raw URL and returns its path component with a leading
// "api" root segment removed. Scheme, host, query string and fragment are
// discarded. Decoding happens before splitting, so an encoded '?' or '#'
// ends the path like a literal one would. Malformed input never fails:
// undecodable escapes are kept verbatim.
func Path(rawURL string) string {
	path := splitPath(decode(rawURL))

	switch {
	case strings.HasPrefix(path, "/api/"):
		path = path[len("/api"):]
	case strings.HasPrefix(path, "api/"):
		path = path[len("api"):]
	}
	return path
}

// splitPath isolates the path of a URL: [scheme:][//authority]path[?query][#fragment]
func splitPath(s string) string {
	if i := strings.IndexByte(s, ':'); i > 0 && isScheme(s[:i]) {
		s = s[i+1:]
	}
	if strings.HasPrefix(s, "//") {
		s = s[2:]
		end := strings.IndexAny(s, "/?#")
		if end < 0 {
			return ""
		}
		s = s[end:]
	}
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s = s[:i]
	}
	return s
}

// isScheme follows RFC 3986: ALPHA *( ALPHA / DIGIT / "+" / "-" / "." )
func isScheme(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && ('0' <= c && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return s != ""
}

// decode is a lenient form of query unescaping: '+' becomes a space and
// valid %XX escapes are decoded; anything else passes through unchanged.
func decode(s string) string {
	if !strings.ContainsAny(s, "%+") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '+':
			b.WriteByte(' ')
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
