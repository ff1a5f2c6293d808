package manifest

import (
	"bufio"
	"bytes"
	"strings"
)

// RawValue scans manifest text for a `key = "value"` assignment and returns
// the unquoted value. Matching is exact on the key (dotted keys such as
// `rust-version.workspace` do not match `rust-version`), and the first match
// wins when the key appears more than once. A missing key yields the empty
// string, never an error.
func RawValue(data []byte, key string) string {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok || strings.TrimSpace(k) != key {
			continue
		}
		return unquote(strings.TrimSpace(v))
	}
	return ""
}

// unquote strips TOML basic or literal string quoting from a raw value and
// drops anything after the string, including trailing comments.
func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') {
		if i := strings.IndexByte(v[1:], v[0]); i >= 0 {
			return v[1 : 1+i]
		}
		return strings.Trim(v, string(v[0]))
	}
	if i := strings.IndexByte(v, '#'); i >= 0 {
		v = strings.TrimSpace(v[:i])
	}
	return v
}
