// Package opendap builds DAP4 request URLs for subsetting a granule by variable.
package opendap

import "strings"

const (
	// dapSuffix selects the DAP4 data response, followed by the file extension.
	dapSuffix = ".dap"
	// constraintParam introduces a DAP4 constraint expression.
	constraintParam = "?dap4.ce="
)

// ParseVariables splits a comma separated variable list, dropping empty entries.
func ParseVariables(list string) []string {
	if list == "" {
		return nil
	}
	var vars []string
	for _, v := range strings.Split(list, ",") {
		if v = strings.TrimSpace(v); v != "" {
			vars = append(vars, v)
		}
	}
	return vars
}

// ConstraintExpression returns "?dap4.ce=/a;/b" for vars [a b], or "" for none.
func ConstraintExpression(vars []string) string {
	if len(vars) == 0 {
		return ""
	}
	return constraintParam + "/" + strings.Join(vars, ";/")
}

// Suffix returns what is appended to an OPeNDAP granule URL: ".dap{ext}" and the
// constraint expression, if any.
func Suffix(ext string, vars []string) string {
	return dapSuffix + ext + ConstraintExpression(vars)
}

// RequestURL appends Suffix to rawURL and percent-encodes the result.
func RequestURL(rawURL, ext string, vars []string) string {
	return Quote(rawURL + Suffix(ext, vars))
}

// Quote percent-encodes every byte of s except unreserved characters
// (A-Z a-z 0-9 _ . - ~) and the separators ':' and '/'.
func Quote(s string) string {
	const upperhex = "0123456789ABCDEF"

	n := 0
	for i := 0; i < len(s); i++ {
		if !keep(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if keep(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func keep(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '_', '.', '-', '~', ':', '/':
		return true
	}
	return false
}
