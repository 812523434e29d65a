package runsettings

import "strings"

// BuildElementListReplacement renders one <elementName>value</elementName>
// node per distinct value, in first-occurrence order, with no separators.
// A nil or empty values slice yields "".
func BuildElementListReplacement(elementName string, values []string) string {
	if len(values) == 0 {
		return ""
	}

	seen := make(map[string]struct{}, len(values))
	var b strings.Builder
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}

		b.WriteByte('<')
		b.WriteString(elementName)
		b.WriteByte('>')
		b.WriteString(v)
		b.WriteString("</")
		b.WriteString(elementName)
		b.WriteByte('>')
	}
	return b.String()
}
