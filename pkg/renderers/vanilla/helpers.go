package vanilla

import (
	"strings"
	"unicode"
)

func controlID(modelName string) string {
	modelName = strings.TrimSpace(modelName)
	if modelName == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString("ls-")
	for _, r := range modelName {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}

// sanitizeClassList drops tokens reserved for the renderer's own chrome.
func sanitizeClassList(value string) string {
	var keep []string
	for _, token := range strings.Fields(value) {
		if strings.HasPrefix(token, "ls-") {
			continue
		}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}
