package render

import (
	"regexp"
	"sort"
	"strings"
)

// Render replaces every "{key}" placeholder in content with vars[key].
// Placeholders without a matching key are left as they are.
func Render(content string, vars map[string]string) string {
	if content == "" || len(vars) == 0 {
		return content
	}
	
	// Sorted keys keep the output stable when one value contains another placeholder.
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	
	for _, key := range keys {
		content = strings.ReplaceAll(content, "{"+key+"}", vars[key])
	}
	
	return content
}

// Message renders both subject and body with the same variables.
func Message(subject, body string, vars map[string]string) (renderedSubject string, renderedBody string) {
	return Render(subject, vars), Render(body, vars)
}

// Merge returns a new map holding global overlaid by local. Keys from local win.
func Merge(global, local map[string]string) map[string]string {
	merged := make(map[string]string, len(global)+len(local))
	for k, v := range global {
		merged[k] = v
	}
	for k, v := range local {
		merged[k] = v
	}
	
	return merged
}

var placeholderPattern = regexp.MustCompile(`\{([^{}\s]+)\}`)

// Placeholders lists the distinct "{key}" names used in content, in order of first use.
func Placeholders(content string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(content, -1)
	
	seen := make(map[string]bool, len(matches))
	keys := make([]string, 0, len(matches))
	for _, match := range matches {
		if !seen[match[1]] {
			seen[match[1]] = true
			keys = append(keys, match[1])
		}
	}
	
	return keys
}
