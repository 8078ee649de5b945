package interop

import (
	"regexp"
	"strings"
)

const (
	personType       = "Person"
	organizationType = "Organization"
	toolType         = "Tool"
)

// partyText is the text after "Person: " or "Organization: ". The email in
// parentheses is optional.
var partyText = regexp.MustCompile(`^(.*?)(?:\s*\(([^()]*)\))?$`)

func splitParty(s string) (name, email string) {
	m := partyText.FindStringSubmatch(strings.TrimSpace(s))
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
}

func joinParty(name, email string) string {
	if email == "" {
		return name
	}
	return name + " (" + email + ")"
}

// toolText splits "name-version" at the last hyphen.
var toolText = regexp.MustCompile(`^(.*)-(.*)$`)

func splitTool(s string) (name, version string) {
	if m := toolText.FindStringSubmatch(s); m != nil {
		return m[1], m[2]
	}
	return s, ""
}

func joinTool(name, version string) string {
	if version == "" {
		return name
	}
	return name + "-" + version
}
