package domain

import (
	"strings"

	"focus/internal/platform/textblock"
)

const (
	BlockStart = "# focus:blocked:start"
	BlockEnd   = "# focus:blocked:end"

	legacyHeader = "# Focus app blocked sites"
	legacyTag    = "# Focus"
)

var loopbacks = []string{"127.0.0.1", "::1"}

// ExtractDomain reduces a site label or URL to its bare host name.
func ExtractDomain(label string) string {
	cleaned := strings.ToLower(strings.TrimSpace(label))
	switch {
	case strings.HasPrefix(cleaned, "https://"):
		cleaned = strings.TrimPrefix(cleaned, "https://")
	case strings.HasPrefix(cleaned, "http://"):
		cleaned = strings.TrimPrefix(cleaned, "http://")
	}
	cleaned = strings.TrimPrefix(cleaned, "www.")
	if i := strings.IndexByte(cleaned, '/'); i >= 0 {
		cleaned = cleaned[:i]
	}
	if i := strings.IndexByte(cleaned, ':'); i >= 0 {
		cleaned = cleaned[:i]
	}
	return cleaned
}

// Domains extracts unique domains in first-seen order. Labels that yield no
// domain are returned separately.
func Domains(labels []string) ([]string, []string) {
	seen := map[string]struct{}{}
	domains := []string{}
	rejected := []string{}
	for _, label := range labels {
		domain := ExtractDomain(label)
		if domain == "" || strings.ContainsAny(domain, " \t#") {
			rejected = append(rejected, label)
			continue
		}
		if _, ok := seen[domain]; ok {
			continue
		}
		seen[domain] = struct{}{}
		domains = append(domains, domain)
	}
	return domains, rejected
}

func renderBlock(domains []string) string {
	b := strings.Builder{}
	for _, domain := range domains {
		for _, addr := range loopbacks {
			b.WriteString(addr + " " + domain + "\n")
			b.WriteString(addr + " www." + domain + "\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// ApplyBlock returns hosts with any earlier focus block replaced by one
// mapping every domain and its www. variant to the loopback addresses.
func ApplyBlock(hosts string, domains []string) string {
	stripped := StripBlock(hosts)
	if len(domains) == 0 {
		return stripped
	}
	return textblock.Replace(stripped, BlockStart, BlockEnd, renderBlock(domains))
}

// StripBlock removes the managed block and lines written by older releases.
func StripBlock(hosts string) string {
	body := textblock.Remove(hosts, BlockStart, BlockEnd)
	if !strings.Contains(body, legacyTag) {
		return body
	}
	trailing := strings.HasSuffix(body, "\n")
	lines := strings.Split(strings.TrimSuffix(body, "\n"), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.Contains(line, legacyHeader) {
			continue
		}
		if strings.HasPrefix(line, "127.0.0.1") && strings.Contains(line, legacyTag) {
			continue
		}
		kept = append(kept, line)
	}
	out := strings.Join(kept, "\n")
	if trailing && out != "" {
		out += "\n"
	}
	return out
}

// IsBlocked reports whether hosts carries a focus block.
func IsBlocked(hosts string) bool {
	return StripBlock(hosts) != hosts
}
