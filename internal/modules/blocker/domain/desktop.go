package domain

import (
	"sort"
	"strings"
)

const MaxSearchResults = 10

type InstalledApp struct {
	Name        string
	DisplayName string
	Executable  string
	Icon        string
	Categories  []string
}

// ParseDesktopEntry reads the [Desktop Entry] group of a .desktop file.
// Hidden entries and entries without Name or Exec are rejected.
func ParseDesktopEntry(content string) (InstalledApp, bool) {
	var name, exec, icon string
	var categories []string
	hidden := false
	inEntry := false
	sawGroup := false

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			sawGroup = true
			inEntry = line == "[Desktop Entry]"
			continue
		}
		if sawGroup && !inEntry {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "Name":
			name = strings.TrimSpace(value)
		case "Exec":
			exec = strings.TrimSpace(value)
		case "Icon":
			icon = strings.TrimSpace(value)
		case "Categories":
			for _, c := range strings.Split(value, ";") {
				if c = strings.TrimSpace(c); c != "" {
					categories = append(categories, c)
				}
			}
		case "NoDisplay", "Hidden":
			if strings.EqualFold(strings.TrimSpace(value), "true") {
				hidden = true
			}
		}
	}
	if hidden || name == "" || exec == "" {
		return InstalledApp{}, false
	}
	executable := Executable(exec)
	if executable == "" {
		return InstalledApp{}, false
	}
	return InstalledApp{
		Name:        name,
		DisplayName: name,
		Executable:  executable,
		Icon:        icon,
		Categories:  categories,
	}, true
}

// Executable returns the program basename of an Exec value.
func Executable(exec string) string {
	fields := strings.Fields(exec)
	if len(fields) == 0 {
		return ""
	}
	program := strings.Trim(fields[0], `"'`)
	if i := strings.LastIndexByte(program, '/'); i >= 0 {
		program = program[i+1:]
	}
	return program
}

// MatchApp reports whether the lowercase query occurs in the app name,
// executable or one of its categories.
func MatchApp(app InstalledApp, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	if strings.Contains(strings.ToLower(app.Name), q) || strings.Contains(strings.ToLower(app.Executable), q) {
		return true
	}
	for _, c := range app.Categories {
		if strings.Contains(strings.ToLower(c), q) {
			return true
		}
	}
	return false
}

// RankApps dedupes by name, puts exact name matches first, then sorts by
// name and keeps at most MaxSearchResults.
func RankApps(apps []InstalledApp, query string) []InstalledApp {
	q := strings.ToLower(strings.TrimSpace(query))
	seen := map[string]struct{}{}
	out := make([]InstalledApp, 0, len(apps))
	for _, app := range apps {
		if _, ok := seen[app.Name]; ok {
			continue
		}
		seen[app.Name] = struct{}{}
		out = append(out, app)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ei := strings.ToLower(out[i].Name) == q
		ej := strings.ToLower(out[j].Name) == q
		if ei != ej {
			return ei
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > MaxSearchResults {
		out = out[:MaxSearchResults]
	}
	return out
}
