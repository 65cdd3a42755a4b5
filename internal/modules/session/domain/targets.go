package domain

import (
	"strings"
	"time"
)

type TagKind string

const (
	TagWebsite TagKind = "website"
	TagApp     TagKind = "app"
)

// Tag is one entry of the block list being assembled for a session.
type Tag struct {
	Label      string
	Kind       TagKind
	Executable string
	Icon       string
}

// TagList keeps block targets unique by label and kind.
type TagList struct {
	tags []Tag
}

func (l *TagList) Add(tag Tag) bool {
	tag.Label = strings.TrimSpace(tag.Label)
	if tag.Label == "" {
		return false
	}
	for _, existing := range l.tags {
		if existing.Label == tag.Label && existing.Kind == tag.Kind {
			return false
		}
	}
	l.tags = append(l.tags, tag)
	return true
}

func (l *TagList) Remove(index int) {
	if index < 0 || index >= len(l.tags) {
		return
	}
	l.tags = append(l.tags[:index], l.tags[index+1:]...)
}

func (l *TagList) Clear() {
	l.tags = nil
}

func (l *TagList) Tags() []Tag {
	return append([]Tag(nil), l.tags...)
}

// Split separates the list into website labels and app targets.
func (l *TagList) Split() ([]string, []AppTarget) {
	sites := []string{}
	apps := []AppTarget{}
	for _, tag := range l.tags {
		switch tag.Kind {
		case TagApp:
			executable := tag.Executable
			if executable == "" {
				executable = tag.Label
			}
			apps = append(apps, AppTarget{Label: tag.Label, Executable: executable, Icon: tag.Icon})
		default:
			sites = append(sites, tag.Label)
		}
	}
	return sites, apps
}

type Layout string

const (
	LayoutMain   Layout = "main"
	LayoutWidget Layout = "widget"
	LayoutStats  Layout = "stats"
)

type HistoryEntry struct {
	ID           string
	Goal         string
	Duration     int
	BlockedSites []string
	BlockedApps  []AppTarget
	Timestamp    time.Time
}

type InstalledApp struct {
	Name        string
	DisplayName string
	Executable  string
	Icon        string
	Categories  []string
}
