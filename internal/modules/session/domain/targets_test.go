package domain_test

import (
	"testing"

	"focus/internal/modules/session/domain"
)

func TestSearchSites(t *testing.T) {
	t.Parallel()
	if got := domain.SearchSites("   "); len(got) != 0 {
		t.Fatalf("blank query must return nothing, got %d", len(got))
	}
	got := domain.SearchSites("REDDIT")
	if len(got) != 2 {
		t.Fatalf("expected reddit and reddit news, got %+v", got)
	}
	if len(domain.SearchSites("gaming")) != 4 {
		t.Fatalf("category search should match gaming sites")
	}
	if len(domain.SearchSites("twitch.tv")) != 1 {
		t.Fatalf("url search should match twitch")
	}
}

func TestTagListDedupesByLabelAndKind(t *testing.T) {
	t.Parallel()
	list := domain.TagList{}
	if !list.Add(domain.Tag{Label: "steam", Kind: domain.TagWebsite}) {
		t.Fatalf("first add should succeed")
	}
	if list.Add(domain.Tag{Label: "steam", Kind: domain.TagWebsite}) {
		t.Fatalf("duplicate label and kind must be rejected")
	}
	if !list.Add(domain.Tag{Label: "steam", Kind: domain.TagApp, Executable: "steam"}) {
		t.Fatalf("same label with another kind is allowed")
	}
	if list.Add(domain.Tag{Label: "  ", Kind: domain.TagWebsite}) {
		t.Fatalf("blank label must be rejected")
	}

	sites, apps := list.Split()
	if len(sites) != 1 || sites[0] != "steam" {
		t.Fatalf("unexpected sites %v", sites)
	}
	if len(apps) != 1 || apps[0].Executable != "steam" {
		t.Fatalf("unexpected apps %v", apps)
	}

	list.Remove(0)
	list.Remove(9)
	if len(list.Tags()) != 1 {
		t.Fatalf("expected one tag after remove, got %d", len(list.Tags()))
	}
	list.Clear()
	if len(list.Tags()) != 0 {
		t.Fatalf("clear should empty the list")
	}
}
