package localstore

import (
	"testing"
	"time"
)

func TestAddLink(t *testing.T) {
	s := newTestStore(t)

	created, err := s.AddLink("  My Repo  ", "github.com/someone/repo", "")
	if err != nil {
		t.Fatalf("AddLink: %v", err)
	}

	if created.Title != "My Repo" {
		t.Errorf("title = %q, want trimmed %q", created.Title, "My Repo")
	}
	if created.URL != "https://github.com/someone/repo" {
		t.Errorf("url = %q, want https prefix", created.URL)
	}
	if created.Description != "Clique para visitar" {
		t.Errorf("description = %q, want default placeholder", created.Description)
	}
	if created.Icon != "fab fa-github" {
		t.Errorf("icon = %q, want github icon", created.Icon)
	}
	if created.Position != 0 {
		t.Errorf("position = %d, want 0", created.Position)
	}
	if !created.IsActive {
		t.Error("new link should be active")
	}

	second, err := s.AddLink("Another", "https://example.com", "A second link")
	if err != nil {
		t.Fatalf("AddLink second: %v", err)
	}
	if second.Position != 1 {
		t.Errorf("second position = %d, want 1", second.Position)
	}
}

func TestAddLinkValidation(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.AddLink("a", "https://example.com", ""); err != ErrInvalidTitle {
		t.Errorf("short title: got %v, want ErrInvalidTitle", err)
	}
	if _, err := s.AddLink("ok", "", ""); err != ErrInvalidURL {
		t.Errorf("empty url: got %v, want ErrInvalidURL", err)
	}
}

func TestUpdateLink(t *testing.T) {
	s := newTestStore(t)

	created, err := s.AddLink("Site", "https://example.com", "")
	if err != nil {
		t.Fatalf("AddLink: %v", err)
	}

	updated, err := s.UpdateLink(created.ID, "Renamed", "github.com/someone", "")
	if err != nil {
		t.Fatalf("UpdateLink: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Errorf("title = %q, want Renamed", updated.Title)
	}
	if updated.URL != "https://github.com/someone" {
		t.Errorf("url = %q, want normalized github url", updated.URL)
	}
	if updated.Icon != "fab fa-github" {
		t.Errorf("icon = %q, want re-detected github icon", updated.Icon)
	}
	// Untouched fields survive
	if updated.Description != "Clique para visitar" {
		t.Errorf("description = %q, should be unchanged", updated.Description)
	}

	if _, err := s.UpdateLink("missing", "Renamed", "", ""); err != ErrLinkNotFound {
		t.Errorf("unknown id: got %v, want ErrLinkNotFound", err)
	}
	if _, err := s.UpdateLink(created.ID, "x", "", ""); err != ErrInvalidTitle {
		t.Errorf("short title: got %v, want ErrInvalidTitle", err)
	}
}

func TestRemoveLinkCompactsPositions(t *testing.T) {
	s := newTestStore(t)

	first, _ := s.AddLink("First", "https://one.example", "")
	s.AddLink("Second", "https://two.example", "")
	s.AddLink("Third", "https://three.example", "")

	if err := s.RemoveLink(first.ID); err != nil {
		t.Fatalf("RemoveLink: %v", err)
	}

	links, err := s.Links()
	if err != nil {
		t.Fatalf("Links: %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("got %d links, want 2", len(links))
	}
	for i, l := range links {
		if l.Position != i {
			t.Errorf("links[%d].Position = %d, want %d", i, l.Position, i)
		}
	}

	if err := s.RemoveLink("missing"); err != ErrLinkNotFound {
		t.Errorf("unknown id: got %v, want ErrLinkNotFound", err)
	}
}

func TestRecordClick(t *testing.T) {
	s := newTestStore(t)

	created, _ := s.AddLink("Site", "https://example.com", "")

	if err := s.RecordClick(created.ID); err != nil {
		t.Fatalf("RecordClick: %v", err)
	}
	if err := s.RecordClick(created.ID); err != nil {
		t.Fatalf("RecordClick again: %v", err)
	}

	links, _ := s.Links()
	if links[0].Clicks != 2 {
		t.Errorf("clicks = %d, want 2", links[0].Clicks)
	}

	stats, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalClicks != 2 {
		t.Errorf("total clicks = %d, want 2", stats.TotalClicks)
	}

	if err := s.RecordClick("missing"); err != ErrLinkNotFound {
		t.Errorf("unknown id: got %v, want ErrLinkNotFound", err)
	}
}

func TestRecordView(t *testing.T) {
	s := newTestStore(t)

	if err := s.RecordView(); err != nil {
		t.Fatalf("RecordView: %v", err)
	}

	stats, _ := s.Stats()
	if stats.TotalViews != 1 {
		t.Errorf("total views = %d, want 1", stats.TotalViews)
	}
}

func TestSortLinks(t *testing.T) {
	now := time.Now().Unix()
	links := []LocalLink{
		{ID: "old", CreatedAt: now - 100, Clicks: 5},
		{ID: "new", CreatedAt: now, Clicks: 1},
		{ID: "mid", CreatedAt: now - 50, Clicks: 9},
	}

	byDate := SortLinks(append([]LocalLink(nil), links...), SortByDate)
	if byDate[0].ID != "new" || byDate[2].ID != "old" {
		t.Errorf("date order = %s,%s,%s, want new,mid,old", byDate[0].ID, byDate[1].ID, byDate[2].ID)
	}

	byClicks := SortLinks(append([]LocalLink(nil), links...), SortByClicks)
	if byClicks[0].ID != "mid" || byClicks[2].ID != "new" {
		t.Errorf("click order = %s,%s,%s, want mid,old,new", byClicks[0].ID, byClicks[1].ID, byClicks[2].ID)
	}

	// Unknown order keeps the given order
	asIs := SortLinks(append([]LocalLink(nil), links...), "bogus")
	if asIs[0].ID != "old" {
		t.Errorf("unknown order changed the slice, first = %s", asIs[0].ID)
	}
}

func TestSearchLinks(t *testing.T) {
	s := newTestStore(t)

	s.AddLink("My GitHub", "github.com/someone", "Code lives here")
	s.AddLink("Portfolio", "https://example.com", "My projects")

	matched, err := s.SearchLinks("github")
	if err != nil {
		t.Fatalf("SearchLinks: %v", err)
	}
	if len(matched) != 1 || matched[0].Title != "My GitHub" {
		t.Errorf("got %d matches, want the github link only", len(matched))
	}

	// Case-insensitive, matches descriptions too
	matched, _ = s.SearchLinks("PROJECTS")
	if len(matched) != 1 || matched[0].Title != "Portfolio" {
		t.Errorf("description search failed, got %d matches", len(matched))
	}

	// Blank query returns everything
	matched, _ = s.SearchLinks("   ")
	if len(matched) != 2 {
		t.Errorf("blank query: got %d links, want 2", len(matched))
	}

	matched, _ = s.SearchLinks("nothing-matches-this")
	if len(matched) != 0 {
		t.Errorf("got %d matches, want 0", len(matched))
	}
}

func TestProfileAndThemeDefaults(t *testing.T) {
	s := newTestStore(t)

	profile, err := s.Profile()
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if profile.Username != "user" {
		t.Errorf("default username = %q, want user", profile.Username)
	}

	theme, err := s.Theme()
	if err != nil {
		t.Fatalf("Theme: %v", err)
	}
	if theme.PrimaryColor != "#FFD700" {
		t.Errorf("default primary color = %q, want #FFD700", theme.PrimaryColor)
	}
	if theme.ButtonStyle != "rounded" {
		t.Errorf("default button style = %q, want rounded", theme.ButtonStyle)
	}

	// Saved values replace the defaults
	profile.Username = "bee"
	if err := s.SaveProfile(profile); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	reloaded, _ := s.Profile()
	if reloaded.Username != "bee" {
		t.Errorf("saved username = %q, want bee", reloaded.Username)
	}
}
