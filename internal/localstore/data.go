package localstore

import (
	"errors"
	"sort"
	"strings"
	"time"

	"beelinks-api/internal/link"
	"beelinks-api/internal/utils"
)

// Sort orders accepted by SortedLinks.
const (
	SortByDate   = "date"
	SortByClicks = "clicks"
)

var (
	// ErrLinkNotFound indicates the link ID is not in the store
	ErrLinkNotFound = errors.New("Link not found")

	// ErrInvalidTitle indicates the title is too short
	ErrInvalidTitle = errors.New("Title must be at least 2 characters")

	// ErrInvalidURL indicates the URL is not a valid http(s) URL
	ErrInvalidURL = errors.New("Invalid URL")
)

// LocalLink mirrors the server-side link shape for the local variant
type LocalLink struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Position    int    `json:"position"`
	IsActive    bool   `json:"isActive"`
	Clicks      int64  `json:"clicks"`
	CreatedAt   int64  `json:"createdAt"`
}

// LocalProfile is the single profile of the local variant
type LocalProfile struct {
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
}

// LocalTheme is the theme of the local variant
type LocalTheme struct {
	Name            string `json:"name"`
	PrimaryColor    string `json:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
	AccentColor     string `json:"accentColor"`
	FontFamily      string `json:"fontFamily"`
	BorderRadius    int    `json:"borderRadius"`
	ButtonStyle     string `json:"buttonStyle"`
}

// LocalStats aggregates the local click/view counters
type LocalStats struct {
	TotalClicks int64 `json:"totalClicks"`
	TotalViews  int64 `json:"totalViews"`
}

// Links returns the stored links, empty when never written
func (s *Store) Links() ([]LocalLink, error) {
	var links []LocalLink
	err := s.Get(KeyLinks, &links)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return []LocalLink{}, nil
		}
		return nil, err
	}
	return links, nil
}

// AddLink validates and appends a link, applying the same normalization
// rules as the server variant
func (s *Store) AddLink(title, rawURL, description string) (*LocalLink, error) {
	if len(strings.TrimSpace(title)) < 2 {
		return nil, ErrInvalidTitle
	}

	normalized := link.NormalizeURL(rawURL)
	if normalized == "" || !strings.HasPrefix(normalized, "http") {
		return nil, ErrInvalidURL
	}

	desc := strings.TrimSpace(description)
	if desc == "" {
		desc = "Clique para visitar"
	}

	links, err := s.Links()
	if err != nil {
		return nil, err
	}

	newLink := LocalLink{
		ID:          utils.GenerateLinkID(),
		Title:       strings.TrimSpace(title),
		URL:         normalized,
		Description: desc,
		Icon:        link.DetectIcon(normalized),
		Position:    len(links),
		IsActive:    true,
		CreatedAt:   time.Now().Unix(),
	}

	links = append(links, newLink)
	if err := s.Set(KeyLinks, links); err != nil {
		return nil, err
	}

	return &newLink, nil
}

// UpdateLink applies a partial update to a link. Empty strings leave the
// field untouched; validation matches AddLink.
func (s *Store) UpdateLink(id, title, rawURL, description string) (*LocalLink, error) {
	links, err := s.Links()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range links {
		if links[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrLinkNotFound
	}

	if title != "" {
		if len(strings.TrimSpace(title)) < 2 {
			return nil, ErrInvalidTitle
		}
		links[idx].Title = strings.TrimSpace(title)
	}

	if rawURL != "" {
		normalized := link.NormalizeURL(rawURL)
		if normalized == "" || !strings.HasPrefix(normalized, "http") {
			return nil, ErrInvalidURL
		}
		links[idx].URL = normalized
		links[idx].Icon = link.DetectIcon(normalized)
	}

	if description != "" {
		links[idx].Description = strings.TrimSpace(description)
	}

	if err := s.Set(KeyLinks, links); err != nil {
		return nil, err
	}

	updated := links[idx]
	return &updated, nil
}

// SortLinks orders links newest-first (date) or most-clicked-first
// (clicks), in place. Any other value keeps the stored position order.
func SortLinks(links []LocalLink, by string) []LocalLink {
	switch by {
	case SortByDate:
		sort.SliceStable(links, func(i, j int) bool {
			return links[i].CreatedAt > links[j].CreatedAt
		})
	case SortByClicks:
		sort.SliceStable(links, func(i, j int) bool {
			return links[i].Clicks > links[j].Clicks
		})
	}
	return links
}

// SortedLinks returns the stored links in the given order
func (s *Store) SortedLinks(by string) ([]LocalLink, error) {
	links, err := s.Links()
	if err != nil {
		return nil, err
	}
	return SortLinks(links, by), nil
}

// SearchLinks returns the links whose title, description or URL contains
// the query, case-insensitive. A blank query matches everything.
func (s *Store) SearchLinks(query string) ([]LocalLink, error) {
	links, err := s.Links()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return links, nil
	}

	matched := make([]LocalLink, 0, len(links))
	for _, l := range links {
		haystack := strings.ToLower(l.Title + " " + l.Description + " " + l.URL)
		if strings.Contains(haystack, needle) {
			matched = append(matched, l)
		}
	}

	return matched, nil
}

// RemoveLink deletes a link by ID and compacts positions
func (s *Store) RemoveLink(id string) error {
	links, err := s.Links()
	if err != nil {
		return err
	}

	kept := make([]LocalLink, 0, len(links))
	found := false
	for _, l := range links {
		if l.ID == id {
			found = true
			continue
		}
		kept = append(kept, l)
	}
	if !found {
		return ErrLinkNotFound
	}

	for i := range kept {
		kept[i].Position = i
	}

	return s.Set(KeyLinks, kept)
}

// RecordClick increments a link's counter and the aggregate total
func (s *Store) RecordClick(id string) error {
	links, err := s.Links()
	if err != nil {
		return err
	}

	found := false
	for i := range links {
		if links[i].ID == id {
			links[i].Clicks++
			found = true
			break
		}
	}
	if !found {
		return ErrLinkNotFound
	}

	if err := s.Set(KeyLinks, links); err != nil {
		return err
	}

	stats, err := s.Stats()
	if err != nil {
		return err
	}
	stats.TotalClicks++
	return s.Set(KeyStats, stats)
}

// Profile returns the stored profile or a default one
func (s *Store) Profile() (LocalProfile, error) {
	var profile LocalProfile
	err := s.Get(KeyProfile, &profile)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return LocalProfile{
				Username: "user",
				Bio:      "Desenvolvedor | Criador de Conteúdo | Tech Enthusiast",
			}, nil
		}
		return LocalProfile{}, err
	}
	return profile, nil
}

// SaveProfile persists the profile
func (s *Store) SaveProfile(profile LocalProfile) error {
	return s.Set(KeyProfile, profile)
}

// Theme returns the stored theme or the default one
func (s *Store) Theme() (LocalTheme, error) {
	var theme LocalTheme
	err := s.Get(KeyTheme, &theme)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return LocalTheme{
				Name:            "Tema BeeLinks",
				PrimaryColor:    "#FFD700",
				SecondaryColor:  "#FFC107",
				BackgroundColor: "#1A1A1A",
				TextColor:       "#FFFFFF",
				AccentColor:     "#2D2D2D",
				FontFamily:      "Inter",
				BorderRadius:    12,
				ButtonStyle:     "rounded",
			}, nil
		}
		return LocalTheme{}, err
	}
	return theme, nil
}

// SaveTheme persists the theme
func (s *Store) SaveTheme(theme LocalTheme) error {
	return s.Set(KeyTheme, theme)
}

// Stats returns the stored counters, zeroed when never written
func (s *Store) Stats() (LocalStats, error) {
	var stats LocalStats
	err := s.Get(KeyStats, &stats)
	if err != nil && !errors.Is(err, ErrKeyNotFound) {
		return LocalStats{}, err
	}
	return stats, nil
}

// RecordView increments the aggregate view counter
func (s *Store) RecordView() error {
	stats, err := s.Stats()
	if err != nil {
		return err
	}
	stats.TotalViews++
	return s.Set(KeyStats, stats)
}
