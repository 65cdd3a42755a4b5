package domain

import "strings"

type Site struct {
	Category string
	Name     string
	URL      string
}

var siteCatalog = []Site{
	{Category: "Social Networking", Name: "reddit", URL: "https://reddit.com"},
	{Category: "Social Networking", Name: "twitter", URL: "https://twitter.com"},
	{Category: "Social Networking", Name: "x.com", URL: "https://x.com"},
	{Category: "Social Networking", Name: "facebook", URL: "https://facebook.com"},
	{Category: "Social Networking", Name: "instagram", URL: "https://instagram.com"},
	{Category: "Social Networking", Name: "linkedin", URL: "https://linkedin.com"},
	{Category: "Social Networking", Name: "pinterest", URL: "https://pinterest.com"},
	{Category: "Social Networking", Name: "tiktok", URL: "https://tiktok.com"},
	{Category: "Social Networking", Name: "snapchat", URL: "https://snapchat.com"},
	{Category: "Social Networking", Name: "discord", URL: "https://discord.com"},
	{Category: "Social Networking", Name: "telegram", URL: "https://telegram.org"},
	{Category: "Entertainment", Name: "youtube", URL: "https://youtube.com"},
	{Category: "Entertainment", Name: "netflix", URL: "https://netflix.com"},
	{Category: "Entertainment", Name: "amazon prime", URL: "https://primevideo.com"},
	{Category: "Entertainment", Name: "hulu", URL: "https://hulu.com"},
	{Category: "Entertainment", Name: "disney plus", URL: "https://disneyplus.com"},
	{Category: "Entertainment", Name: "apple tv plus", URL: "https://appletvplus.com"},
	{Category: "Entertainment", Name: "apple music", URL: "https://music.apple.com"},
	{Category: "Entertainment", Name: "spotify", URL: "https://spotify.com"},
	{Category: "Entertainment", Name: "twitch", URL: "https://twitch.tv"},
	{Category: "Entertainment", Name: "crunchyroll", URL: "https://crunchyroll.com"},
	{Category: "Gaming", Name: "steam", URL: "https://store.steampowered.com"},
	{Category: "Gaming", Name: "epic games", URL: "https://epicgames.com"},
	{Category: "Gaming", Name: "roblox", URL: "https://roblox.com"},
	{Category: "Gaming", Name: "minecraft", URL: "https://minecraft.net"},
	{Category: "Shopping", Name: "amazon", URL: "https://amazon.com"},
	{Category: "Shopping", Name: "ebay", URL: "https://ebay.com"},
	{Category: "Shopping", Name: "etsy", URL: "https://etsy.com"},
	{Category: "News", Name: "cnn", URL: "https://cnn.com"},
	{Category: "News", Name: "bbc", URL: "https://bbc.com"},
	{Category: "News", Name: "reddit news", URL: "https://reddit.com/r/news"},
}

// SearchSites matches query against name, url and category, ignoring case.
func SearchSites(query string) []Site {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	q := strings.ToLower(query)
	out := []Site{}
	for _, site := range siteCatalog {
		if strings.Contains(strings.ToLower(site.Name), q) ||
			strings.Contains(strings.ToLower(site.URL), q) ||
			strings.Contains(strings.ToLower(site.Category), q) {
			out = append(out, site)
		}
	}
	return out
}
