package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focus/internal/modules/blocker/domain"
)

const baseHosts = "127.0.0.1 localhost\n::1 localhost\n"

func TestExtractDomain(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"reddit.com":                     "reddit.com",
		"https://www.Reddit.com/r/golang": "reddit.com",
		"http://example.org:8080/path":    "example.org",
		"  WWW.YouTube.com  ":             "youtube.com",
		"https://reddit.com/r/news":       "reddit.com",
		"":                                "",
	}
	for in, want := range cases {
		assert.Equal(t, want, domain.ExtractDomain(in), "input %q", in)
	}
}

func TestDomainsDedupesAndRejects(t *testing.T) {
	t.Parallel()
	domains, rejected := domain.Domains([]string{"reddit.com", "https://www.reddit.com", "", "x.com", "bad name"})
	assert.Equal(t, []string{"reddit.com", "x.com"}, domains)
	assert.Equal(t, []string{"", "bad name"}, rejected)
}

func TestApplyBlockWritesBothFamiliesAndWWW(t *testing.T) {
	t.Parallel()
	out := domain.ApplyBlock(baseHosts, []string{"reddit.com"})
	require.True(t, strings.HasPrefix(out, baseHosts))
	for _, line := range []string{
		"127.0.0.1 reddit.com",
		"127.0.0.1 www.reddit.com",
		"::1 reddit.com",
		"::1 www.reddit.com",
		domain.BlockStart,
		domain.BlockEnd,
	} {
		assert.Contains(t, out, line+"\n")
	}
	assert.True(t, domain.IsBlocked(out))
	assert.False(t, domain.IsBlocked(baseHosts))
}

func TestApplyStripRoundTrip(t *testing.T) {
	t.Parallel()
	blocked := domain.ApplyBlock(baseHosts, []string{"reddit.com", "x.com"})
	assert.Equal(t, baseHosts, domain.StripBlock(blocked))

	reblocked := domain.ApplyBlock(blocked, []string{"youtube.com"})
	assert.Equal(t, 1, strings.Count(reblocked, domain.BlockStart))
	assert.NotContains(t, reblocked, "reddit.com")
	assert.Equal(t, baseHosts, domain.StripBlock(reblocked))
}

func TestStripBlockRemovesLegacyLines(t *testing.T) {
	t.Parallel()
	legacy := baseHosts +
		"# Focus app blocked sites\n" +
		"127.0.0.1 reddit.com # Focus\n" +
		"127.0.0.1 www.reddit.com # Focus\n" +
		"10.0.0.5 nas.local\n"
	assert.Equal(t, baseHosts+"10.0.0.5 nas.local\n", domain.StripBlock(legacy))
}

func TestApplyBlockWithoutDomainsOnlyStrips(t *testing.T) {
	t.Parallel()
	blocked := domain.ApplyBlock(baseHosts, []string{"reddit.com"})
	assert.Equal(t, baseHosts, domain.ApplyBlock(blocked, nil))
	assert.Equal(t, baseHosts, domain.StripBlock(baseHosts))
}
