package tui

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/streamdex-cli/streamdex/util"
)

var (
	sxePattern   = regexp.MustCompile(`^s(?P<season>\d{1,3})e(?P<episode>\d{1,4})$`)
	crossPattern = regexp.MustCompile(`^(?P<season>\d{1,3})x(?P<episode>\d{1,4})$`)
)

// parseEpisodeRef understands "s01e03", "1x3" and a bare episode number,
// defaulting any missing part to 1.
func parseEpisodeRef(raw string) (season, episode int) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return 1, 1
	}

	for _, pattern := range []*regexp.Regexp{sxePattern, crossPattern} {
		if groups := util.ReGroups(pattern, raw); len(groups) > 0 {
			return atoiOr(groups["season"], 1), atoiOr(groups["episode"], 1)
		}
	}

	return 1, atoiOr(raw, 1)
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
