package search

import (
	"regexp"
	"strings"
	"time"
)

var (
	freshnessShortcuts = map[string]string{
		"pd": "oneDay",
		"pw": "oneWeek",
		"pm": "oneMonth",
		"py": "oneYear",
	}
	freshnessRangeRE = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})to(\d{4}-\d{2}-\d{2})$`)
)

const freshnessDateLayout = "2006-01-02"

// NormalizeFreshness accepts a shortcut (pd, pw, pm, py) or a date range
// YYYY-MM-DDtoYYYY-MM-DD, case-insensitively. Both dates must exist on the
// calendar and the start must not be after the end. Anything else returns
// ok=false.
func NormalizeFreshness(input string) (string, bool) {
	value := strings.ToLower(strings.TrimSpace(input))
	if value == "" {
		return "", false
	}
	if _, ok := freshnessShortcuts[value]; ok {
		return value, true
	}
	match := freshnessRangeRE.FindStringSubmatch(value)
	if match == nil {
		return "", false
	}
	start, err := time.Parse(freshnessDateLayout, match[1])
	if err != nil {
		return "", false
	}
	end, err := time.Parse(freshnessDateLayout, match[2])
	if err != nil {
		return "", false
	}
	if start.After(end) {
		return "", false
	}
	return match[1] + "to" + match[2], true
}

// zhipuRecencyFilter maps a normalized freshness value onto Zhipu's
// search_recency_filter. Date ranges have no Zhipu equivalent.
func zhipuRecencyFilter(freshness string) string {
	if mapped, ok := freshnessShortcuts[freshness]; ok {
		return mapped
	}
	return "noLimit"
}
