package mapping

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	rangeRe  = regexp.MustCompile(`(\d+)\s*-\s*(\d+)`)
	numberRe = regexp.MustCompile(`\d+`)
)

// ParsePages turns a page-list cell into a sorted, deduplicated list of
// page numbers. Handles "89", "34-45", "15, 22, 34" and combinations;
// empty, "N/A" and "-" yield nil. Pieces that look like a range but do
// not parse are dropped.
func ParsePages(s string) []int {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" || s == "-" {
		return nil
	}

	seen := make(map[int]bool)
	var pages []int
	add := func(n int) {
		if !seen[n] {
			seen[n] = true
			pages = append(pages, n)
		}
	}

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if strings.Contains(part, "-") {
			m := rangeRe.FindStringSubmatch(part)
			if m == nil {
				continue
			}
			start, _ := strconv.Atoi(m[1])
			end, _ := strconv.Atoi(m[2])
			for n := start; n <= end; n++ {
				add(n)
			}
		} else if m := numberRe.FindString(part); m != "" {
			n, _ := strconv.Atoi(m)
			add(n)
		}
	}

	sort.Ints(pages)
	return pages
}
