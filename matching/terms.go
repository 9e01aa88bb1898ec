package matching

import (
	"regexp"
	"strings"
)

// collabSep matches the separators used to join collaborating artists in
// video titles. The captured group is the separator token itself.
var collabSep = regexp.MustCompile(`(?i)\s+(featuring|feat\.?|ft\.?|vs\.?|and|x|&)\s+`)

// Normalize lowercases and trims a piece of title or channel text.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ContainsWholeWord reports whether needle occurs in haystack as a delimited
// word or phrase rather than inside a longer word ("art" does not match
// "artist"). Matching is case-insensitive and never fails on arbitrary input.
func ContainsWholeWord(haystack, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" || haystack == "" {
		return false
	}
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(needle) + `\b`)
	if err != nil {
		return strings.Contains(Normalize(haystack), Normalize(needle))
	}
	return re.MatchString(haystack)
}

// Segment is one artist segment of a title split on collaboration markers.
// Sep is the separator that preceded the segment; it is empty for the first.
type Segment struct {
	Sep  string
	Text string
}

// SplitCollaborators splits a title on collaboration markers (&, and, x,
// vs, feat, ft, featuring), keeping the separator that introduced each
// segment so callers can decide between featured and co-billed artists.
func SplitCollaborators(title string) []Segment {
	locs := collabSep.FindAllStringSubmatchIndex(title, -1)
	if len(locs) == 0 {
		return []Segment{{Text: title}}
	}

	segs := make([]Segment, 0, len(locs)+1)
	prevEnd := 0
	prevSep := ""
	for _, loc := range locs {
		segs = append(segs, Segment{Sep: prevSep, Text: title[prevEnd:loc[0]]})
		prevSep = strings.ToLower(title[loc[2]:loc[3]])
		prevEnd = loc[1]
	}
	segs = append(segs, Segment{Sep: prevSep, Text: title[prevEnd:]})
	return segs
}
