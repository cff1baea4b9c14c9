package domain

import (
	"strings"
	"time"
)

// DescriptionLimit bounds the stored description length. Source APIs ship
// unbounded HTML blobs; everything past the limit is cut before the record
// leaves the adapter.
const DescriptionLimit = 500

// TruncateDescription cuts a raw description down to DescriptionLimit runes.
func TruncateDescription(s string) string {
	runes := []rune(s)
	if len(runes) <= DescriptionLimit {
		return s
	}
	return string(runes[:DescriptionLimit])
}

// MatchesAnyTerm reports whether any search term appears, case-insensitively,
// in the concatenation of title, tags and company. An empty term list matches
// everything (no filtering).
func MatchesAnyTerm(terms []string, title, tags, company string) bool {
	if len(terms) == 0 {
		return true
	}
	searchable := strings.ToLower(title + " " + tags + " " + company)
	for _, term := range terms {
		if term == "" {
			continue
		}
		if strings.Contains(searchable, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

// NormalizePostedAt converts an RFC3339 source date into the sortable
// "2006-01-02 15:04" form. Unparseable input is returned unchanged.
func NormalizePostedAt(raw string) string {
	if raw == "" {
		return raw
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.Format("2006-01-02 15:04")
}

// EpochToPostedAt renders a unix timestamp in the same sortable form as
// NormalizePostedAt.
func EpochToPostedAt(epoch int64) string {
	return time.Unix(epoch, 0).UTC().Format("2006-01-02 15:04")
}

// JoinTags flattens a source-provided tag list into the stored comma-joined
// form.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// LocationOrRemote substitutes "Remote" when the source omits a location.
func LocationOrRemote(location string) string {
	if location == "" {
		return "Remote"
	}
	return location
}
