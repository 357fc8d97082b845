// Package trend turns a repository search result into adoption and activity
// signals and renders them as a plain text report
package trend

import (
	"math"
	"slices"
	"time"
	"unicode/utf8"
)

// Repository is one search hit as returned by the index
type Repository struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	Language    string    `json:"language,omitempty"` // empty when the index reports none
	UpdatedAt   time.Time `json:"updated_at"`
	URL         string    `json:"url"`
}

// Result is a search response. Items keep the index order (stars desc)
type Result struct {
	TotalCount int          `json:"total_count"`
	Items      []Repository `json:"items"`
}

// Adoption buckets the total match count
type Adoption string

const (
	AdoptionNiche    Adoption = "Niche"
	AdoptionEmerging Adoption = "Emerging"
	AdoptionModerate Adoption = "Moderate"
	AdoptionHigh     Adoption = "High"
	AdoptionVeryHigh Adoption = "Very High"
)

// Activity buckets how many items were updated recently
type Activity string

const (
	ActivityLow        Activity = "Low"
	ActivityModerate   Activity = "Moderate"
	ActivityActive     Activity = "Active"
	ActivityVeryActive Activity = "Very Active"
)

// Health is the community health label derived from Activity
type Health string

const (
	HealthStrong   Health = "Strong"
	HealthModerate Health = "Moderate"
)

const (
	// VeryRecentWindow and RecentWindow are nested, a very recent item is also recent
	VeryRecentWindow = 30 * 24 * time.Hour
	RecentWindow     = 90 * 24 * time.Hour

	// MaxDescription is the rune limit before a description is cut
	MaxDescription = 100
	// TopLanguages is how many languages the ranking keeps
	TopLanguages = 3
)

// LanguageCount is one entry of the language ranking
type LanguageCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Summary is a repository line of the report
type Summary struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	Language    string    `json:"language,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
	URL         string    `json:"url"`
}

// Report is the derived view of one Result. It is never stored
type Report struct {
	Term       string   `json:"term"`
	TotalCount int      `json:"total_count"`
	Adoption   Adoption `json:"adoption"`

	Repositories []Summary `json:"repositories"`

	// aggregates over the returned items only; zero when Repositories is empty
	TotalStars   int             `json:"total_stars"`
	AverageStars int             `json:"average_stars"`
	TotalForks   int             `json:"total_forks"`
	Languages    []LanguageCount `json:"languages"`

	VeryRecent int      `json:"very_recent"`
	Recent     int      `json:"recent"`
	Activity   Activity `json:"activity"`
	Health     Health   `json:"health"`
}

// Empty reports whether the result had no items to analyze
func (r Report) Empty() bool { return len(r.Repositories) == 0 }

// Analyze derives a Report from res. now anchors the activity windows
func Analyze(res Result, term string, now time.Time) Report {
	rep := Report{
		Term:       term,
		TotalCount: res.TotalCount,
		Adoption:   AdoptionLevel(res.TotalCount),
	}
	n := len(res.Items)
	if n == 0 {
		rep.Activity = ActivityLow
		rep.Health = HealthModerate
		return rep
	}

	rep.Repositories = make([]Summary, 0, n)
	for _, it := range res.Items {
		rep.Repositories = append(rep.Repositories, Summary{
			Name:        it.Name,
			Description: Truncate(it.Description, MaxDescription),
			Stars:       it.Stars,
			Forks:       it.Forks,
			Language:    it.Language,
			UpdatedAt:   it.UpdatedAt,
			URL:         it.URL,
		})
		rep.TotalStars += it.Stars
		rep.TotalForks += it.Forks

		age := now.Sub(it.UpdatedAt)
		if age <= RecentWindow {
			rep.Recent++
			if age <= VeryRecentWindow {
				rep.VeryRecent++
			}
		}
	}
	rep.AverageStars = int(math.Round(float64(rep.TotalStars) / float64(n)))
	rep.Languages = rankLanguages(res.Items, TopLanguages)
	rep.Activity = ActivityLevel(rep.VeryRecent, rep.Recent, n)
	rep.Health = HealthOf(rep.Activity)
	return rep
}

// AdoptionLevel maps a total match count to its bucket. Bounds are exclusive
func AdoptionLevel(total int) Adoption {
	switch {
	case total > 50000:
		return AdoptionVeryHigh
	case total > 10000:
		return AdoptionHigh
	case total > 1000:
		return AdoptionModerate
	case total > 100:
		return AdoptionEmerging
	default:
		return AdoptionNiche
	}
}

// ActivityLevel classifies the very recent and recent ratios over n items.
// Ratios are compared by cross multiplication so 7 of 10 is exactly 0.7
func ActivityLevel(veryRecent, recent, n int) Activity {
	if n <= 0 {
		return ActivityLow
	}
	switch {
	case 10*veryRecent > 7*n:
		return ActivityVeryActive
	case 2*recent > n:
		return ActivityActive
	case 10*recent > 3*n:
		return ActivityModerate
	default:
		return ActivityLow
	}
}

// HealthOf is Strong for Active and Very Active, Moderate otherwise
func HealthOf(a Activity) Health {
	if a == ActivityVeryActive || a == ActivityActive {
		return HealthStrong
	}
	return HealthModerate
}

// Truncate cuts s to max runes and appends "..." when it was longer
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max]) + "..."
}

// rankLanguages counts non-empty languages, most frequent first. Ties keep the
// order in which a language was first seen
func rankLanguages(items []Repository, top int) []LanguageCount {
	idx := map[string]int{}
	var out []LanguageCount
	for _, it := range items {
		if it.Language == "" {
			continue
		}
		if i, ok := idx[it.Language]; ok {
			out[i].Count++
			continue
		}
		idx[it.Language] = len(out)
		out = append(out, LanguageCount{Name: it.Language, Count: 1})
	}
	slices.SortStableFunc(out, func(a, b LanguageCount) int { return b.Count - a.Count })
	if len(out) > top {
		out = out[:top]
	}
	return out
}
