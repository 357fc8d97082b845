package trend

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const noDescription = "No description provided"

// Render writes the report as chat text: repository listing, then adoption, then
// activity. An empty report renders as a single not found line
func Render(r Report) string {
	if r.Empty() {
		return NotFound(r.Term)
	}

	// printers are not shared between goroutines
	p := message.NewPrinter(language.English)
	var b strings.Builder

	p.Fprintf(&b, "GitHub trends for %q\n\n", r.Term)

	b.WriteString("Top repositories:\n")
	for i, s := range r.Repositories {
		p.Fprintf(&b, "%d. %s (%d stars, %d forks", i+1, s.Name, s.Stars, s.Forks)
		if s.Language != "" {
			b.WriteString(", ")
			b.WriteString(s.Language)
		}
		b.WriteString(")\n")
		desc := s.Description
		if strings.TrimSpace(desc) == "" {
			desc = noDescription
		}
		b.WriteString("   ")
		b.WriteString(desc)
		b.WriteString("\n")
		if !s.UpdatedAt.IsZero() {
			b.WriteString("   Last updated: ")
			b.WriteString(s.UpdatedAt.UTC().Format("2006-01-02"))
			b.WriteString("\n")
		}
		if s.URL != "" {
			b.WriteString("   ")
			b.WriteString(s.URL)
			b.WriteString("\n")
		}
	}

	b.WriteString("\nAdoption analysis:\n")
	p.Fprintf(&b, "- Adoption level: %s (%d matching repositories)\n", r.Adoption, r.TotalCount)
	p.Fprintf(&b, "- Total stars (top %d): %d\n", len(r.Repositories), r.TotalStars)
	p.Fprintf(&b, "- Average stars: %d\n", r.AverageStars)
	p.Fprintf(&b, "- Total forks (top %d): %d\n", len(r.Repositories), r.TotalForks)
	if len(r.Languages) > 0 {
		langs := make([]string, 0, len(r.Languages))
		for _, l := range r.Languages {
			langs = append(langs, p.Sprintf("%s (%d)", l.Name, l.Count))
		}
		b.WriteString("- Top languages: ")
		b.WriteString(strings.Join(langs, ", "))
		b.WriteString("\n")
	}

	b.WriteString("\nActivity analysis:\n")
	p.Fprintf(&b, "- Updated in the last 30 days: %d of %d\n", r.VeryRecent, len(r.Repositories))
	p.Fprintf(&b, "- Updated in the last 90 days: %d of %d\n", r.Recent, len(r.Repositories))
	p.Fprintf(&b, "- Activity level: %s\n", r.Activity)
	p.Fprintf(&b, "- Community health: %s", r.Health)

	return b.String()
}

// NotFound is the whole reply when a search returns no items
func NotFound(term string) string {
	return "No repositories found for \"" + term + "\". Try a broader or differently spelled technology name."
}
