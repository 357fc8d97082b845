// Package scope decides whether an utterance is a technology research query and
// derives the search term from it
//
// The classifier is a plain keyword substring match on the lower-cased text. It is
// coarse on purpose, false positives and negatives are accepted
package scope

import (
	"strings"
	"unicode"

	"trendscout/internal/core/normalize"
)

// Keywords is the fixed in-domain vocabulary. Order is irrelevant
var Keywords = []string{
	// research words
	"technology", "tech", "framework", "library", "libraries", "programming",
	"language", "tool", "trend", "popular", "open source", "repo", "github",
	"package", "sdk", "api", "database", "machine learning",

	// ecosystems
	"javascript", "typescript", "js", "python", "rust", "golang", "java", "kotlin",
	"swift", "react", "vue", "angular", "svelte", "node", "django", "flask", "rails",
	"spring", "kubernetes", "docker", "tensorflow", "pytorch", "llm", "blockchain",
	"web3",
}

// Classifier matches text against a keyword set
type Classifier struct {
	keywords []string
}

// New returns a Classifier over the given keywords, Keywords when none are given
func New(keywords ...string) *Classifier {
	if len(keywords) == 0 {
		keywords = Keywords
	}
	kw := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = normalize.Lower(strings.TrimSpace(k)); k != "" {
			kw = append(kw, k)
		}
	}
	return &Classifier{keywords: kw}
}

// InScope reports whether any keyword is a substring of the lower-cased text
func (c *Classifier) InScope(text string) bool {
	lower := normalize.Lower(text)
	for _, k := range c.keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// filler words dropped when turning a question into a search term
var filler = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		a an the and or of on in at for to about with from by into
		i me my you your we us our can could would should will please
		what whats what's which who how hows how's why when where is are was were be been
		tell show give find search look lookup up get see know want need like
		any some all most more much many there their this that these those
		trending trend trends popular popularity latest new newest top best hot rising
		adoption activity stats statistics status state current currently today now
		days right doing going research researching info information
		github repo repos repository repositories project projects
		technology technologies tech framework frameworks library libraries lib libs
		tool tools tooling programming language languages ecosystem
	`) {
		filler[w] = struct{}{}
	}
}

// ExtractTerm derives a search term from free text. Filler words and punctuation are
// dropped; when nothing survives the cleaned text itself is returned
func ExtractTerm(text string) string {
	words := strings.Fields(normalize.Lower(normalize.Text(text)))
	kept := make([]string, 0, len(words))
	all := make([]string, 0, len(words))
	for _, w := range words {
		w = trimWord(w)
		if w == "" {
			continue
		}
		all = append(all, w)
		if _, skip := filler[w]; skip {
			continue
		}
		kept = append(kept, w)
	}
	if len(kept) == 0 {
		return strings.Join(all, " ")
	}
	return strings.Join(kept, " ")
}

// trimWord strips surrounding punctuation but keeps symbols that are part of names
// such as c++, c#, node.js and .net
func trimWord(w string) string {
	w = strings.TrimFunc(w, func(r rune) bool {
		if r == '+' || r == '#' {
			return false
		}
		return unicode.IsPunct(r) && r != '.' || unicode.IsSymbol(r)
	})
	w = strings.TrimRight(w, ".")
	return w
}
