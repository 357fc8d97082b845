package domain

import "context"

// Agent processes one inbound envelope into one outbound envelope. It never fails,
// per event problems become reply utterances
type Agent interface {
	ProcessEnvelope(ctx context.Context, in Envelope) Envelope
}

// Searcher queries the repository search index
type Searcher interface {
	SearchRepositories(ctx context.Context, term string, maxResults int) (SearchResult, error)
}

// Classifier decides whether free text belongs to this agent's domain
type Classifier interface {
	InScope(text string) bool
}
