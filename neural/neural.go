// Package neural implements component H: the opaque neural scorer
// boundary. Per spec.md §4.H the engine never blocks on this producer —
// the session only ever drives it through its async generation protocol
// (see kanaime/session) — and it is the one component spec.md explicitly
// treats as a pluggable external collaborator.
package neural

import "context"

// Scorer is the opaque neural backend: ghost-text completion and
// candidate reranking, both driven off-thread by a session's worker pool.
type Scorer interface {
	// GhostText returns a completion suggestion for context, truncated to
	// at most maxTokens units of the backend's own choosing (chained
	// continuation surfaces, for the local default backend).
	GhostText(ctx context.Context, context string, maxTokens int) (string, error)
	// RerankCandidates returns the neural backend's own ranked surface
	// list P' for reading given the preceding committed context (spec.md
	// §4.H). merge.Merge does not consult a Scorer, so P' is not part of
	// the merged candidate list.
	RerankCandidates(ctx context.Context, context, reading string, max int) ([]string, error)
}
