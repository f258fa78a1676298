package ports

import (
	"io"

	"lastmile/internal/core/domain/model/delivery"
)

// ProofStore persists proof-of-delivery artifacts (e.g. photos).
//
// Saving is two-phase so a verification that is ultimately rejected never
// replaces the artifact a successful verification stored: Stage writes the
// artifact aside, and only Commit moves it to the recorded path.
type ProofStore interface {
	// Stage writes the artifact to a temporary location and returns a
	// handle whose Path is derived deterministically from the delivery
	// identifier. Nothing is visible at that path until Commit.
	Stage(id delivery.ID, artifact io.Reader) (StagedProof, error)

	// Open reads back a previously committed artifact by its recorded path.
	Open(path string) (io.ReadCloser, error)
}

// StagedProof is a staged artifact awaiting commit.
type StagedProof interface {
	// Path is the final artifact path this handle commits to. Committing
	// again for the same delivery overwrites the previous artifact, so a
	// verification retried after a transient failure stays idempotent.
	Path() string

	// Commit atomically moves the staged artifact to Path.
	Commit() error

	// Discard drops the staged artifact. No-op after Commit, so it is
	// safe to defer unconditionally.
	Discard()
}
