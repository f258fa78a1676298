// Package proofstore persists proof-of-delivery artifacts on the local
// filesystem, one file per delivery under a deterministic path.
package proofstore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/ports"
)

// FilesystemProofStore keeps proof artifacts at <dir>/delivery_<id>.jpg.
// The path is derived from the delivery identifier only, so committing a
// retried verification overwrites the same file rather than accumulating
// copies. Artifacts are staged next to their final path and moved into
// place on commit, so a rejected verification never replaces a stored one.
type FilesystemProofStore struct {
	dir string
}

// NewFilesystemProofStore creates a store rooted at dir.
// The directory is created lazily on first stage.
func NewFilesystemProofStore(dir string) *FilesystemProofStore {
	return &FilesystemProofStore{dir: dir}
}

// Stage writes the artifact to a temporary file in the store directory.
func (s *FilesystemProofStore) Stage(id delivery.ID, artifact io.Reader) (ports.StagedProof, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating proof directory: %w", err)
	}

	f, err := os.CreateTemp(s.dir, fmt.Sprintf("delivery_%d_*.staging", id))
	if err != nil {
		return nil, fmt.Errorf("staging proof file: %w", err)
	}

	if _, err = io.Copy(f, artifact); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("writing proof file: %w", err)
	}
	if err = f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("closing proof file: %w", err)
	}

	return &stagedFile{stagingPath: f.Name(), finalPath: s.pathFor(id)}, nil
}

// Open reads back a previously committed artifact by its recorded path.
func (s *FilesystemProofStore) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func (s *FilesystemProofStore) pathFor(id delivery.ID) string {
	return filepath.Join(s.dir, fmt.Sprintf("delivery_%d.jpg", id))
}

type stagedFile struct {
	stagingPath string
	finalPath   string
	committed   bool
}

func (p *stagedFile) Path() string {
	return p.finalPath
}

// Commit renames the staged file onto the final path. Rename within one
// directory is atomic, so readers never observe a partial artifact.
func (p *stagedFile) Commit() error {
	if err := os.Rename(p.stagingPath, p.finalPath); err != nil {
		return fmt.Errorf("committing proof file: %w", err)
	}
	p.committed = true
	return nil
}

func (p *stagedFile) Discard() {
	if p.committed {
		return
	}
	_ = os.Remove(p.stagingPath)
}
