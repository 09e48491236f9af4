package runner

import (
	"os"
	"path/filepath"
)

// ArtifactPaths are the fixed, well-known locations of the per-domain
// comparison files. They are reused across runs, so they must be purged both
// before a session starts and after each domain is processed; two interrupted
// runs sharing a path would otherwise corrupt comparisons. Running two
// sessions concurrently with the same paths is unsupported for the same
// reason.
type ArtifactPaths struct {
	ClientOut        string
	ReferenceOut     string
	ReferenceRecheck string
}

func DefaultArtifactPaths() ArtifactPaths {
	tmp := os.TempDir()
	return ArtifactPaths{
		ClientOut:        filepath.Join(tmp, "cabot-out.txt"),
		ReferenceOut:     filepath.Join(tmp, "reference-out.txt"),
		ReferenceRecheck: filepath.Join(tmp, "reference-recheck.txt"),
	}
}

// RemoveAll deletes whichever artifacts exist. Best effort.
func (a ArtifactPaths) RemoveAll() {
	for _, p := range []string{a.ClientOut, a.ReferenceOut, a.ReferenceRecheck} {
		if p != "" {
			_ = os.Remove(p)
		}
	}
}
