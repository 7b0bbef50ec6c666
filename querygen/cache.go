package querygen

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	typedboard "github.com/GauBen/typed-board"
)

// manifestName is the cache manifest written next to the generated files.
const manifestName = ".typedboard.cache"

// manifest is a content-addressed record of one generation run. When the
// artifact and every operation document hash to the same values as the
// previous run, and the previously generated files are still present,
// generation is skipped.
type manifest struct {
	Schema  string            `msgpack:"schema"`  // sha256 of the artifact
	Queries map[string]string `msgpack:"queries"` // document path -> sha256
	Files   []string          `msgpack:"files"`   // generated file names
}

func newManifest(schemaSrc []byte, docs map[string][]byte) *manifest {
	m := &manifest{
		Schema:  contentSum(schemaSrc),
		Queries: make(map[string]string, len(docs)),
	}
	for path, src := range docs {
		m.Queries[path] = contentSum(src)
	}
	return m
}

// matches reports whether the manifest stored in target describes the same
// inputs, returning the previously generated file names on a hit. A missing
// or unreadable manifest is treated as a miss, never an error.
func (m *manifest) matches(target string) ([]string, bool) {
	data, err := os.ReadFile(filepath.Join(target, manifestName))
	if err != nil {
		return nil, false
	}
	var prev manifest
	if err := msgpack.Unmarshal(data, &prev); err != nil {
		return nil, false
	}
	if prev.Schema != m.Schema || len(prev.Queries) != len(m.Queries) {
		return nil, false
	}
	for path, sum := range m.Queries {
		if prev.Queries[path] != sum {
			return nil, false
		}
	}
	for _, name := range prev.Files {
		if _, err := os.Stat(filepath.Join(target, name)); err != nil {
			return nil, false
		}
	}
	return prev.Files, true
}

// write persists the manifest into the target directory.
func (m *manifest) write(target string) error {
	data, err := msgpack.Marshal(m)
	if err != nil {
		return typedboard.NewGenerateError("", "encode cache manifest", err)
	}
	if err := os.WriteFile(filepath.Join(target, manifestName), data, 0o644); err != nil {
		return typedboard.NewGenerateError("", "write cache manifest", err)
	}
	return nil
}

func contentSum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
