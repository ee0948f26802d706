package cache

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jfrog/jfrog-client-go/utils/log"
	"gopkg.in/yaml.v3"
)

// runManifest is a small YAML sidecar written next to the JSON cache files,
// recording which named maps a run touched and how many keys each holds —
// useful for diagnosing why a rerun did or didn't hit cache.
type runManifest struct {
	RunID string         `yaml:"runId"`
	Maps  map[string]int `yaml:"maps"`
}

// WriteManifest writes a run-manifest.yaml under dir summarizing every named
// map manager currently holds. Failures are logged and otherwise ignored:
// the manifest is a diagnostic aid, not part of the cache's correctness
// contract.
func WriteManifest(dir string, manager Manager, runID string, mapNames []string) {
	fm, ok := manager.(*FileManager)
	if !ok {
		return
	}
	entry := runManifest{RunID: runID, Maps: map[string]int{}}
	for _, name := range mapNames {
		keys, err := fm.NamedMap(name).Keys()
		if err != nil {
			log.Warn(fmt.Sprintf("build-resolver[%s]: cannot list keys for manifest map %s: %v", runID, name, err))
			continue
		}
		entry.Maps[name] = len(keys)
	}

	out, err := yaml.Marshal(entry)
	if err != nil {
		log.Warn(fmt.Sprintf("build-resolver[%s]: cannot encode run manifest: %v", runID, err))
		return
	}
	path := filepath.Join(dir, "run-manifest.yaml")
	if err := os.WriteFile(path, out, 0o644); err != nil {
		log.Warn(fmt.Sprintf("build-resolver[%s]: cannot write run manifest %s: %v", runID, path, err))
	}
}
