package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/jfrog/jfrog-client-go/utils/log"
)

// FileManager is a JSON-file-backed Manager, producing the stable,
// cross-run files named in spec.md §6: checksums-<type>.json for
// archives-by-checksum, builds.json for build-by-id (see fileNameFor for
// the other maps).
type FileManager struct {
	dir  string
	mu   sync.Mutex
	maps map[string]*fileMap
}

// NewFileManager roots every named map under dir, creating it if absent.
func NewFileManager(dir string) (*FileManager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errorutils.CheckError(fmt.Errorf("creating cache dir %s: %w", dir, err))
	}
	return &FileManager{dir: dir, maps: make(map[string]*fileMap)}, nil
}

func (m *FileManager) NamedMap(name string) Map {
	m.mu.Lock()
	defer m.mu.Unlock()
	fm, ok := m.maps[name]
	if ok {
		return fm
	}
	fm = &fileMap{path: filepath.Join(m.dir, fileNameFor(name)), data: make(map[string]json.RawMessage)}
	if err := fm.load(); err != nil {
		log.Warn("build-resolver: cache file unreadable, starting empty:", fm.path, err)
	}
	m.maps[name] = fm
	return fm
}

// fileNameFor maps a logical map name (optionally "name:type") to the
// on-disk filename spec.md §6 expects.
func fileNameFor(name string) string {
	parts := strings.SplitN(name, ":", 2)
	switch parts[0] {
	case MapBuildByID:
		return "builds.json"
	case MapPncBuildByID:
		return "pnc-builds.json"
	case MapArchivesByChecksum:
		if len(parts) == 2 {
			return fmt.Sprintf("checksums-%s.json", parts[1])
		}
		return "checksums.json"
	case MapRpmBuildByChecksum:
		if len(parts) == 2 {
			return fmt.Sprintf("rpm-builds-%s.json", parts[1])
		}
		return "rpm-builds.json"
	case MapPncArtifactsByCksum:
		if len(parts) == 2 {
			return fmt.Sprintf("pnc-artifacts-%s.json", parts[1])
		}
		return "pnc-artifacts.json"
	default:
		return strings.ReplaceAll(name, ":", "-") + ".json"
	}
}

type fileMap struct {
	mu   sync.RWMutex
	path string
	data map[string]json.RawMessage
}

func (f *fileMap) load() error {
	b, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, &f.data)
}

func (f *fileMap) persist() error {
	b, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, b, 0o644)
}

func (f *fileMap) Get(key string) ([]byte, bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.data[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

func (f *fileMap) Put(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = json.RawMessage(value)
	return f.persist()
}

func (f *fileMap) Keys() ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	keys := make([]string, 0, len(f.data))
	for k := range f.data {
		keys = append(keys, k)
	}
	return keys, nil
}
