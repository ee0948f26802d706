// Package cache is the typed facade over the five persistent maps the
// Resolver reads and writes (spec.md §4.2, §2). The underlying persistent
// key-value storage (the "cache manager") is an external collaborator per
// §1 — this package only depends on the narrow Manager/Map contract it
// actually uses, and ships an in-memory and a JSON-file-backed
// implementation of that contract for tests and for standalone runs.
package cache

// Map is a single named persistent key-value map: get, put, and enumerate
// raw JSON-encoded values. Reads-through and writes-through are the
// caller's (Layer's) responsibility; Map itself is just storage.
type Map interface {
	Get(key string) (value []byte, found bool, err error)
	Put(key string, value []byte) error
	Keys() ([]string, error)
}

// Manager hands out named persistent maps. A real deployment backs this
// with whatever the cache manager collaborator provides; tests and the
// reference cmd/buildresolve wiring use the in-memory or file-backed
// implementations in this package.
type Manager interface {
	NamedMap(name string) Map
}

// Names of the five logical maps listed in spec.md §2.
const (
	MapArchivesByChecksum   = "archives-by-checksum"
	MapRpmBuildByChecksum   = "rpm-build-by-checksum"
	MapBuildByID            = "build-by-id"
	MapPncArtifactsByCksum  = "pnc-artifacts-by-checksum"
	MapPncBuildByID         = "pnc-build-by-id"
)
