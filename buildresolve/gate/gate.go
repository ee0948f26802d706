// Package gate implements ChecksumGate (spec.md §4.1): the first filter
// every incoming checksum passes through before it is eligible for cache
// lookup or remote query.
package gate

import (
	"context"
	"fmt"
	"strings"

	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/catalog"
	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/model"
	"github.com/jfrog/jfrog-client-go/utils/log"
)

const rpmExtension = "rpm"

// Gate filters (Checksum, filenames) entries by extension and empty-digest.
type Gate struct {
	extensions map[string]struct{}
}

// New builds a Gate from an already-resolved, lowercased extension list (no
// leading dots). ".rpm" is always implicitly accepted regardless of this
// list (§4.1).
func New(extensions []string) *Gate {
	g := &Gate{extensions: make(map[string]struct{}, len(extensions))}
	for _, ext := range extensions {
		g.extensions[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}
	return g
}

// ResolveExtensions computes the effective extension whitelist: the union
// of every catalog's known archive-type extensions with the configured
// list; an empty configured list defaults to every extension the catalogs
// know (§4.1).
func ResolveExtensions(ctx context.Context, catalogs []catalog.RemoteCatalog, configured []string) ([]string, error) {
	known := map[string]struct{}{}
	for _, c := range catalogs {
		exts, err := c.ArchiveExtensions(ctx)
		if err != nil {
			return nil, fmt.Errorf("build-resolver: fetching archive extensions from %s: %w", c.System(), err)
		}
		for _, e := range exts {
			known[strings.ToLower(strings.TrimPrefix(e, "."))] = struct{}{}
		}
	}
	if len(configured) == 0 {
		result := make([]string, 0, len(known))
		for e := range known {
			result = append(result, e)
		}
		return result, nil
	}
	for _, e := range configured {
		known[strings.ToLower(strings.TrimPrefix(e, "."))] = struct{}{}
	}
	result := make([]string, 0, len(known))
	for e := range known {
		result = append(result, e)
	}
	return result, nil
}

// Accept reports whether checksum should pass the gate, and whether it
// belongs to the RPM partition rather than the archive partition.
//
// shouldSkipChecksum in the source this engine generalizes always returns
// false after logging, in both the skip and keep paths (§9 Open
// Questions): treat Accept's boolean purely as a filter, not as a signal
// the caller branches deeply on beyond logging the empty-digest case.
func (g *Gate) Accept(checksum model.Checksum, filenames []string) (accept, isRpm bool) {
	if model.IsEmptyDigest(checksum.Type, checksum.Value) {
		log.Debug("build-resolver: skipping empty digest for", checksum.Filename)
		return false, false
	}
	for _, f := range filenames {
		lower := strings.ToLower(f)
		if strings.HasSuffix(lower, "."+rpmExtension) {
			return true, true
		}
		if ext, ok := extensionOf(lower); ok {
			if _, known := g.extensions[ext]; known {
				return true, false
			}
		}
	}
	return false, false
}

func extensionOf(filename string) (string, bool) {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return "", false
	}
	return filename[idx+1:], true
}

// Partition splits a multimap of checksum -> filenames into RPM and archive
// entries according to Accept, logging each skip.
func (g *Gate) Partition(multimap map[model.Checksum][]string) (rpmEntries, archiveEntries map[model.Checksum][]string) {
	rpmEntries = make(map[model.Checksum][]string)
	archiveEntries = make(map[model.Checksum][]string)
	for checksum, filenames := range multimap {
		accept, isRpm := g.Accept(checksum, filenames)
		if !accept {
			continue
		}
		if isRpm {
			rpmEntries[checksum] = filenames
		} else {
			archiveEntries[checksum] = filenames
		}
	}
	return rpmEntries, archiveEntries
}
