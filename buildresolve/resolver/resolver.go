// Package resolver implements the Resolver orchestrator (spec.md §4.6):
// the component that drains the analyzer's checksum queue, coordinates
// batched queries across KOJI and PNC, merges results with cached entries,
// and promotes builds into the output map.
package resolver

import (
	"context"
	"fmt"
	"sync"

	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/analyzer"
	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/cache"
	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/catalog"
	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/config"
	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/gate"
	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/model"
	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/notfound"
	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/resolveerr"
	"github.com/jfrog/jfrog-client-go/utils/log"
)

// Resolver is the explicit state record described in spec.md §9
// ("Large mutable this"): outputMap, cachesHandle, notFoundBucket, pool
// config all live here, mutated only from the Resolver's own goroutine.
// Worker goroutines spawned by runBounded never touch this state directly;
// they return values that the calling goroutine folds in.
type Resolver struct {
	cfg   *config.ResolverConfig
	koji  catalog.RemoteCatalog
	pnc   catalog.PncCatalog // nil when PNC is not configured
	cache *cache.Layer
	queue analyzer.Queue

	outputMap map[model.BuildSystemKey]*model.Build
	tracker   *notfound.Tracker

	gate           *gate.Gate
	gateOnce       sync.Once
	gateErr        error

	foundChecksums    map[model.Checksum][]string
	notFoundChecksums map[model.Checksum][]string
}

// New constructs a Resolver with a fresh (NONE, 0) bucket already present
// in the output map (§3 invariant 1).
func New(cfg *config.ResolverConfig, koji catalog.RemoteCatalog, pnc catalog.PncCatalog, cacheLayer *cache.Layer, queue analyzer.Queue) *Resolver {
	tracker := notfound.New()
	return &Resolver{
		cfg:               cfg,
		koji:              koji,
		pnc:               pnc,
		cache:             cacheLayer,
		queue:             queue,
		outputMap:         map[model.BuildSystemKey]*model.Build{model.NotFoundKey: tracker.Bucket()},
		tracker:           tracker,
		foundChecksums:    map[model.Checksum][]string{},
		notFoundChecksums: map[model.Checksum][]string{},
	}
}

// OutputMap returns the live output map. Callers that need a stable
// snapshot should go through the assemble package once Run has returned.
func (r *Resolver) OutputMap() map[model.BuildSystemKey]*model.Build { return r.outputMap }

// FoundChecksums returns the checksum -> filenames index for content that
// was attributed to a real build.
func (r *Resolver) FoundChecksums() map[model.Checksum][]string { return r.foundChecksums }

// NotFoundChecksums returns the checksum -> filenames index for checksums
// no build resolved. Nested entries later swept into a resolved parent stay
// listed here; files the analyzer failed to checksum are recorded in bucket
// 0 only, not here.
func (r *Resolver) NotFoundChecksums() map[model.Checksum][]string { return r.notFoundChecksums }

// Run is the Resolver's top-level loop (§4.6 "call()"): it drains entries
// from the queue until the sentinel arrives, batching md5 checksums into a
// multimap and resolving each batch in turn. Interruption (ctx canceled)
// restores cleanly: the in-flight batch finishes and the loop exits
// without error (§5 Cancellation).
func (r *Resolver) Run(ctx context.Context) error {
	cq, ok := r.queue.(*analyzer.ChannelQueue)
	for {
		var batch []analyzer.Entry
		var sawSentinel bool
		var err error
		if ok {
			batch, sawSentinel, err = cq.DrainAvailable(ctx)
		} else {
			var e analyzer.Entry
			e, err = r.queue.Take(ctx)
			batch = []analyzer.Entry{e}
			sawSentinel = e.Kind == analyzer.EntrySentinel
		}
		if err != nil {
			if ctx.Err() != nil {
				log.Debug("build-resolver: interrupted, terminating drain loop cleanly")
				return nil
			}
			return resolveerr.Catalog("queue drain", err)
		}

		multimap := map[model.Checksum][]string{}
		var errored []string
		for _, e := range batch {
			switch e.Kind {
			case analyzer.EntryChecksum:
				if e.Checksum.Type == model.ChecksumMD5 {
					multimap[e.Checksum] = append(multimap[e.Checksum], e.Checksum.Filename)
				}
			case analyzer.EntryErrored:
				errored = append(errored, e.Filename)
			}
		}

		if len(multimap) > 0 || len(errored) > 0 {
			if err := r.resolveBatch(context.WithoutCancel(ctx), multimap, errored); err != nil {
				return err
			}
		}

		if sawSentinel {
			return nil
		}
	}
}

// resolveBatch implements §4.6's per-batch dispatch: PNC first when
// configured, with the checksums findBuildsPnc returns as unresolved falling
// through to findBuilds against KOJI; otherwise findBuilds runs directly.
func (r *Resolver) resolveBatch(ctx context.Context, multimap map[model.Checksum][]string, errored []string) error {
	remaining := multimap
	if r.pnc != nil {
		var err error
		remaining, err = r.findBuildsPnc(ctx, multimap)
		if err != nil {
			return err
		}
	}
	if len(remaining) > 0 {
		if err := r.findBuilds(ctx, remaining); err != nil {
			return err
		}
	}
	for _, filename := range errored {
		r.tracker.AddWithoutBuild(model.Checksum{Filename: filename}, []string{filename})
	}
	r.tracker.Sweep(r.outputMap)
	return nil
}

func (r *Resolver) ensureGate(ctx context.Context) (*gate.Gate, error) {
	r.gateOnce.Do(func() {
		catalogs := []catalog.RemoteCatalog{r.koji}
		if r.pnc != nil {
			catalogs = append(catalogs, r.pnc)
		}
		exts, err := gate.ResolveExtensions(ctx, catalogs, r.cfg.ArchiveExtensions)
		if err != nil {
			r.gateErr = err
			return
		}
		r.gate = gate.New(exts)
	})
	return r.gate, r.gateErr
}

// inOutputMap adapts the output map to selector.InOutputMap.
func (r *Resolver) inOutputMap(id int) (*model.Build, bool) {
	b, ok := r.outputMap[model.BuildSystemKey{System: r.koji.System(), ID: id}]
	return b, ok
}

func (r *Resolver) markFound(checksum model.Checksum, filenames []string) {
	r.foundChecksums[checksum] = append(r.foundChecksums[checksum], filenames...)
	delete(r.notFoundChecksums, checksum)
	r.tracker.Promote(checksum)
}

func (r *Resolver) markNotFound(checksum model.Checksum, filenames []string) {
	r.notFoundChecksums[checksum] = append(r.notFoundChecksums[checksum], filenames...)
	r.tracker.AddWithoutBuild(checksum, filenames)
}

func fatalf(format string, args ...interface{}) error {
	return resolveerr.Catalog("resolver", fmt.Errorf(format, args...))
}
