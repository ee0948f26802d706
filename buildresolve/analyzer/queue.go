// Package analyzer declares the contract the distribution analyzer (an
// external collaborator per spec.md §1) uses to hand checksums to the
// Resolver: a blocking queue of Checksum records, terminated by a sentinel
// entry of kind EntrySentinel (§6 "Input queue"), plus a side channel for files
// the analyzer itself failed to checksum (§4.6 step j).
package analyzer

import (
	"context"

	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/model"
)

// EntryKind discriminates what a queue Entry carries.
type EntryKind int

const (
	// EntryChecksum carries a resolved Checksum record.
	EntryChecksum EntryKind = iota
	// EntryErrored carries a filename the analyzer could not checksum.
	EntryErrored
	// EntrySentinel signals end-of-stream; the queue is drained no further.
	EntrySentinel
)

// Entry is a single item off the analyzer's queue.
type Entry struct {
	Kind     EntryKind
	Checksum model.Checksum
	Filename string
}

// Queue is the blocking queue contract the Resolver drains.
type Queue interface {
	// Take blocks until an entry is available or ctx is done.
	Take(ctx context.Context) (Entry, error)
}

// ChannelQueue is a minimal in-memory Queue implementation, backing tests
// and the cmd/buildresolve reference wiring. Production deployments back
// Queue with whatever transport the distribution analyzer actually uses.
type ChannelQueue struct {
	entries chan Entry
}

// NewChannelQueue creates a ChannelQueue with the given buffer size.
func NewChannelQueue(buffer int) *ChannelQueue {
	return &ChannelQueue{entries: make(chan Entry, buffer)}
}

// PushChecksum enqueues a resolved checksum record.
func (q *ChannelQueue) PushChecksum(c model.Checksum) {
	q.entries <- Entry{Kind: EntryChecksum, Checksum: c}
}

// PushErrored enqueues a filename the analyzer failed to checksum.
func (q *ChannelQueue) PushErrored(filename string) {
	q.entries <- Entry{Kind: EntryErrored, Filename: filename}
}

// Close enqueues the sentinel marking end-of-stream. No further pushes are
// valid after Close.
func (q *ChannelQueue) Close() {
	q.entries <- Entry{Kind: EntrySentinel}
}

// Take implements Queue.
func (q *ChannelQueue) Take(ctx context.Context) (Entry, error) {
	select {
	case e := <-q.entries:
		return e, nil
	case <-ctx.Done():
		return Entry{}, ctx.Err()
	}
}

// DrainAvailable pulls every entry currently buffered without blocking,
// stopping at the first sentinel (which is returned as sawSentinel=true)
// or when the channel is momentarily empty. The Resolver uses this to
// batch a burst of checksums per loop iteration (§4.6, §5).
func (q *ChannelQueue) DrainAvailable(ctx context.Context) (batch []Entry, sawSentinel bool, err error) {
	first, err := q.Take(ctx)
	if err != nil {
		return nil, false, err
	}
	batch = append(batch, first)
	if first.Kind == EntrySentinel {
		return batch, true, nil
	}
	for {
		select {
		case e := <-q.entries:
			batch = append(batch, e)
			if e.Kind == EntrySentinel {
				return batch, true, nil
			}
		default:
			return batch, false, nil
		}
	}
}
