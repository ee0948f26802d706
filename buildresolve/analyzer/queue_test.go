package analyzer

import (
	"context"
	"testing"
	"time"

	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/model"
	"github.com/stretchr/testify/assert"
)

func TestChannelQueueTakeReturnsPushedChecksum(t *testing.T) {
	q := NewChannelQueue(1)
	q.PushChecksum(model.Checksum{Filename: "a.jar"})

	entry, err := q.Take(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, EntryChecksum, entry.Kind)
	assert.Equal(t, "a.jar", entry.Checksum.Filename)
}

func TestChannelQueueTakeReturnsErroredFilename(t *testing.T) {
	q := NewChannelQueue(1)
	q.PushErrored("broken.jar")

	entry, err := q.Take(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, EntryErrored, entry.Kind)
	assert.Equal(t, "broken.jar", entry.Filename)
}

func TestChannelQueueTakeReturnsSentinelOnClose(t *testing.T) {
	q := NewChannelQueue(1)
	q.Close()

	entry, err := q.Take(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, EntrySentinel, entry.Kind)
}

func TestChannelQueueTakeRespectsContextCancellation(t *testing.T) {
	q := NewChannelQueue(0)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := q.Take(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDrainAvailablePullsBufferedEntriesWithoutSentinel(t *testing.T) {
	q := NewChannelQueue(4)
	q.PushChecksum(model.Checksum{Filename: "a.jar"})
	q.PushChecksum(model.Checksum{Filename: "b.jar"})

	batch, sawSentinel, err := q.DrainAvailable(context.Background())

	assert.NoError(t, err)
	assert.False(t, sawSentinel)
	assert.Len(t, batch, 2)
	assert.Equal(t, "a.jar", batch[0].Checksum.Filename)
	assert.Equal(t, "b.jar", batch[1].Checksum.Filename)
}

func TestDrainAvailableStopsAtSentinel(t *testing.T) {
	q := NewChannelQueue(4)
	q.PushChecksum(model.Checksum{Filename: "a.jar"})
	q.Close()
	q.PushChecksum(model.Checksum{Filename: "never-seen.jar"})

	batch, sawSentinel, err := q.DrainAvailable(context.Background())

	assert.NoError(t, err)
	assert.True(t, sawSentinel)
	assert.Len(t, batch, 2)
	assert.Equal(t, EntryChecksum, batch[0].Kind)
	assert.Equal(t, EntrySentinel, batch[1].Kind)
}
