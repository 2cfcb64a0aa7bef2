package box2d

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Contacts are handed to workers in chunks of this size.
const b2_narrowPhaseChunkSize = 64

/// Updates the manifolds of many contacts in parallel. Each contact is owned
/// by exactly one worker per update, so the per pair cache needs no locking.
type B2NarrowPhase struct {
	// Maximum number of concurrent workers. Zero or less uses GOMAXPROCS.
	Workers int

	// Contacts per work item. Zero or less uses a default.
	ChunkSize int
}

/// Totals for one narrow phase update.
type B2NarrowPhaseStats struct {
	ContactCount  int
	TouchingCount int
	BeginCount    int
	EndCount      int
	PointCount    int
}

func MakeB2NarrowPhase(workers int) B2NarrowPhase {
	return B2NarrowPhase{
		Workers:   workers,
		ChunkSize: b2_narrowPhaseChunkSize,
	}
}

func (stats *B2NarrowPhaseStats) add(other B2NarrowPhaseStats) {
	stats.ContactCount += other.ContactCount
	stats.TouchingCount += other.TouchingCount
	stats.BeginCount += other.BeginCount
	stats.EndCount += other.EndCount
	stats.PointCount += other.PointCount
}

func b2UpdateContactRange(contacts []*B2Contact) B2NarrowPhaseStats {
	var stats B2NarrowPhaseStats
	for _, contact := range contacts {
		if contact == nil {
			continue
		}

		B2ContactUpdate(contact)

		stats.ContactCount++
		stats.PointCount += contact.Manifold.PointCount
		if contact.IsTouching() {
			stats.TouchingCount++
		}
		if contact.BeganTouching() {
			stats.BeginCount++
		}
		if contact.EndedTouching() {
			stats.EndCount++
		}
	}
	return stats
}

/// Update every contact. The same contact must not appear twice in the
/// slice. Cancellation is checked before each chunk starts; chunks that
/// already started run to completion.
func (np B2NarrowPhase) Update(ctx context.Context, contacts []*B2Contact) (B2NarrowPhaseStats, error) {
	workers := np.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	chunkSize := np.ChunkSize
	if chunkSize <= 0 {
		chunkSize = b2_narrowPhaseChunkSize
	}

	chunkCount := (len(contacts) + chunkSize - 1) / chunkSize
	chunkStats := make([]B2NarrowPhaseStats, chunkCount)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < chunkCount; i++ {
		if err := gctx.Err(); err != nil {
			break
		}

		lower := i * chunkSize
		upper := lower + chunkSize
		if upper > len(contacts) {
			upper = len(contacts)
		}

		index := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			chunkStats[index] = b2UpdateContactRange(contacts[lower:upper])
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	var stats B2NarrowPhaseStats
	for _, s := range chunkStats {
		stats.add(s)
	}

	return stats, err
}
