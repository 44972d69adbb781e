package assets

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// RevalidateResult counts what a revalidation refreshed.
type RevalidateResult struct {
	Champions int
	Items     int
	Failed    int
}

// Revalidate refreshes both catalogs and every detail document, writing them through to the store.
// Champion details are fetched by workerCount workers, item details come from the catalog itself.
func (dm *DataManager) Revalidate(ctx context.Context, workerCount int) (RevalidateResult, error) {
	var result RevalidateResult

	if !dm.FetchChampionData(ctx) {
		return result, errors.New("couldn't fetch the champion catalog")
	}
	if !dm.FetchItemData(ctx) {
		return result, errors.New("couldn't fetch the item catalog")
	}

	if workerCount <= 0 {
		workerCount = 1
	}

	dm.mu.RLock()
	ids := append([]string(nil), dm.champions.ids...)
	dm.mu.RUnlock()

	var wg sync.WaitGroup
	var mu sync.Mutex

	// Channel for the champion ids.
	championIDs := make(chan string, len(ids))

	// Start workers.
	for range workerCount {
		go func() {
			for id := range championIDs {
				ok := dm.FetchEntityDetail(ctx, KindChampion, id)
				mu.Lock()
				if ok {
					result.Champions++
				} else {
					result.Failed++
				}
				mu.Unlock()
				wg.Done()
			}
		}()
	}

	// Enqueue tasks.
	for _, id := range ids {
		wg.Add(1)
		championIDs <- id
	}

	close(championIDs)
	wg.Wait()

	result.Items = dm.cacheCatalogDetails(ctx, KindItem)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("revalidation interrupted: %w", err)
	}
	return result, nil
}

// Use the catalog entries as the detail documents, for kinds whose catalog is already complete.
func (dm *DataManager) cacheCatalogDetails(ctx context.Context, kind Kind) int {
	dm.mu.Lock()
	c := dm.catalogOf(kind)
	entries := make(map[string]Document, len(c.entries))
	for id, doc := range c.entries {
		c.details[id] = doc
		entries[id] = doc
	}
	dm.mu.Unlock()

	for id, doc := range entries {
		dm.storeDetail(ctx, kind, id, doc)
	}
	return len(entries)
}
