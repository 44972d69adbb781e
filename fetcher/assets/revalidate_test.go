package assets

import (
	"context"
	"testing"

	"lolbrowser/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRevalidate(t *testing.T) {
	ctx := context.Background()
	store := new(testutil.MockKeyValueStore)
	store.On("Set", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.Anything).Return(nil)

	dm, fetcher := setupTestManager(store)

	// Only Aatrox has a detail document, Wukong and Ahri fail.
	result, err := dm.Revalidate(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, RevalidateResult{Champions: 1, Items: 5, Failed: 2}, result)

	// Items are served from the revalidated details without refetching the catalog.
	assert.Equal(t, 1, fetcher.Calls(itemCatalogURL))
	assert.True(t, dm.HasDetail(KindItem, "1001"))
	assert.True(t, dm.HasDetail(KindChampion, "Aatrox"))
	assert.Equal(t, "first", dm.ChampionLore(ctx, "Aatrox"))

	store.AssertNumberOfCalls(t, "Set", 6)
	store.AssertCalled(t, "Set", ctx, "ddragon:item:14.14.1:en_US:1001", mock.Anything, mock.Anything)
}

func TestRevalidateCatalogFailure(t *testing.T) {
	dm, fetcher := setupTestManager(nil)
	fetcher.SetError(itemCatalogURL)

	_, err := dm.Revalidate(context.Background(), 4)
	assert.Error(t, err)
	assert.Zero(t, fetcher.Calls(aatroxDetailURL))
}
