package assets

import (
	"context"
	"maps"
	"slices"
	"strings"

	"lolbrowser/pkg/models/item"
)

// FetchItemData fetches the item catalog.
func (dm *DataManager) FetchItemData(ctx context.Context) bool {
	return dm.FetchCatalog(ctx, KindItem)
}

// FetchSpecificItemData refreshes the detail of a single item, always hitting the network.
func (dm *DataManager) FetchSpecificItemData(ctx context.Context, itemID string) bool {
	return dm.FetchEntityDetail(ctx, KindItem, itemID)
}

// ItemNames returns the item display names, in the catalog order.
func (dm *DataManager) ItemNames() []string {
	return dm.names(KindItem)
}

// ItemID returns the id of a item display name.
func (dm *DataManager) ItemID(itemName string) string {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.items.nameToID[itemName]
}

// ItemsByTag returns the ids of every item carrying the tag, in the catalog order.
// Tags are compared ignoring case and surrounding spaces.
func (dm *DataManager) ItemsByTag(tag string) []string {
	return dm.ItemsMatching([]string{tag}, nil)
}

// ItemsMatching returns the ids of the items carrying at least one of anyOf and
// every tag of allOf, in the catalog order. Empty anyOf matches every item.
func (dm *DataManager) ItemsMatching(anyOf, allOf []string) []string {
	wantAny := normalizeTags(anyOf)
	wantAll := normalizeTags(allOf)
	result := []string{}
	if len(wantAny) == 0 && len(wantAll) == 0 {
		return result
	}

	dm.mu.RLock()
	defer dm.mu.RUnlock()

	for _, id := range dm.items.ids {
		tags := normalizeTags(getStringSliceOrDefault(dm.items.entries[id], "tags"))
		if len(wantAny) > 0 && !slices.ContainsFunc(wantAny, func(t string) bool { return slices.Contains(tags, t) }) {
			continue
		}
		if !slices.ContainsFunc(wantAll, func(t string) bool { return !slices.Contains(tags, t) }) {
			result = append(result, id)
		}
	}
	return result
}

// Normalized tags, blank ones are dropped.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if t := normalizeTag(tag); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// ItemName returns the display name of a item id.
func (dm *DataManager) ItemName(itemID string) string {
	return getStringOrDefault(dm.entry(KindItem, itemID), "name")
}

// ItemDescription returns the description of a item, with the Data Dragon markup.
func (dm *DataManager) ItemDescription(ctx context.Context, itemID string) string {
	return getStringOrDefault(dm.itemDetail(ctx, itemID), "description")
}

// ItemPlaintext returns the one line summary of a item.
func (dm *DataManager) ItemPlaintext(ctx context.Context, itemID string) string {
	return getStringOrDefault(dm.itemDetail(ctx, itemID), "plaintext")
}

// ItemBuildsFrom returns the ids of the components of a item.
func (dm *DataManager) ItemBuildsFrom(ctx context.Context, itemID string) []string {
	return getStringSliceOrDefault(dm.itemDetail(ctx, itemID), "from")
}

// ItemBuildsInto returns the ids of the items built from this one.
func (dm *DataManager) ItemBuildsInto(ctx context.Context, itemID string) []string {
	return getStringSliceOrDefault(dm.itemDetail(ctx, itemID), "into")
}

// ItemCost returns the total gold cost of a item.
func (dm *DataManager) ItemCost(ctx context.Context, itemID string) int {
	return dm.ItemShopInfo(ctx, itemID).Total
}

// ItemSellPrice returns the gold received when selling the item.
func (dm *DataManager) ItemSellPrice(ctx context.Context, itemID string) int {
	return dm.ItemShopInfo(ctx, itemID).Sell
}

// IsItemPurchasable reports if the item can be bought on the shop.
func (dm *DataManager) IsItemPurchasable(ctx context.Context, itemID string) bool {
	return dm.ItemShopInfo(ctx, itemID).Purchasable
}

// ItemShopInfo returns the gold block of a item.
func (dm *DataManager) ItemShopInfo(ctx context.Context, itemID string) item.Gold {
	gold := getMapOrDefault(dm.itemDetail(ctx, itemID), "gold")
	return item.Gold{
		Base:        int(getFloatOrDefault(gold, "base")),
		Total:       int(getFloatOrDefault(gold, "total")),
		Sell:        int(getFloatOrDefault(gold, "sell")),
		Purchasable: getBoolOrDefault(gold, "purchasable"),
	}
}

// ItemTags returns the tags of a item, as stored on the source.
func (dm *DataManager) ItemTags(itemID string) []string {
	return getStringSliceOrDefault(dm.entry(KindItem, itemID), "tags")
}

// ItemStats returns the stat modifiers of a item, like FlatMovementSpeedMod.
func (dm *DataManager) ItemStats(ctx context.Context, itemID string) map[string]float64 {
	stats := map[string]float64{}
	for name, value := range getMapOrDefault(dm.itemDetail(ctx, itemID), "stats") {
		if f, ok := value.(float64); ok {
			stats[name] = f
		}
	}
	return stats
}

// ItemData returns a copy of the raw document of a item.
// Nested values are shared and must not be changed.
func (dm *DataManager) ItemData(ctx context.Context, itemID string) Document {
	doc := dm.itemDetail(ctx, itemID)
	if doc == nil {
		return Document{}
	}
	return maps.Clone(doc)
}

// Item returns the typed detail of a item.
func (dm *DataManager) Item(ctx context.Context, itemID string) (*item.Item, bool) {
	doc := dm.itemDetail(ctx, itemID)
	if doc == nil {
		return nil, false
	}

	it := &item.Item{}
	if err := decodeDocument(doc, it); err != nil {
		dm.logger.Warnf("Invalid detail for item %s: %v", itemID, err)
		return nil, false
	}
	it.ID = itemID
	return it, true
}

// Get the detail of a item.
// The bulk item document is already complete, so a memory or store miss is
// filled from the catalog entry instead of downloading the catalog again.
// FetchSpecificItemData is still available to force a refresh.
func (dm *DataManager) itemDetail(ctx context.Context, itemID string) Document {
	if itemID == "" {
		return nil
	}

	dm.mu.RLock()
	doc, exists := dm.items.details[itemID]
	entry := dm.items.entries[itemID]
	dm.mu.RUnlock()
	if exists {
		return doc
	}

	if doc := dm.loadDetail(ctx, KindItem, itemID); doc != nil {
		dm.mu.Lock()
		dm.items.details[itemID] = doc
		dm.mu.Unlock()
		return doc
	}

	if entry == nil {
		return nil
	}

	dm.mu.Lock()
	dm.items.details[itemID] = entry
	dm.mu.Unlock()
	return entry
}
