package assets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"lolbrowser/fetcher/requests"
	"lolbrowser/pkg/logger"
	"lolbrowser/pkg/redis"

	"golang.org/x/sync/singleflight"
)

// KeyValueStore is a second level cache for the detail documents, shared between runs.
// The redis client already satisfies it.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// catalog holds one of the bulk documents and the indexes built from it.
type catalog struct {
	entries  map[string]Document
	ids      []string
	names    []string
	nameToID map[string]string
	details  map[string]Document
}

func newCatalog() *catalog {
	return &catalog{
		entries:  make(map[string]Document),
		names:    []string{},
		nameToID: make(map[string]string),
		details:  make(map[string]Document),
	}
}

// DataManager fetches the champion and item catalogs and serves typed accessors over them.
// Every accessor returns a zero value when the name/id or the field is unknown.
type DataManager struct {
	fetcher  requests.Fetcher
	logger   *logger.NewLogger
	store    KeyValueStore
	storeTTL time.Duration

	baseURL  string
	version  string
	language string

	mu        sync.RWMutex
	champions *catalog
	items     *catalog

	// Coalesces the store and network loads of a detail.
	group singleflight.Group
}

// DataManagerDeps is the dependency list for the data manager.
type DataManagerDeps struct {
	Fetcher  requests.Fetcher
	Logger   *logger.NewLogger
	Store    KeyValueStore
	StoreTTL time.Duration

	BaseURL  string
	Version  string
	Language string
}

// NewDataManager creates a empty data manager, the catalogs must be fetched before use.
func NewDataManager(deps *DataManagerDeps) *DataManager {
	baseURL := deps.BaseURL
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &DataManager{
		fetcher:   deps.Fetcher,
		logger:    deps.Logger,
		store:     deps.Store,
		storeTTL:  deps.StoreTTL,
		baseURL:   baseURL,
		version:   deps.Version,
		language:  deps.Language,
		champions: newCatalog(),
		items:     newCatalog(),
	}
}

// Version of the Data Dragon data being served.
func (dm *DataManager) Version() string {
	return dm.version
}

// Url of a bulk catalog document.
func (dm *DataManager) catalogURL(kind Kind) (string, error) {
	switch kind {
	case KindChampion:
		return fmt.Sprintf("%scdn/%s/data/%s/champion.json", dm.baseURL, dm.version, dm.language), nil
	case KindItem:
		return fmt.Sprintf("%scdn/%s/data/%s/item.json", dm.baseURL, dm.version, dm.language), nil
	default:
		return "", ErrUnknownKind
	}
}

// Url of a single entity detail document.
// Items don't have a per item document, so the catalog is used.
func (dm *DataManager) detailURL(kind Kind, id string) (string, error) {
	switch kind {
	case KindChampion:
		return fmt.Sprintf("%scdn/%s/data/%s/champion/%s.json", dm.baseURL, dm.version, dm.language, id), nil
	case KindItem:
		return dm.catalogURL(KindItem)
	default:
		return "", ErrUnknownKind
	}
}

// Get the catalog of a kind. Must be called with the lock held.
func (dm *DataManager) catalogOf(kind Kind) *catalog {
	if kind == KindChampion {
		return dm.champions
	}
	return dm.items
}

// FetchCatalog fetches a bulk catalog and replaces the current one.
// On any failure the previous state is kept and false is returned.
func (dm *DataManager) FetchCatalog(ctx context.Context, kind Kind) bool {
	url, err := dm.catalogURL(kind)
	if err != nil {
		dm.logger.Errorf("Can't fetch the catalog: %v", err)
		return false
	}

	body, err := dm.fetcher.Get(ctx, url)
	if err != nil {
		dm.logger.Errorf("Couldn't get the %s catalog: %v", kind, err)
		return false
	}

	ids, entries, err := decodeOrderedCatalog(body)
	if err != nil {
		dm.logger.Errorf("Couldn't parse the %s catalog: %v", kind, err)
		return false
	}

	next := newCatalog()
	next.entries = entries
	next.ids = ids
	for _, id := range ids {
		name := getStringOrDefault(entries[id], "name")
		if name == "" {
			name = id
		}

		// Names must be unique, the first entry wins.
		if prev, exists := next.nameToID[name]; exists {
			dm.logger.Warnf("Duplicated %s name %q: keeping %s, ignoring %s", kind, name, prev, id)
			continue
		}
		next.names = append(next.names, name)
		next.nameToID[name] = id
	}

	dm.mu.Lock()
	// The detail cache survives a catalog refresh.
	next.details = dm.catalogOf(kind).details
	if kind == KindChampion {
		dm.champions = next
	} else {
		dm.items = next
	}
	dm.mu.Unlock()

	dm.logger.Infof("Loaded %d %s entries from Data Dragon (v%s)", len(ids), kind, dm.version)
	return true
}

// FetchEntityDetail always fetches the detail document of a entity and overwrites the cached one.
func (dm *DataManager) FetchEntityDetail(ctx context.Context, kind Kind, id string) bool {
	doc, err := dm.fetchDetail(ctx, kind, id)
	if err != nil {
		dm.logger.Errorf("Couldn't get the %s %s detail: %v", kind, id, err)
		return false
	}

	dm.mu.Lock()
	dm.catalogOf(kind).details[id] = doc
	dm.mu.Unlock()

	dm.storeDetail(ctx, kind, id, doc)
	return true
}

func (dm *DataManager) fetchDetail(ctx context.Context, kind Kind, id string) (Document, error) {
	if id == "" {
		return nil, errors.New("empty id")
	}

	url, err := dm.detailURL(kind, id)
	if err != nil {
		return nil, err
	}

	var data fullCatalog
	if err := requests.GetJSON(ctx, dm.fetcher, url, &data); err != nil {
		return nil, err
	}

	doc, ok := data.Data[id]
	if !ok || doc == nil {
		return nil, fmt.Errorf("invalid data format for %s: %s", kind, id)
	}
	return doc, nil
}

// Get a detail document, first from memory, then from the store, and only then from the network.
func (dm *DataManager) detail(ctx context.Context, kind Kind, id string) Document {
	if id == "" {
		return nil
	}

	dm.mu.RLock()
	doc, exists := dm.catalogOf(kind).details[id]
	dm.mu.RUnlock()
	if exists {
		return doc
	}

	flight := context.WithoutCancel(ctx)
	ch := dm.group.DoChan(fmt.Sprintf("%s:%s", kind, id), func() (any, error) {
		dm.mu.RLock()
		doc, exists := dm.catalogOf(kind).details[id]
		dm.mu.RUnlock()
		if exists {
			return doc, nil
		}

		if doc := dm.loadDetail(flight, kind, id); doc != nil {
			dm.mu.Lock()
			dm.catalogOf(kind).details[id] = doc
			dm.mu.Unlock()
			return doc, nil
		}

		if !dm.FetchEntityDetail(flight, kind, id) {
			return Document(nil), nil
		}

		dm.mu.RLock()
		defer dm.mu.RUnlock()
		return dm.catalogOf(kind).details[id], nil
	})

	select {
	case <-ctx.Done():
		return nil
	case res := <-ch:
		doc, _ := res.Val.(Document)
		return doc
	}
}

// HasDetail reports if the detail of a entity is already cached in memory.
func (dm *DataManager) HasDetail(kind Kind, id string) bool {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	_, exists := dm.catalogOf(kind).details[id]
	return exists
}

// Get the summary entry of the catalog.
func (dm *DataManager) entry(kind Kind, id string) Document {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.catalogOf(kind).entries[id]
}

// Resolve a display name, or a id, to the id.
func (dm *DataManager) resolve(kind Kind, nameOrID string) (string, bool) {
	dm.mu.RLock()
	defer dm.mu.RUnlock()

	c := dm.catalogOf(kind)
	if id, ok := c.nameToID[nameOrID]; ok {
		return id, true
	}
	if _, ok := c.entries[nameOrID]; ok {
		return nameOrID, true
	}
	return "", false
}

// Copy of the name list of a catalog, in source order.
func (dm *DataManager) names(kind Kind) []string {
	dm.mu.RLock()
	defer dm.mu.RUnlock()

	names := dm.catalogOf(kind).names
	out := make([]string, len(names))
	copy(out, names)
	return out
}

func (dm *DataManager) storeKey(kind Kind, id string) string {
	prefix := championPrefix
	if kind == KindItem {
		prefix = itemPrefix
	}
	return fmt.Sprintf("%s%s:%s:%s", prefix, dm.version, dm.language, id)
}

func (dm *DataManager) loadDetail(ctx context.Context, kind Kind, id string) Document {
	if dm.store == nil {
		return nil
	}

	raw, err := dm.store.Get(ctx, dm.storeKey(kind, id))
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			dm.logger.Warnf("Can't read the %s %s from the store: %v", kind, id, err)
		}
		return nil
	}

	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		dm.logger.Warnf("Can't parse the stored %s %s: %v", kind, id, err)
		return nil
	}
	return doc
}

func (dm *DataManager) storeDetail(ctx context.Context, kind Kind, id string, doc Document) {
	if dm.store == nil {
		return
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		dm.logger.Warnf("Can't convert the %s %s back to json: %v", kind, id, err)
		return
	}
	if err := dm.store.Set(ctx, dm.storeKey(kind, id), string(raw), dm.storeTTL); err != nil {
		dm.logger.Warnf("Can't set the %s %s on the store: %v", kind, id, err)
	}
}
