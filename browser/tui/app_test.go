package tui

import (
	"context"
	"io"
	"testing"

	"lolbrowser/browser/viewmodel"
	"lolbrowser/fetcher/assets"
	"lolbrowser/fetcher/textures"
	"lolbrowser/internal/testutil"
	"lolbrowser/pkg/logger"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	baseURL     = "https://cdn.test/"
	championURL = baseURL + "cdn/14.14.1/data/en_US/champion.json"
	itemURL     = baseURL + "cdn/14.14.1/data/en_US/item.json"
	ahriURL     = baseURL + "cdn/14.14.1/data/en_US/champion/Ahri.json"
)

const championCatalog = `{"data": {
  "Aatrox": {"id": "Aatrox", "name": "Aatrox", "title": "the Darkin Blade", "tags": ["Fighter"], "stats": {"hp": 650}},
  "Ahri": {"id": "Ahri", "name": "Ahri", "title": "the Nine-Tailed Fox", "tags": ["Mage"], "stats": {"hp": 590}}
}}`

const ahriDetail = `{"data": {"Ahri": {
  "id": "Ahri", "name": "Ahri", "lore": "A fox.",
  "allytips": ["Use Charm."], "enemytips": ["Dodge Charm."],
  "skins": [{"id": "103000", "num": 0, "name": "default"}, {"id": "103001", "num": 1, "name": "Dynasty Ahri"}],
  "spells": [{"name": "Orb of Deception", "description": "Throws an <b>orb</b>.", "image": {"full": "AhriQ.png"}}],
  "passive": {"name": "Essence Theft", "description": "Heals.", "image": {"full": "Ahri_P.png"}}
}}}`

const itemCatalog = `{"data": {
  "3071": {"name": "The Black Cleaver", "tags": ["Health", "Damage", "AbilityHaste", "ArmorPenetration", "NonbootsMovement"], "gold": {"total": 3000, "sell": 2100, "purchasable": true}},
  "3044": {"name": "Phage", "tags": ["Health", "Damage"], "into": ["3071"], "gold": {"total": 1100, "sell": 770, "purchasable": true}},
  "3075": {"name": "Thornmail", "tags": ["Health", "Armor"], "gold": {"total": 2450, "sell": 1715, "purchasable": true}},
  "3089": {"name": "Rabadon's Deathcap", "tags": ["SpellDamage"], "gold": {"total": 3600, "sell": 2520, "purchasable": true}},
  "3031": {"name": "Infinity Edge", "tags": ["CriticalStrike", "Damage"], "gold": {"total": 3450, "sell": 2415, "purchasable": true}},
  "3190": {"name": "Locket of the Iron Solari", "tags": ["Health", "Armor", "SpellBlock", "Aura", "Active", "AbilityHaste"], "gold": {"total": 2200, "sell": 1540, "purchasable": true}},
  "1001": {"name": "Boots of Speed", "tags": ["Boots"]}
}}`

func setupTestApp(t *testing.T) (*App, *testutil.FakeFetcher) {
	t.Helper()

	fetcher := testutil.NewFakeFetcher()
	fetcher.SetBody(championURL, []byte(championCatalog))
	fetcher.SetBody(itemURL, []byte(itemCatalog))
	fetcher.SetBody(ahriURL, []byte(ahriDetail))

	l := logger.NewConsoleLogger(io.Discard)
	dm := assets.NewDataManager(&assets.DataManagerDeps{
		Fetcher:  fetcher,
		Logger:   l,
		BaseURL:  baseURL,
		Version:  "14.14.1",
		Language: "en_US",
	})
	ctx := context.Background()
	require.True(t, dm.FetchChampionData(ctx))
	require.True(t, dm.FetchItemData(ctx))

	uploader := textures.NewTerminalUploader(16)
	app := New(&Deps{
		Context:    ctx,
		Data:       dm,
		Textures:   textures.NewTextureCache(&textures.TextureCacheDeps{Fetcher: fetcher, Uploader: uploader, Logger: l, Capacity: 16}),
		Uploader:   uploader,
		Randomizer: viewmodel.NewSeededRandomizer(1),
		Logger:     l,
	})
	return app, fetcher
}

func press(a *App, key string) tea.Cmd {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	_, cmd := a.Update(msg)
	return cmd
}

// Run a command that is known to produce a single message.
func deliver(a *App, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	a.Update(cmd())
}

func TestSwitchViews(t *testing.T) {
	app, _ := setupTestApp(t)
	assert.Equal(t, viewmodel.ViewDefault, app.model.View)
	assert.Contains(t, app.View(), "2 champions")

	press(app, "tab")
	assert.Equal(t, viewmodel.ViewChampions, app.model.View)
	press(app, "tab")
	assert.Equal(t, viewmodel.ViewItems, app.model.View)
	press(app, "tab")
	assert.Equal(t, viewmodel.ViewDefault, app.model.View)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSelectChampion(t *testing.T) {
	app, fetcher := setupTestApp(t)
	app.model.SetView(viewmodel.ViewChampions)

	press(app, "down")
	press(app, "enter")
	assert.Equal(t, "Ahri", app.model.Champion.ID)
	assert.Nil(t, app.champion)
	assert.Contains(t, app.View(), "loading details")

	// The detail is only fetched by the command.
	assert.Zero(t, fetcher.Calls(ahriURL))
	deliver(app, app.loadChampion("Ahri"))
	require.NotNil(t, app.champion)
	assert.Equal(t, 1, fetcher.Calls(ahriURL))
	assert.True(t, app.model.Champion.TipsLoaded)
	require.Len(t, app.skills, 2)

	press(app, "2")
	assert.Equal(t, "Q", app.model.Champion.Skill)
	press(app, "a")
	assert.Equal(t, "Use Charm.", app.model.Champion.Ally.Current())
	press(app, "s")
	press(app, "]")
	assert.Equal(t, 1, app.model.Champion.SkinIndex)

	key, url := app.splash()
	assert.Equal(t, "Ahri_1", key)
	assert.Equal(t, baseURL+"cdn/img/champion/splash/Ahri_1.jpg", url)

	view := app.View()
	assert.Contains(t, view, "A fox.")
	assert.Contains(t, view, "Throws an orb.")
	assert.Contains(t, view, "Dynasty Ahri")
}

func TestStaleChampionDetailIsIgnored(t *testing.T) {
	app, _ := setupTestApp(t)
	app.model.SelectChampion("Aatrox", "Aatrox")

	app.Update(championLoadedMsg{id: "Ahri"})
	assert.Nil(t, app.champion)
	assert.False(t, app.model.Champion.TipsLoaded)
}

func TestRandomChampion(t *testing.T) {
	app, _ := setupTestApp(t)
	app.model.SetView(viewmodel.ViewChampions)

	cmd := press(app, "r")
	require.NotNil(t, cmd)
	assert.True(t, app.model.Randomizing)

	// A second press while picking does nothing.
	press(app, "r")

	app.Update(pickMsg{pick: viewmodel.Pick{Index: 0, Name: "Aatrox"}, ok: true})
	assert.False(t, app.model.Randomizing)
	assert.Equal(t, "Aatrox", app.model.Champion.ID)
}

func TestItemNavigation(t *testing.T) {
	app, _ := setupTestApp(t)
	app.model.SetView(viewmodel.ViewItems)

	press(app, "1")
	assert.Equal(t, "FIGHTER", app.model.Item.CurrentTag)
	assert.Equal(t, []string{"3071", "3044"}, app.model.Item.Items)

	press(app, "down")
	cmd := press(app, "enter")
	id, ok := app.model.SelectedItem()
	require.True(t, ok)
	assert.Equal(t, "3044", id)
	require.NotNil(t, cmd)

	deliver(app, app.loadItem("3044"))
	assert.Equal(t, []string{"3071"}, app.selectedBuildsInto())
	assert.Contains(t, app.View(), "Builds into")

	press(app, "o")
	id, _ = app.model.SelectedItem()
	assert.Equal(t, "3071", id)
	assert.Empty(t, app.model.Item.CurrentTag)

	press(app, "b")
	id, _ = app.model.SelectedItem()
	assert.Equal(t, "3044", id)
	assert.Equal(t, "FIGHTER", app.model.Item.CurrentTag)
	assert.Equal(t, 1, app.itemCursor)
}

func TestItemRoleFilters(t *testing.T) {
	app, _ := setupTestApp(t)
	app.model.SetView(viewmodel.ViewItems)

	tests := []struct {
		key      string
		label    string
		expected []string
	}{
		{"1", "FIGHTER", []string{"3071", "3044"}},
		{"2", "MARKSMAN", []string{"3031"}},
		{"3", "ASSASSIN", []string{"3071"}},
		{"4", "MAGE", []string{"3089"}},
		{"5", "TANK", []string{"3071", "3044", "3075", "3190"}},
		{"6", "SUPPORT", []string{"3190"}},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			press(app, tt.key)
			assert.Equal(t, tt.label, app.model.Item.CurrentTag)
			assert.Equal(t, tt.expected, app.model.Item.Items)
		})
	}
}

func TestItemSearch(t *testing.T) {
	app, _ := setupTestApp(t)
	app.model.SetView(viewmodel.ViewItems)

	press(app, "/")
	require.True(t, app.search.Focused())
	for _, r := range "boots" {
		press(app, string(r))
	}
	assert.Equal(t, []string{"Boots of Speed"}, app.itemSearchList())

	press(app, "enter")
	id, ok := app.model.SelectedItem()
	require.True(t, ok)
	assert.Equal(t, "1001", id)
	assert.False(t, app.search.Focused())
}
