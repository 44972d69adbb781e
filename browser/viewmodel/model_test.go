package viewmodel

import (
	"testing"

	"lolbrowser/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupItemSource() *testutil.MockItemSource {
	source := new(testutil.MockItemSource)
	source.On("ItemsMatching", []string{"CriticalStrike", "AttackSpeed"}, []string(nil)).Return([]string{"1018", "1038", "3031"})
	source.On("ItemsMatching", []string{"Armor", "SpellBlock", "Health"}, []string(nil)).Return([]string{"1011", "3075"})
	source.On("ItemTags", mock.Anything).Return([]string{"Damage"})
	return source
}

func TestChampionSelection(t *testing.T) {
	m := NewModel(setupItemSource(), NewSeededRandomizer(1))
	assert.Equal(t, ViewDefault, m.View)

	m.SetView(ViewChampions)
	m.SelectChampion("Aatrox", "Aatrox")
	m.ToggleSkill("Q")
	assert.Equal(t, "Q", m.Champion.Skill)
	m.ToggleSkill("Q")
	assert.Empty(t, m.Champion.Skill)

	m.ToggleSkill("W")
	m.ToggleSkins()
	m.NextSkin(3)
	m.NextSkin(3)
	m.NextSkin(3)
	assert.Equal(t, 2, m.Champion.SkinIndex)
	m.PrevSkin()
	assert.Equal(t, 1, m.Champion.SkinIndex)

	// Hiding and showing again starts on the first skin.
	m.ToggleSkins()
	m.ToggleSkins()
	assert.Zero(t, m.Champion.SkinIndex)

	// Same champion keeps the state.
	m.SelectChampion("Aatrox", "Aatrox")
	assert.Equal(t, "W", m.Champion.Skill)

	m.SelectChampion("Ahri", "Ahri")
	assert.Equal(t, ChampionSelection{Name: "Ahri", ID: "Ahri"}, m.Champion)
	assert.Equal(t, ViewChampions, m.View)
}

func TestChampionTips(t *testing.T) {
	m := NewModel(setupItemSource(), NewSeededRandomizer(7))
	m.SelectChampion("Ahri", "Ahri")

	// Shown before the tips arrived.
	m.ToggleAllyTips()
	assert.Empty(t, m.Champion.Ally.Current())

	assert.False(t, m.SetChampionTips("Aatrox", []string{"wrong"}, nil))
	require.True(t, m.SetChampionTips("Ahri", []string{"a", "b", "c"}, []string{"x", "y"}))
	assert.True(t, m.Champion.TipsLoaded)

	seen := map[string]bool{}
	for range 3 {
		seen[m.Champion.Ally.Current()] = true
		m.NextAllyTip()
	}
	assert.Equal(t, map[string]bool{"a": true, "b": true, "c": true}, seen)

	// Enemy tips are only shuffled when shown.
	assert.Empty(t, m.Champion.Enemy.Order)
	m.ToggleEnemyTips()
	assert.Len(t, m.Champion.Enemy.Order, 2)
	first := m.Champion.Enemy.Current()
	m.NextEnemyTip()
	m.NextEnemyTip()
	assert.Equal(t, first, m.Champion.Enemy.Current())
}

func TestItemNavigation(t *testing.T) {
	source := setupItemSource()
	m := NewModel(source, NewSeededRandomizer(1))
	m.SetView(ViewItems)

	_, ok := m.SelectedItem()
	assert.False(t, ok)

	m.ShowItemsByTag("MARKSMAN")
	assert.Equal(t, []string{"1018", "1038", "3031"}, m.Item.Items)
	assert.False(t, m.SelectItem(5))
	require.True(t, m.SelectItem(1))

	id, ok := m.SelectedItem()
	require.True(t, ok)
	assert.Equal(t, "1038", id)
	assert.Equal(t, []string{"Damage"}, m.Item.SelectedTags)

	m.OpenBuildInto("3031")
	assert.Empty(t, m.Item.CurrentTag)
	assert.Equal(t, []string{"3031"}, m.Item.Items)
	m.OpenBuildInto("3072")
	require.Len(t, m.Item.History, 2)
	assert.Equal(t, HistoryEntry{ItemID: "3031", Tags: []string{"Damage"}, OriginalTag: ""}, m.Item.History[1])

	m.Back()
	id, _ = m.SelectedItem()
	assert.Equal(t, "3031", id)
	assert.Empty(t, m.Item.CurrentTag)

	// Back to the tag list, with the first item still selected.
	m.Back()
	assert.Equal(t, "MARKSMAN", m.Item.CurrentTag)
	id, _ = m.SelectedItem()
	assert.Equal(t, "1038", id)
	assert.Empty(t, m.Item.History)

	m.SelectItem(2)
	m.Back()
	_, ok = m.SelectedItem()
	assert.False(t, ok)
	assert.Len(t, m.Item.Items, 3)

	m.OpenBuildInto("3031")
	m.ShowItemsByTag("TANK")
	assert.Empty(t, m.Item.History)
	testutil.VerifyAllMocks(t, source)
}

func TestShowItem(t *testing.T) {
	m := NewModel(setupItemSource(), NewSeededRandomizer(1))
	m.ShowItem("1001")

	id, ok := m.SelectedItem()
	require.True(t, ok)
	assert.Equal(t, "1001", id)

	// Without a tag, back keeps the item.
	m.Back()
	id, _ = m.SelectedItem()
	assert.Equal(t, "1001", id)
}

func TestItemFilterFor(t *testing.T) {
	f := ItemFilterFor("fighter")
	assert.Equal(t, "FIGHTER", f.Label)
	assert.Equal(t, []string{"Health"}, f.AnyOf)
	assert.Equal(t, []string{"Damage"}, f.AllOf)

	assert.Equal(t, ItemFilter{Label: "Boots", AnyOf: []string{"Boots"}}, ItemFilterFor("Boots"))
}

func TestFilter(t *testing.T) {
	names := []string{"Aatrox", "Ahri", "Wukong"}

	tests := []struct {
		query    string
		expected []string
	}{
		{"", names},
		{"  AH ", []string{"Ahri"}},
		{"a", []string{"Aatrox", "Ahri"}},
		{"zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.expected, Filter(names, tt.query))
		})
	}
}

func TestViewString(t *testing.T) {
	assert.Equal(t, "home", ViewDefault.String())
	assert.Equal(t, "champions", ViewChampions.String())
	assert.Equal(t, "items", ViewItems.String())
}
