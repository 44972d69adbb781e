package viewmodel

import (
	"slices"
	"strings"
)

// View is the screen being shown.
type View int

const (
	ViewDefault View = iota
	ViewChampions
	ViewItems
)

func (v View) String() string {
	switch v {
	case ViewChampions:
		return "champions"
	case ViewItems:
		return "items"
	default:
		return "home"
	}
}

// ItemFilter is a role button of the items view, matched against the Data Dragon item tags.
type ItemFilter struct {
	Label string
	// At least one of these.
	AnyOf []string
	// All of these.
	AllOf []string
}

// Filters offered on the items view.
var ItemFilters = []ItemFilter{
	{Label: "FIGHTER", AnyOf: []string{"Health"}, AllOf: []string{"Damage"}},
	{Label: "MARKSMAN", AnyOf: []string{"CriticalStrike", "AttackSpeed"}},
	{Label: "ASSASSIN", AnyOf: []string{"ArmorPenetration"}},
	{Label: "MAGE", AnyOf: []string{"SpellDamage"}},
	{Label: "TANK", AnyOf: []string{"Armor", "SpellBlock", "Health"}},
	{Label: "SUPPORT", AnyOf: []string{"GoldPer", "Aura", "ManaRegen"}},
}

// ItemFilterFor returns the filter of a label. Unknown labels match the item tag of the same name.
func ItemFilterFor(label string) ItemFilter {
	for _, f := range ItemFilters {
		if strings.EqualFold(f.Label, label) {
			return f
		}
	}
	return ItemFilter{Label: label, AnyOf: []string{label}}
}

// ItemSource is the part of the data manager the item navigation needs.
type ItemSource interface {
	ItemsMatching(anyOf, allOf []string) []string
	ItemTags(itemID string) []string
}

// TipDeck is a list of tips shown one at a time in a shuffled order.
type TipDeck struct {
	Tips   []string
	Order  []int
	Cursor int
	Shown  bool
}

// Current returns the tip under the cursor, or a empty string.
func (d *TipDeck) Current() string {
	if len(d.Order) == 0 {
		return ""
	}
	return d.Tips[d.Order[d.Cursor]]
}

func (d *TipDeck) next() {
	if len(d.Order) == 0 {
		return
	}
	d.Cursor = (d.Cursor + 1) % len(d.Order)
}

// ChampionSelection is everything selected on the champions view.
type ChampionSelection struct {
	Name string
	ID   string

	// Key of the expanded skill, "Passive", "Q", "W", "E" or "R".
	Skill string

	SkinIndex int
	ShowSkins bool

	// Tips are loaded asynchronously, TipsLoaded tells when they arrived.
	TipsLoaded bool
	Ally       TipDeck
	Enemy      TipDeck
}

// HistoryEntry is a item left by following a builds into link.
type HistoryEntry struct {
	ItemID      string
	Tags        []string
	OriginalTag string
}

// ItemSelection is everything selected on the items view.
type ItemSelection struct {
	CurrentTag string
	Items      []string

	// -1 when nothing is selected.
	SelectedIndex int
	SelectedTags  []string

	History []HistoryEntry
}

// Model is the state machine behind the browser screens.
// It is owned by a single goroutine, the front-end update loop.
type Model struct {
	View     View
	Champion ChampionSelection
	Item     ItemSelection

	// Set while a random champion is being picked.
	Randomizing bool

	source  ItemSource
	shuffle func(n int) []int
}

// NewModel creates the model on the home view.
func NewModel(source ItemSource, randomizer *Randomizer) *Model {
	return &Model{
		View:    ViewDefault,
		Item:    ItemSelection{SelectedIndex: -1},
		source:  source,
		shuffle: randomizer.ShuffleTips,
	}
}

// SetView switches the screen, keeping the selections of the others.
func (m *Model) SetView(v View) {
	m.View = v
}

// SelectChampion replaces the champion selection, resetting skills, skins and tips.
func (m *Model) SelectChampion(name, id string) {
	if m.Champion.ID == id && m.Champion.Name == name {
		return
	}
	m.Champion = ChampionSelection{Name: name, ID: id}
}

// SetChampionTips stores the tips loaded for a champion.
// Results for a champion that is no longer selected are dropped.
func (m *Model) SetChampionTips(id string, ally, enemy []string) bool {
	if m.Champion.ID != id {
		return false
	}

	m.Champion.TipsLoaded = true
	m.Champion.Ally = TipDeck{Tips: ally, Shown: m.Champion.Ally.Shown}
	m.Champion.Enemy = TipDeck{Tips: enemy, Shown: m.Champion.Enemy.Shown}
	m.shuffleDeck(&m.Champion.Ally)
	m.shuffleDeck(&m.Champion.Enemy)
	return true
}

func (m *Model) shuffleDeck(d *TipDeck) {
	if d.Shown && len(d.Order) == 0 && len(d.Tips) > 0 {
		d.Order = m.shuffle(len(d.Tips))
		d.Cursor = 0
	}
}

// ToggleSkill expands a skill, or collapses it when it is already expanded.
func (m *Model) ToggleSkill(key string) {
	if m.Champion.Skill == key {
		m.Champion.Skill = ""
		return
	}
	m.Champion.Skill = key
}

// ToggleSkins shows or hides the skin carousel, always starting on the first skin.
func (m *Model) ToggleSkins() {
	m.Champion.ShowSkins = !m.Champion.ShowSkins
	if m.Champion.ShowSkins {
		m.Champion.SkinIndex = 0
	}
}

// NextSkin moves the carousel forward, stopping on the last of count skins.
func (m *Model) NextSkin(count int) {
	if m.Champion.SkinIndex < count-1 {
		m.Champion.SkinIndex++
	}
}

// PrevSkin moves the carousel back, stopping on the first skin.
func (m *Model) PrevSkin() {
	if m.Champion.SkinIndex > 0 {
		m.Champion.SkinIndex--
	}
}

// ToggleAllyTips shows or hides the ally tips, shuffling them the first time.
func (m *Model) ToggleAllyTips() {
	m.Champion.Ally.Shown = !m.Champion.Ally.Shown
	m.shuffleDeck(&m.Champion.Ally)
}

// NextAllyTip moves to the next ally tip, wrapping around.
func (m *Model) NextAllyTip() {
	m.Champion.Ally.next()
}

// ToggleEnemyTips shows or hides the enemy tips, shuffling them the first time.
func (m *Model) ToggleEnemyTips() {
	m.Champion.Enemy.Shown = !m.Champion.Enemy.Shown
	m.shuffleDeck(&m.Champion.Enemy)
}

// NextEnemyTip moves to the next enemy tip, wrapping around.
func (m *Model) NextEnemyTip() {
	m.Champion.Enemy.next()
}

// ShowItemsByTag lists the items of a filter label. Changing the tag clears the history.
func (m *Model) ShowItemsByTag(tag string) {
	m.Item = ItemSelection{
		CurrentTag:    tag,
		Items:         m.itemsOf(tag),
		SelectedIndex: -1,
	}
}

func (m *Model) itemsOf(tag string) []string {
	f := ItemFilterFor(tag)
	return m.source.ItemsMatching(f.AnyOf, f.AllOf)
}

// SelectItem selects a item of the current list.
func (m *Model) SelectItem(index int) bool {
	if index < 0 || index >= len(m.Item.Items) {
		return false
	}
	m.Item.SelectedIndex = index
	m.Item.SelectedTags = m.source.ItemTags(m.Item.Items[index])
	return true
}

// ShowItem shows a single item, as picked from the search.
func (m *Model) ShowItem(itemID string) {
	m.Item.Items = []string{itemID}
	m.Item.SelectedIndex = 0
	m.Item.SelectedTags = m.source.ItemTags(itemID)
}

// SelectedItem returns the id of the selected item.
func (m *Model) SelectedItem() (string, bool) {
	i := m.Item.SelectedIndex
	if i < 0 || i >= len(m.Item.Items) {
		return "", false
	}
	return m.Item.Items[i], true
}

// OpenBuildInto follows a builds into link, remembering where it came from.
func (m *Model) OpenBuildInto(itemID string) {
	if current, ok := m.SelectedItem(); ok {
		m.Item.History = append(m.Item.History, HistoryEntry{
			ItemID:      current,
			Tags:        m.Item.SelectedTags,
			OriginalTag: m.Item.CurrentTag,
		})
	}

	m.Item.CurrentTag = ""
	m.ShowItem(itemID)
}

// Back returns to the item and tag before the last builds into link.
// Without history it goes back to the list of the current tag.
func (m *Model) Back() {
	n := len(m.Item.History)
	if n == 0 {
		if m.Item.CurrentTag != "" {
			m.Item.Items = m.itemsOf(m.Item.CurrentTag)
			m.Item.SelectedIndex = -1
			m.Item.SelectedTags = nil
		}
		return
	}

	prev := m.Item.History[n-1]
	m.Item.History = m.Item.History[:n-1]
	m.Item.CurrentTag = prev.OriginalTag
	m.Item.SelectedTags = prev.Tags

	if prev.OriginalTag == "" {
		m.Item.Items = []string{prev.ItemID}
		m.Item.SelectedIndex = 0
		return
	}

	// Back on the tag list, with the item still selected.
	m.Item.Items = m.itemsOf(prev.OriginalTag)
	m.Item.SelectedIndex = slices.Index(m.Item.Items, prev.ItemID)
	if m.Item.SelectedIndex < 0 {
		m.Item.Items = append(m.Item.Items, prev.ItemID)
		m.Item.SelectedIndex = len(m.Item.Items) - 1
	}
}

// Filter returns the names containing the query, ignoring case.
func Filter(names []string, query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return names
	}

	out := []string{}
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), query) {
			out = append(out, name)
		}
	}
	return out
}
