package assets

import (
	"context"
	"fmt"
	"maps"

	"lolbrowser/pkg/models/champion"
)

// Ability keys in the order Data Dragon lists the spells.
var spellKeys = []string{"Q", "W", "E", "R"}

// SkillDescription is the text shown for a passive or ability.
type SkillDescription struct {
	Key         string
	Name        string
	Description string
	IconURL     string
}

// Label used by the front-ends, "Passive" or "Q: Name".
func (s SkillDescription) Label() string {
	return fmt.Sprintf("%s: %s", s.Key, s.Name)
}

// FetchChampionData fetches the champion catalog.
func (dm *DataManager) FetchChampionData(ctx context.Context) bool {
	return dm.FetchCatalog(ctx, KindChampion)
}

// FetchSpecificChampionData fetches the detail document of a champion, always hitting the network.
func (dm *DataManager) FetchSpecificChampionData(ctx context.Context, championID string) bool {
	return dm.FetchEntityDetail(ctx, KindChampion, championID)
}

// ChampionNames returns the champion display names, in the catalog order.
func (dm *DataManager) ChampionNames() []string {
	return dm.names(KindChampion)
}

// ChampionID returns the id of a champion display name.
func (dm *DataManager) ChampionID(championName string) string {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.champions.nameToID[championName]
}

// ChampionStats returns the base stats of a champion.
func (dm *DataManager) ChampionStats(championName string) champion.Stats {
	var stats champion.Stats
	id, ok := dm.resolve(KindChampion, championName)
	if !ok {
		return stats
	}

	raw := getMapOrDefault(dm.entry(KindChampion, id), "stats")
	if raw == nil {
		return stats
	}
	if err := decodeDocument(raw, &stats); err != nil {
		dm.logger.Warnf("Invalid stats for champion %s: %v", id, err)
		return champion.Stats{}
	}
	return stats
}

// ChampionTitle returns the title, like "the Darkin Blade".
func (dm *DataManager) ChampionTitle(championName string) string {
	id, ok := dm.resolve(KindChampion, championName)
	if !ok {
		return ""
	}
	return getStringOrDefault(dm.entry(KindChampion, id), "title")
}

// ChampionTags returns the class tags of a champion.
func (dm *DataManager) ChampionTags(championName string) []string {
	id, ok := dm.resolve(KindChampion, championName)
	if !ok {
		return []string{}
	}
	return getStringSliceOrDefault(dm.entry(KindChampion, id), "tags")
}

// ChampionLore returns the full lore, loading the detail document if needed.
func (dm *DataManager) ChampionLore(ctx context.Context, championName string) string {
	return getStringOrDefault(dm.championDetail(ctx, championName), "lore")
}

// ChampionAllyTips returns the tips for playing the champion.
func (dm *DataManager) ChampionAllyTips(ctx context.Context, championName string) []string {
	return getStringSliceOrDefault(dm.championDetail(ctx, championName), "allytips")
}

// ChampionEnemyTips returns the tips for playing against the champion.
func (dm *DataManager) ChampionEnemyTips(ctx context.Context, championName string) []string {
	return getStringSliceOrDefault(dm.championDetail(ctx, championName), "enemytips")
}

// ChampionSpells returns the four abilities of a champion.
func (dm *DataManager) ChampionSpells(ctx context.Context, championName string) []champion.Spell {
	champ, ok := dm.Champion(ctx, championName)
	if !ok || champ.Spells == nil {
		return []champion.Spell{}
	}
	return champ.Spells
}

// ChampionPassive returns the passive of a champion.
func (dm *DataManager) ChampionPassive(ctx context.Context, championName string) champion.Spell {
	champ, ok := dm.Champion(ctx, championName)
	if !ok {
		return champion.Spell{}
	}
	return champ.Passive
}

// ChampionSkins returns the skin list of a champion.
func (dm *DataManager) ChampionSkins(ctx context.Context, championName string) []champion.Skin {
	champ, ok := dm.Champion(ctx, championName)
	if !ok || champ.Skins == nil {
		return []champion.Skin{}
	}
	return champ.Skins
}

// ChampionData returns a copy of the raw detail document of a champion.
// Nested values are shared and must not be changed.
func (dm *DataManager) ChampionData(ctx context.Context, championID string) Document {
	doc := dm.championDetail(ctx, championID)
	if doc == nil {
		return Document{}
	}
	return maps.Clone(doc)
}

// Champion returns the typed detail of a champion.
func (dm *DataManager) Champion(ctx context.Context, championName string) (*champion.Champion, bool) {
	doc := dm.championDetail(ctx, championName)
	if doc == nil {
		return nil, false
	}

	champ := &champion.Champion{}
	if err := decodeDocument(doc, champ); err != nil {
		dm.logger.Warnf("Invalid detail for champion %s: %v", championName, err)
		return nil, false
	}
	return champ, true
}

// SkillDescriptions returns the passive followed by the abilities, with their icons.
func (dm *DataManager) SkillDescriptions(ctx context.Context, championName string) []SkillDescription {
	champ, ok := dm.Champion(ctx, championName)
	if !ok {
		return []SkillDescription{}
	}

	skills := []SkillDescription{{
		Key:         "Passive",
		Name:        champ.Passive.Name,
		Description: champ.Passive.Description,
		IconURL:     dm.PassiveIconURL(champ.Passive.Image.Full),
	}}
	for i, spell := range champ.Spells {
		if i >= len(spellKeys) {
			break
		}
		skills = append(skills, SkillDescription{
			Key:         spellKeys[i],
			Name:        spell.Name,
			Description: spell.Description,
			IconURL:     dm.SpellIconURL(spell.Image.Full),
		})
	}
	return skills
}

func (dm *DataManager) championDetail(ctx context.Context, championName string) Document {
	id, ok := dm.resolve(KindChampion, championName)
	if !ok {
		return nil
	}
	return dm.detail(ctx, KindChampion, id)
}

// FormatChampionStats renders the base stats the way the champion view shows them.
func FormatChampionStats(stats champion.Stats) []string {
	return []string{
		fmt.Sprintf("HP: %.0f (+ %.0f per level)", stats.HP, stats.HPPerLevel),
		fmt.Sprintf("Armor: %.1f (+ %.2f per level)", stats.Armor, stats.ArmorPerLevel),
		fmt.Sprintf("Magic Resist: %.1f (+ %.2f per level)", stats.SpellBlock, stats.SpellBlockPerLevel),
		fmt.Sprintf("Move Speed: %.0f", stats.MoveSpeed),
		fmt.Sprintf("Attack Damage: %.0f (+ %.0f per level)", stats.AttackDamage, stats.AttackDamagePerLevel),
		fmt.Sprintf("Attack Speed: %.3f (+ %.1f%% per level)", stats.AttackSpeed, stats.AttackSpeedPerLevel),
		fmt.Sprintf("Attack Range: %.0f", stats.AttackRange),
		fmt.Sprintf("HP Regen: %.1f (+ %.1f per level)", stats.HPRegen, stats.HPRegenPerLevel),
	}
}
