package tui

import (
	"fmt"
	"strconv"
	"strings"

	"lolbrowser/browser/viewmodel"
	"lolbrowser/fetcher/assets"

	"github.com/charmbracelet/lipgloss"
)

const (
	listHeight  = 18
	listWidth   = 28
	splashWidth = 48
	iconWidth   = 8
)

func itoa(i int) string {
	return strconv.Itoa(i)
}

func skinKey(id string, num int) string {
	return id + "_" + itoa(num)
}

// View implements tea.Model.
func (a *App) View() string {
	var body string
	switch a.model.View {
	case viewmodel.ViewChampions:
		body = a.championsView()
	case viewmodel.ViewItems:
		body = a.itemsView()
	default:
		body = a.homeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, a.tabs(), body, a.help())
}

func (a *App) tabs() string {
	names := []string{"Home", "Champions", "Items"}
	views := []viewmodel.View{viewmodel.ViewDefault, viewmodel.ViewChampions, viewmodel.ViewItems}

	rendered := make([]string, len(names))
	for i, name := range names {
		style := tabStyle
		if views[i] == a.model.View {
			style = activeTab
		}
		rendered[i] = style.Render(name)
	}
	version := subtitleStyle.Render("  Data Dragon " + a.data.Version())
	return lipgloss.JoinHorizontal(lipgloss.Top, append(rendered, version)...) + "\n"
}

func (a *App) help() string {
	var keys string
	switch a.model.View {
	case viewmodel.ViewChampions:
		keys = "↑/↓ move • enter select • / search • r random • 1-5 skills • s skins • [ ] skin • a/A ally tips • e/E enemy tips"
	case viewmodel.ViewItems:
		keys = "1-6 tag • ↑/↓ move • enter select • / search • ←/→ builds into • o open • b back"
	default:
		keys = "tab switch view"
	}
	return "\n" + helpStyle.Render(keys+" • q quit")
}

// Texture of a key, a spinner while it loads.
func (a *App) texture(key string, width int) string {
	if key == "" {
		return ""
	}
	if handle, ok := a.textures.Peek(key); ok {
		return a.uploader.Render(handle, width)
	}
	if a.pending[key] {
		return a.spinner.View() + " loading"
	}
	return ""
}

func (a *App) homeView() string {
	title := titleStyle.Render("League of Legends browser")
	counts := subtitleStyle.Render(fmt.Sprintf("%d champions • %d items",
		len(a.data.ChampionNames()), len(a.data.ItemNames())))

	parts := []string{title, counts, ""}
	if bg := a.texture(backgroundKey, min(a.width, 100)); bg != "" {
		parts = append(parts, bg)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Render a window of a list around the cursor.
func renderList(rows []string, cursor int, selected string) string {
	start := max(0, min(cursor-listHeight/2, len(rows)-listHeight))
	end := min(len(rows), start+listHeight)

	var sb strings.Builder
	for i := start; i < end; i++ {
		row := truncate(rows[i], listWidth-2)
		switch {
		case i == cursor:
			sb.WriteString(selectedStyle.Render("> " + row))
		case rows[i] == selected:
			sb.WriteString(titleStyle.Render("  " + row))
		default:
			sb.WriteString("  " + row)
		}
		sb.WriteByte('\n')
	}
	if len(rows) == 0 {
		sb.WriteString(helpStyle.Render("  nothing here"))
	}
	return lipgloss.NewStyle().Width(listWidth).Render(sb.String())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (a *App) championsView() string {
	left := lipgloss.JoinVertical(lipgloss.Left,
		a.search.View(),
		renderList(a.championList(), a.champCursor, a.model.Champion.Name),
	)
	if a.model.Randomizing {
		left = lipgloss.JoinVertical(lipgloss.Left, left, a.spinner.View()+" picking a champion")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", a.championDetail())
}

func (a *App) championDetail() string {
	sel := a.model.Champion
	if sel.ID == "" {
		return helpStyle.Render("Select a champion, or press r for a random one.")
	}

	detailWidth := max(40, a.width-listWidth-6)
	text := lipgloss.NewStyle().Width(detailWidth)

	parts := []string{
		titleStyle.Render(sel.Name) + " " + subtitleStyle.Render(a.data.ChampionTitle(sel.ID)),
		helpStyle.Render(strings.Join(a.data.ChampionTags(sel.ID), " • ")),
	}

	key, _ := a.splash()
	parts = append(parts, a.texture(key, splashWidth))

	if a.champion == nil {
		parts = append(parts, a.spinner.View()+" loading details")
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	if sel.ShowSkins && len(a.champion.Skins) > 0 {
		skin := a.champion.Skins[min(sel.SkinIndex, len(a.champion.Skins)-1)]
		parts = append(parts, subtitleStyle.Render(fmt.Sprintf("Skin %d/%d: %s", sel.SkinIndex+1, len(a.champion.Skins), skin.Name)))
	}

	stats := assets.FormatChampionStats(a.data.ChampionStats(sel.ID))
	parts = append(parts, panelStyle.Render(strings.Join(stats, "\n")))
	parts = append(parts, text.Render(a.champion.Lore))
	parts = append(parts, a.skillsView(detailWidth))

	if sel.Ally.Shown {
		parts = append(parts, a.tipView("Ally tip", &sel.Ally, detailWidth))
	}
	if sel.Enemy.Shown {
		parts = append(parts, a.tipView("Enemy tip", &sel.Enemy, detailWidth))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) skillsView(width int) string {
	buttons := make([]string, 0, len(a.skills))
	var expanded *assets.SkillDescription
	for i, skill := range a.skills {
		style := buttonStyle
		if skill.Key == a.model.Champion.Skill {
			style = activeButton
			expanded = &a.skills[i]
		}
		buttons = append(buttons, style.Render(fmt.Sprintf("%d %s", i+1, skill.Label())))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
	if expanded == nil {
		return row
	}

	desc := lipgloss.JoinHorizontal(lipgloss.Top,
		a.texture(expanded.IconURL, iconWidth), " ",
		lipgloss.NewStyle().Width(width-iconWidth-1).Render(assets.StripMarkup(expanded.Description)),
	)
	return lipgloss.JoinVertical(lipgloss.Left, row, desc)
}

func (a *App) tipView(label string, deck *viewmodel.TipDeck, width int) string {
	tip := deck.Current()
	if !a.model.Champion.TipsLoaded {
		tip = a.spinner.View() + " loading"
	} else if tip == "" {
		tip = "No tips available."
	}
	return panelStyle.Width(width - 4).Render(titleStyle.Render(label) + "\n" + tip)
}

func (a *App) itemsView() string {
	tags := make([]string, len(viewmodel.ItemFilters))
	for i, f := range viewmodel.ItemFilters {
		style := buttonStyle
		if f.Label == a.model.Item.CurrentTag {
			style = activeButton
		}
		tags[i] = style.Render(fmt.Sprintf("%d %s", i+1, f.Label))
	}
	tagRow := lipgloss.JoinHorizontal(lipgloss.Top, tags...)

	var list string
	if a.searchingItems() {
		list = renderList(a.itemSearchList(), a.itemCursor, "")
	} else {
		selected := ""
		if id, ok := a.model.SelectedItem(); ok {
			selected = a.data.ItemName(id)
		}
		names := make([]string, len(a.model.Item.Items))
		for i, id := range a.model.Item.Items {
			names[i] = a.data.ItemName(id)
		}
		list = renderList(names, a.itemCursor, selected)
	}

	left := lipgloss.JoinVertical(lipgloss.Left, a.search.View(), list)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", a.itemDetail())
	return lipgloss.JoinVertical(lipgloss.Left, tagRow, body)
}

func (a *App) itemDetail() string {
	id, ok := a.model.SelectedItem()
	if !ok {
		return helpStyle.Render("Pick a tag or search a item.")
	}

	it, loaded := a.items[id]
	if !loaded {
		return a.spinner.View() + " loading item"
	}

	detailWidth := max(40, a.width-listWidth-6)
	header := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(it.Name),
		subtitleStyle.Render(it.Plaintext),
		fmt.Sprintf("Cost %d • Sells for %d", it.Gold.Total, it.Gold.Sell),
	)
	if !it.Gold.Purchasable {
		header = lipgloss.JoinVertical(lipgloss.Left, header, helpStyle.Render("Not sold on the shop"))
	}

	parts := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, a.texture(itemIconKey(id), iconWidth), "  ", header),
		lipgloss.NewStyle().Width(detailWidth).Render(assets.StripMarkup(it.Description)),
		helpStyle.Render(strings.Join(a.model.Item.SelectedTags, " • ")),
	}

	if len(it.Into) > 0 {
		builds := make([]string, len(it.Into))
		for i, into := range it.Into {
			style := buttonStyle
			if i == a.buildCursor {
				style = activeButton
			}
			builds[i] = style.Render(truncate(a.data.ItemName(into), 24))
		}
		parts = append(parts, "Builds into", lipgloss.JoinHorizontal(lipgloss.Top, builds...))
	}
	if n := len(a.model.Item.History); n > 0 {
		parts = append(parts, helpStyle.Render(fmt.Sprintf("b: back to %s", a.data.ItemName(a.model.Item.History[n-1].ItemID))))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
