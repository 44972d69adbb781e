package tui

import (
	"lolbrowser/browser/viewmodel"
	"lolbrowser/fetcher/assets"
	"lolbrowser/fetcher/textures"
	"lolbrowser/pkg/models/champion"
	"lolbrowser/pkg/models/item"

	tea "github.com/charmbracelet/bubbletea"
)

// Key of the background texture.
const backgroundKey = "background"

type textureLoadedMsg struct {
	key string
	err error
}

type prefetchDoneMsg struct {
	keys []string
	err  error
}

type championLoadedMsg struct {
	id       string
	champion *champion.Champion
	skills   []assets.SkillDescription
}

type itemLoadedMsg struct {
	id   string
	item *item.Item
}

type pickMsg struct {
	pick viewmodel.Pick
	ok   bool
}

// Every network access runs inside a command, the update loop never blocks.

func (a *App) loadTexture(key, url string) tea.Cmd {
	a.pending[key] = true
	return func() tea.Msg {
		_, err := a.textures.Get(a.ctx, key, url)
		return textureLoadedMsg{key: key, err: err}
	}
}

func (a *App) loadBackground(path string) tea.Cmd {
	a.pending[backgroundKey] = true
	return func() tea.Msg {
		_, err := a.textures.GetFile(backgroundKey, path)
		return textureLoadedMsg{key: backgroundKey, err: err}
	}
}

func (a *App) prefetchItemIcons(ids []string) tea.Cmd {
	reqs := []textures.Request{}
	keys := []string{}
	for _, id := range ids {
		key := itemIconKey(id)
		url := a.data.ItemImageURL(id)
		if url == "" || a.pending[key] {
			continue
		}
		if _, ok := a.textures.Peek(key); ok {
			continue
		}
		a.pending[key] = true
		reqs = append(reqs, textures.Request{Key: key, URL: url})
		keys = append(keys, key)
	}
	if len(reqs) == 0 {
		return nil
	}

	return func() tea.Msg {
		err := a.textures.Prefetch(a.ctx, reqs)
		return prefetchDoneMsg{keys: keys, err: err}
	}
}

func (a *App) loadChampion(id string) tea.Cmd {
	return func() tea.Msg {
		champ, _ := a.data.Champion(a.ctx, id)
		return championLoadedMsg{
			id:       id,
			champion: champ,
			skills:   a.data.SkillDescriptions(a.ctx, id),
		}
	}
}

func (a *App) loadItem(id string) tea.Cmd {
	return func() tea.Msg {
		it, _ := a.data.Item(a.ctx, id)
		return itemLoadedMsg{id: id, item: it}
	}
}

func (a *App) pickChampion() tea.Cmd {
	results := a.randomizer.Pick(a.ctx, a.data.ChampionNames())
	return func() tea.Msg {
		p, ok := <-results
		return pickMsg{pick: p, ok: ok}
	}
}

func itemIconKey(id string) string {
	return "item:" + id
}
