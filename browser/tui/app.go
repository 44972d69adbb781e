// Package tui is the terminal front-end of the browser.
//
// The App only reads the data through the DataManager accessors and the
// TextureCache. Anything that may touch the network runs inside a tea.Cmd,
// the view shows a spinner until the result message arrives.
package tui

import (
	"context"
	"slices"

	"lolbrowser/browser/viewmodel"
	"lolbrowser/fetcher/assets"
	"lolbrowser/fetcher/textures"
	"lolbrowser/pkg/logger"
	"lolbrowser/pkg/models/champion"
	"lolbrowser/pkg/models/item"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Skill keys in the order the number keys toggle them.
var skillKeys = []string{"Passive", "Q", "W", "E", "R"}

// Deps is the dependency list of the App.
type Deps struct {
	Context    context.Context
	Data       *assets.DataManager
	Textures   *textures.TextureCache
	Uploader   *textures.TerminalUploader
	Randomizer *viewmodel.Randomizer
	Logger     *logger.NewLogger

	// Optional local image shown on the home view.
	BackgroundImage string
}

// App is the bubbletea model of the browser.
type App struct {
	ctx        context.Context
	data       *assets.DataManager
	textures   *textures.TextureCache
	uploader   *textures.TerminalUploader
	randomizer *viewmodel.Randomizer
	logger     *logger.NewLogger
	background string

	model   *viewmodel.Model
	search  textinput.Model
	spinner spinner.Model

	champCursor int
	itemCursor  int
	buildCursor int

	// Detail of the selected champion, nil while loading.
	champion *champion.Champion
	skills   []assets.SkillDescription

	items   map[string]*item.Item
	pending map[string]bool

	width  int
	height int
}

// New creates the App on the home view.
func New(deps *Deps) *App {
	ctx := deps.Context
	if ctx == nil {
		ctx = context.Background()
	}

	search := textinput.New()
	search.Placeholder = "Search"
	search.Prompt = "/ "
	search.CharLimit = 64

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = helpStyle

	return &App{
		ctx:        ctx,
		data:       deps.Data,
		textures:   deps.Textures,
		uploader:   deps.Uploader,
		randomizer: deps.Randomizer,
		logger:     deps.Logger,
		background: deps.BackgroundImage,
		model:      viewmodel.NewModel(deps.Data, deps.Randomizer),
		search:     search,
		spinner:    s,
		items:      make(map[string]*item.Item),
		pending:    make(map[string]bool),
		width:      120,
		height:     40,
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.spinner.Tick}
	if a.background != "" {
		cmds = append(cmds, a.loadBackground(a.background))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	retry := true

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.search.Focused() {
			cmds = append(cmds, a.handleSearchKey(msg))
		} else {
			cmd, quit := a.handleKey(msg)
			if quit {
				return a, tea.Quit
			}
			cmds = append(cmds, cmd)
		}

	case textureLoadedMsg:
		delete(a.pending, msg.key)
		// Failures are retried on the next interaction, not right away.
		retry = msg.err == nil

	case prefetchDoneMsg:
		for _, key := range msg.keys {
			delete(a.pending, key)
		}
		if msg.err != nil {
			a.logger.Warnf("Some item icons couldn't be loaded: %v", msg.err)
		}
		retry = false

	case championLoadedMsg:
		if msg.id == a.model.Champion.ID {
			a.champion = msg.champion
			a.skills = msg.skills
			if msg.champion != nil {
				a.model.SetChampionTips(msg.id, msg.champion.AllyTips, msg.champion.EnemyTips)
			}
		}

	case itemLoadedMsg:
		if msg.item != nil {
			a.items[msg.id] = msg.item
		}

	case pickMsg:
		a.model.Randomizing = false
		if msg.ok {
			cmds = append(cmds, a.selectChampion(msg.pick.Name))
		}
	}

	if retry {
		cmds = append(cmds, a.requestTextures()...)
	}
	return a, tea.Batch(cmds...)
}

// Keys while typing on the search box.
func (a *App) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.search.Blur()
		a.search.SetValue("")
		a.resetCursors()
		return nil
	case "enter":
		a.search.Blur()
		return a.activate()
	case "up", "down":
		a.moveCursor(msg.String())
		return nil
	}

	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	a.resetCursors()
	return cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	key := msg.String()

	switch key {
	case "q":
		return nil, true
	case "tab":
		a.switchView(1)
		return nil, false
	case "shift+tab":
		a.switchView(-1)
		return nil, false
	case "esc":
		a.search.SetValue("")
		a.model.SetView(viewmodel.ViewDefault)
		return nil, false
	case "/":
		if a.model.View == viewmodel.ViewDefault {
			return nil, false
		}
		return a.search.Focus(), false
	case "up", "down", "k", "j":
		a.moveCursor(key)
		return nil, false
	case "enter":
		return a.activate(), false
	}

	switch a.model.View {
	case viewmodel.ViewChampions:
		return a.handleChampionKey(key), false
	case viewmodel.ViewItems:
		return a.handleItemKey(key), false
	}
	return nil, false
}

func (a *App) handleChampionKey(key string) tea.Cmd {
	switch key {
	case "r":
		if a.model.Randomizing {
			return nil
		}
		a.model.Randomizing = true
		return a.pickChampion()
	case "1", "2", "3", "4", "5":
		a.model.ToggleSkill(skillKeys[key[0]-'1'])
	case "s":
		a.model.ToggleSkins()
	case "]":
		if a.champion != nil {
			a.model.NextSkin(len(a.champion.Skins))
		}
	case "[":
		a.model.PrevSkin()
	case "a":
		a.model.ToggleAllyTips()
	case "A":
		a.model.NextAllyTip()
	case "e":
		a.model.ToggleEnemyTips()
	case "E":
		a.model.NextEnemyTip()
	}
	return nil
}

func (a *App) handleItemKey(key string) tea.Cmd {
	switch key {
	case "1", "2", "3", "4", "5", "6":
		a.model.ShowItemsByTag(viewmodel.ItemFilters[key[0]-'1'].Label)
		a.resetCursors()
		return a.prefetchItemIcons(a.model.Item.Items)
	case "left", "h":
		if a.buildCursor > 0 {
			a.buildCursor--
		}
	case "right", "l":
		if a.buildCursor < len(a.selectedBuildsInto())-1 {
			a.buildCursor++
		}
	case "o":
		into := a.selectedBuildsInto()
		if a.buildCursor < len(into) {
			a.model.OpenBuildInto(into[a.buildCursor])
			return a.afterItemChange()
		}
	case "backspace", "b":
		a.model.Back()
		return a.afterItemChange()
	}
	return nil
}

// Runs the action of the row under the cursor.
func (a *App) activate() tea.Cmd {
	switch a.model.View {
	case viewmodel.ViewChampions:
		names := a.championList()
		if a.champCursor < len(names) {
			return a.selectChampion(names[a.champCursor])
		}
	case viewmodel.ViewItems:
		if a.searchingItems() {
			names := a.itemSearchList()
			if a.itemCursor < len(names) {
				a.model.ShowItem(a.data.ItemID(names[a.itemCursor]))
				a.search.SetValue("")
				return a.afterItemChange()
			}
			return nil
		}
		if a.model.SelectItem(a.itemCursor) {
			return a.afterItemChange()
		}
	}
	return nil
}

func (a *App) selectChampion(name string) tea.Cmd {
	id := a.data.ChampionID(name)
	if id == "" {
		return nil
	}
	if id == a.model.Champion.ID {
		return nil
	}

	a.model.SelectChampion(name, id)
	a.champion = nil
	a.skills = nil

	if i := slices.Index(a.championList(), name); i >= 0 {
		a.champCursor = i
	}
	return a.loadChampion(id)
}

// Sync the cursors with the selected item and load its detail.
func (a *App) afterItemChange() tea.Cmd {
	a.buildCursor = 0
	a.itemCursor = max(a.model.Item.SelectedIndex, 0)

	id, ok := a.model.SelectedItem()
	if !ok {
		return nil
	}
	if _, loaded := a.items[id]; loaded {
		return nil
	}
	return a.loadItem(id)
}

func (a *App) switchView(step int) {
	views := []viewmodel.View{viewmodel.ViewDefault, viewmodel.ViewChampions, viewmodel.ViewItems}
	i := slices.Index(views, a.model.View)
	a.model.SetView(views[(i+step+len(views))%len(views)])
	a.search.Blur()
	a.search.SetValue("")
	a.resetCursors()
}

func (a *App) resetCursors() {
	a.champCursor = 0
	a.itemCursor = max(a.model.Item.SelectedIndex, 0)
}

func (a *App) moveCursor(key string) {
	delta := 1
	if key == "up" || key == "k" {
		delta = -1
	}

	switch a.model.View {
	case viewmodel.ViewChampions:
		a.champCursor = clamp(a.champCursor+delta, len(a.championList()))
	case viewmodel.ViewItems:
		size := len(a.model.Item.Items)
		if a.searchingItems() {
			size = len(a.itemSearchList())
		}
		a.itemCursor = clamp(a.itemCursor+delta, size)
	}
}

func clamp(i, size int) int {
	if i >= size {
		i = size - 1
	}
	return max(i, 0)
}

func (a *App) championList() []string {
	return viewmodel.Filter(a.data.ChampionNames(), a.search.Value())
}

func (a *App) searchingItems() bool {
	return a.search.Value() != ""
}

func (a *App) itemSearchList() []string {
	return viewmodel.Filter(a.data.ItemNames(), a.search.Value())
}

func (a *App) selectedBuildsInto() []string {
	id, ok := a.model.SelectedItem()
	if !ok {
		return nil
	}
	if it, loaded := a.items[id]; loaded {
		return it.Into
	}
	return nil
}

// Start loading every texture the current view shows and is not cached yet.
func (a *App) requestTextures() []tea.Cmd {
	var cmds []tea.Cmd
	request := func(key, url string) {
		if url == "" || a.pending[key] {
			return
		}
		if _, ok := a.textures.Peek(key); ok {
			return
		}
		cmds = append(cmds, a.loadTexture(key, url))
	}

	switch a.model.View {
	case viewmodel.ViewChampions:
		key, url := a.splash()
		request(key, url)
		for _, skill := range a.skills {
			if skill.Key == a.model.Champion.Skill {
				request(skill.IconURL, skill.IconURL)
			}
		}
	case viewmodel.ViewItems:
		if id, ok := a.model.SelectedItem(); ok {
			request(itemIconKey(id), a.data.ItemImageURL(id))
		}
	}
	return cmds
}

// Texture key and url of the splash art being shown.
func (a *App) splash() (string, string) {
	id := a.model.Champion.ID
	if id == "" {
		return "", ""
	}

	num := 0
	if a.model.Champion.ShowSkins && a.champion != nil && a.model.Champion.SkinIndex < len(a.champion.Skins) {
		num = a.champion.Skins[a.model.Champion.SkinIndex].Num
	}
	key := skinKey(id, num)
	return key, a.data.ChampionSkinImageURL(id, itoa(num))
}
