// Package browse is a full-screen archive browser: moods on the left, the
// matching dreams on the right and the selected dream underneath.
package browse

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/dreams/pkg/dream"
	"tableflip.dev/dreams/pkg/filter"
	"tableflip.dev/dreams/pkg/store"
)

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeCommand
	modeHelp
)

const (
	paneMoods = iota
	paneDreams
)

const allMoods = "all"

// moodItem is a row of the left pane.
type moodItem struct{ name string }

func (m moodItem) Title() string       { return m.name }
func (m moodItem) Description() string { return "" }
func (m moodItem) FilterValue() string { return m.name }

// dreamItem is a row of the right pane.
type dreamItem struct{ d *dream.Dream }

func (it dreamItem) Title() string {
	marker := " "
	if !it.d.IsProcessed {
		marker = "*"
	}
	return fmt.Sprintf("%s %s  %s", marker, it.d.Date.Local().Format("Jan 02"), it.d.DisplayTitle())
}
func (it dreamItem) Description() string { return "" }
func (it dreamItem) FilterValue() string { return it.d.DisplayTitle() }

// Model contains UI state.
type Model struct {
	store *store.Store
	ctx   context.Context
	mode  mode
	focus int

	moodList  list.Model
	dreamList list.Model
	input     textinput.Model

	search string
	status string

	awaitingDD bool
	lastDTime  time.Time

	termWidth  int
	termHeight int

	focusDel list.DefaultDelegate
	blurDel  list.DefaultDelegate
}

// New creates a browser over s.
func New(ctx context.Context, s *store.Store) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	dFocus := list.NewDefaultDelegate()
	dBlur := list.NewDefaultDelegate()
	dBlur.Styles.SelectedTitle = dBlur.Styles.NormalTitle
	dBlur.Styles.SelectedDesc = dBlur.Styles.NormalDesc
	dFocus.ShowDescription = false
	dBlur.ShowDescription = false
	dFocus.SetSpacing(0)
	dBlur.SetSpacing(0)

	items := []list.Item{moodItem{name: allMoods}}
	for _, m := range dream.AllMoods() {
		items = append(items, moodItem{name: m.String()})
	}
	l1 := list.New(items, dBlur, 16, 12)
	l1.Title = "Moods"
	l1.SetShowHelp(false)
	l1.SetShowStatusBar(false)
	l1.SetFilteringEnabled(false)

	l2 := list.New([]list.Item{}, dFocus, 60, 12)
	l2.Title = "Dreams"
	l2.SetShowHelp(false)
	l2.SetShowStatusBar(false)
	l2.SetFilteringEnabled(false)

	ti := textinput.New()
	ti.Placeholder = "search"
	ti.CharLimit = 256
	ti.Prompt = ""

	m := Model{
		store:     s,
		ctx:       ctx,
		mode:      modeNormal,
		focus:     paneDreams,
		moodList:  l1,
		dreamList: l2,
		input:     ti,
		status:    "h/l move panes, j/k move, / search, dd delete, r reload, ? help, :q quit",
		focusDel:  dFocus,
		blurDel:   dBlur,
	}
	m.updateFocusHeaders()
	return m
}

// messages
type errMsg struct{ err error }
type dreamsLoadedMsg struct{ items []list.Item }
type changedMsg struct{ ch <-chan struct{} }

// Init loads the dreams and starts following storage changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadDreams(), m.watch(nil))
}

// filter is the query described by the selected mood and the search text.
func (m *Model) filter() filter.Filter {
	f := filter.Filter{SearchText: m.search}
	if name := m.selectedMood(); name != "" && name != allMoods {
		mood := dream.Mood(name)
		f.Mood = &mood
	}
	return f
}

func (m *Model) selectedMood() string {
	sel := m.moodList.SelectedItem()
	if sel == nil {
		return ""
	}
	return sel.(moodItem).name
}

func (m *Model) loadDreams() tea.Cmd {
	f := m.filter()
	s := m.store
	return func() tea.Msg {
		if s == nil {
			return dreamsLoadedMsg{nil}
		}
		s.SetFilter(f)
		found := s.Query()
		items := make([]list.Item, 0, len(found))
		for _, d := range found {
			items = append(items, dreamItem{d: d})
		}
		return dreamsLoadedMsg{items}
	}
}

// watch waits for the next storage change. A nil ch subscribes first.
func (m *Model) watch(ch <-chan struct{}) tea.Cmd {
	s := m.store
	ctx := m.ctx
	return func() tea.Msg {
		if s == nil {
			return nil
		}
		if ch == nil {
			var err error
			ch, err = s.Watch(ctx)
			if err != nil {
				// Memory-only journals have nothing to follow.
				return nil
			}
		}
		if _, ok := <-ch; !ok {
			return nil
		}
		return changedMsg{ch: ch}
	}
}

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	skipListRouting := false

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case errMsg:
		m.status = "ERR: " + msg.err.Error()
	case dreamsLoadedMsg:
		m.dreamList.SetItems(msg.items)
	case changedMsg:
		m.status = "Journal changed on disk, reloaded"
		cmds = append(cmds, m.loadDreams(), m.watch(msg.ch))
	case tea.KeyPressMsg:
		switch m.mode {
		case modeHelp:
			if key := msg.String(); key == "q" || key == "esc" || key == "?" {
				m.mode = modeNormal
			}
			skipListRouting = true
		case modeSearch:
			switch msg.String() {
			case "enter":
				m.search = strings.TrimSpace(m.input.Value())
				if m.search == "" {
					m.status = "Search cleared"
				} else {
					m.status = fmt.Sprintf("Searching for %q", m.search)
				}
				m.mode = modeNormal
				m.input.Blur()
				cmds = append(cmds, m.loadDreams())
				skipListRouting = true
			case "esc":
				m.mode = modeNormal
				m.input.Reset()
				m.input.Blur()
				m.status = "Search cancelled"
				skipListRouting = true
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				cmds = append(cmds, cmd)
				skipListRouting = true
			}
		case modeCommand:
			switch msg.String() {
			case "enter":
				switch input := strings.TrimSpace(m.input.Value()); input {
				case "q", "quit", "exit":
					cmds = append(cmds, tea.Quit)
				case "":
				default:
					m.status = fmt.Sprintf("Unknown command: %s", input)
				}
				m.mode = modeNormal
				m.input.Reset()
				m.input.Blur()
				skipListRouting = true
			case "esc":
				m.mode = modeNormal
				m.input.Reset()
				m.input.Blur()
				m.status = "Command cancelled"
				skipListRouting = true
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				cmds = append(cmds, cmd)
				skipListRouting = true
			}
		case modeNormal:
			switch msg.String() {
			case ":":
				m.enterInput(modeCommand, "command", "", &cmds)
				m.status = "COMMAND: type :q or :exit to quit"
				skipListRouting = true
			case "/":
				m.enterInput(modeSearch, "search", m.search, &cmds)
				m.status = "SEARCH: enter to apply, esc to cancel"
				skipListRouting = true
			case "h", "left":
				m.focus = paneMoods
				m.updateFocusHeaders()
				skipListRouting = true
			case "l", "right":
				m.focus = paneDreams
				m.updateFocusHeaders()
				skipListRouting = true
			case "j", "down":
				if m.focus == paneMoods {
					m.moodList.CursorDown()
					cmds = append(cmds, m.loadDreams())
				} else {
					m.dreamList.CursorDown()
				}
				skipListRouting = true
			case "k", "up":
				if m.focus == paneMoods {
					m.moodList.CursorUp()
					cmds = append(cmds, m.loadDreams())
				} else {
					m.dreamList.CursorUp()
				}
				skipListRouting = true
			case "g":
				if m.focus == paneMoods {
					m.moodList.Select(0)
					cmds = append(cmds, m.loadDreams())
				} else {
					m.dreamList.Select(0)
				}
				skipListRouting = true
			case "G":
				if m.focus == paneMoods {
					m.moodList.Select(len(m.moodList.Items()) - 1)
					cmds = append(cmds, m.loadDreams())
				} else {
					m.dreamList.Select(len(m.dreamList.Items()) - 1)
				}
				skipListRouting = true
			case "d":
				if d := m.currentDream(); d != nil {
					if m.awaitingDD && time.Since(m.lastDTime) < 600*time.Millisecond {
						m.deleteDream(d, &cmds)
						m.awaitingDD = false
					} else {
						m.awaitingDD = true
						m.lastDTime = time.Now()
					}
				}
				skipListRouting = true
			case "r":
				m.status = "Reloaded"
				cmds = append(cmds, m.reload())
				skipListRouting = true
			case "?":
				m.mode = modeHelp
				skipListRouting = true
			case "q":
				m.status = "Use :q or :exit to quit"
				skipListRouting = true
			}
		}
	}

	if m.mode == modeNormal && !skipListRouting {
		var cmd tea.Cmd
		if m.focus == paneMoods {
			m.moodList, cmd = m.moodList.Update(msg)
		} else {
			m.dreamList, cmd = m.dreamList.Update(msg)
		}
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) currentDream() *dream.Dream {
	if len(m.dreamList.Items()) == 0 {
		return nil
	}
	sel := m.dreamList.SelectedItem()
	if sel == nil {
		return nil
	}
	it, ok := sel.(dreamItem)
	if !ok {
		return nil
	}
	return it.d
}

func (m *Model) deleteDream(d *dream.Dream, cmds *[]tea.Cmd) {
	if err := m.store.Delete(d.ID); err != nil {
		*cmds = append(*cmds, func() tea.Msg { return errMsg{err} })
		return
	}
	m.status = fmt.Sprintf("Deleted %q", d.DisplayTitle())
	*cmds = append(*cmds, m.loadDreams())
}

func (m *Model) reload() tea.Cmd {
	s := m.store
	ctx := m.ctx
	load := m.loadDreams()
	return func() tea.Msg {
		if err := s.Reload(ctx); err != nil {
			return errMsg{err}
		}
		return load()
	}
}

func (m *Model) enterInput(next mode, placeholder, value string, cmds *[]tea.Cmd) {
	m.mode = next
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	if cmd := m.input.Focus(); cmd != nil {
		*cmds = append(*cmds, cmd)
	}
	*cmds = append(*cmds, textinput.Blink)
}

// View renders both panes, the selected dream and the status line.
func (m Model) View() string {
	gap := lipgloss.NewStyle().Padding(0, 1).Render
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.moodList.View(), gap(" "), m.dreamList.View())

	if d := m.currentDream(); d != nil {
		panel := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
		body += "\n" + panel.Render(m.detail(d))
	}

	switch m.mode {
	case modeSearch:
		body += "\n\n/" + m.input.View()
	case modeCommand:
		body += "\n\n:" + m.input.View()
	case modeHelp:
		help := "Keys: ←/→ switch panes, ↑/↓ move, g/G top/bottom, / search, dd delete, r reload, :q quit"
		body += "\n\n" + lipgloss.NewStyle().Italic(true).Render(help)
	}

	modeStr := map[mode]string{modeNormal: "NORMAL", modeSearch: "SEARCH", modeCommand: "CMD", modeHelp: "HELP"}[m.mode]
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(
		fmt.Sprintf("[%s] %s (%d shown)", modeStr, m.status, len(m.dreamList.Items())))
	return body + "\n\n" + status
}

func (m *Model) detail(d *dream.Dream) string {
	width := m.termWidth - 6
	if width < 20 {
		width = 72
	}
	title := lipgloss.NewStyle().Bold(true).Render(d.DisplayTitle())
	meta := fmt.Sprintf("%s · %s · %s surreal", dream.FormatForDisplay(d.Date.Time), d.Mood, d.SurrealLevel)
	lines := []string{title, meta, "", wordwrap.String(dream.Excerpt(d.Body(), 600), width)}
	if len(d.Characters) > 0 {
		lines = append(lines, "", "Characters: "+strings.Join(d.Characters, ", "))
	}
	if len(d.Symbols) > 0 {
		lines = append(lines, "Symbols: "+strings.Join(d.Symbols, ", "))
	}
	return strings.Join(lines, "\n")
}

// applySizes recalculates list sizes based on current terminal size.
func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	left := m.termWidth / 5
	if left < 14 {
		left = 14
	}
	right := m.termWidth - left - 4
	if right < 20 {
		right = 20
	}
	// Half the height for the lists, the rest for the detail panel and status.
	height := m.termHeight / 2
	if height < 5 {
		height = 5
	}
	m.moodList.SetSize(left, height)
	m.dreamList.SetSize(right, height)
}

// updateFocusHeaders updates pane titles to reflect which pane is focused.
func (m *Model) updateFocusHeaders() {
	const on = "» "
	const off = "  "
	if m.focus == paneMoods {
		m.moodList.Title = on + "Moods"
		m.dreamList.Title = off + "Dreams"
		m.moodList.SetDelegate(m.focusDel)
		m.dreamList.SetDelegate(m.blurDel)
	} else {
		m.moodList.Title = off + "Moods"
		m.dreamList.Title = on + "Dreams"
		m.moodList.SetDelegate(m.blurDel)
		m.dreamList.SetDelegate(m.focusDel)
	}
}

// Browse runs the browser until the user quits.
type Browse struct {
	Store *store.Store
}

// Do executes the runner.
func (b *Browse) Do(ctx context.Context) error {
	p := tea.NewProgram(New(ctx, b.Store), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
