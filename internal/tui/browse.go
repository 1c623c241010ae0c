// Package tui implements the interactive collection browser built on
// Bubble Tea. The browser shows the logged-in account's games, toggles the
// in-use flag, removes games, and drives the swap menu; every mutation goes
// through the engine's propose/commit protocol with inline confirmation.
package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"
	"unsafe"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/swapshelf/pkg/engine"
	"github.com/mesh-intelligence/swapshelf/pkg/types"
)

// gameItem adapts a types.Game to bubbles/list.Item.
type gameItem struct {
	game types.Game
}

func (i gameItem) lineText() string {
	g := i.game
	glyph := glyphOwned
	note := ""
	switch {
	case g.Custody == types.CustodyOnLoan:
		glyph = glyphSwapped
		note = fmt.Sprintf("lent to %s", g.SwapPartner)
	case g.Custody == types.CustodyBorrowed:
		glyph = glyphBorrowed
		note = fmt.Sprintf("from %s", g.OriginalOwner)
	case g.InUse:
		glyph = glyphPlaying
		note = "in use"
	}
	line := fmt.Sprintf("%s %s [%s]", glyph, g.Title, g.Platform)
	if note != "" {
		line += " " + note
	}
	return line
}

// Implement list.Item interface.
func (i gameItem) Title() string       { return i.lineText() }
func (i gameItem) Description() string { return "" }
func (i gameItem) FilterValue() string { return i.game.Title }

// Custom delegate to control how games render (single line).
type gameDelegate struct{}

func (d gameDelegate) Height() int                               { return 1 }
func (d gameDelegate) Spacing() int                              { return 0 }
func (d gameDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d gameDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(gameItem)
	g := it.game

	glyph, rest := splitGlyph(it.lineText())
	switch {
	case g.Custody == types.CustodyOnLoan:
		glyph = mutedStyle.Render(glyphSwapped)
		rest = lentStyle.Render(rest)
	case g.Custody == types.CustodyBorrowed:
		glyph = accentStyle.Render(glyphBorrowed)
	case g.InUse:
		glyph = playingStyle.Render(glyphPlaying)
	default:
		glyph = mutedStyle.Render(glyphOwned)
	}

	line := fmt.Sprintf("%s %s", glyph, rest)
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

func splitGlyph(raw string) (string, string) {
	space := strings.Index(raw, " ")
	if space < 0 {
		return raw, ""
	}
	return raw[:space], strings.TrimSpace(raw[space:])
}

type browseModel struct {
	list     list.Model
	accounts []types.Account
	sess     *engine.Session
	changed  bool

	// Inline confirmation for a proposed operation.
	confirming bool
	pending    *engine.PendingOp

	// Swap-menu counterpart picker.
	picking      bool
	counterparts []string
	pickIndex    int

	status string // last error or notice, shown under the list
}

// Run starts the interactive browser for the logged-in account and returns
// the updated account list plus whether anything changed. The caller commits
// the result to the shelf and persists the session.
func Run(accounts []types.Account, sess *engine.Session) ([]types.Account, bool, error) {
	active, ok := types.FindAccount(accounts, sess.Handle)
	if !ok {
		return nil, false, engine.ErrAccountNotFound
	}

	m := browseModel{
		list:     newGameList(active),
		accounts: accounts,
		sess:     sess,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, false, err
	}
	fm, okModel := finalModel.(browseModel)
	if !okModel {
		return accounts, false, nil
	}
	return fm.accounts, fm.changed, nil
}

// newGameList builds the bubbles list for one account's collection, header
// counts included.
func newGameList(acct types.Account) list.Model {
	l := list.New(gameItems(acct), gameDelegate{}, 0, 0)

	stats := acct.Stats()
	l.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render(acct.Handle+"'s shelf"),
		accentStyle.Render("games"), stats.Games,
		playingStyle.Render(glyphPlaying), stats.Playing,
		successStyle.Render(glyphSwapped), stats.Sent+stats.Received,
	)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("game", "games")

	// Extend help with the swap-specific bindings.
	useBind := key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "in use"))
	swapBind := key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "swap"))
	removeBind := key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove"))
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{useBind, swapBind, removeBind} }
	l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{useBind, swapBind, removeBind} }
	return l
}

func gameItems(acct types.Account) []list.Item {
	li := make([]list.Item, 0, len(acct.Games))
	for _, g := range acct.Games {
		li = append(li, gameItem{game: g})
	}
	return li
}

// active returns the logged-in account from the model's account list.
func (m browseModel) active() (types.Account, bool) {
	return types.FindAccount(m.accounts, m.sess.Handle)
}

// selectedGame returns the game under the cursor.
func (m browseModel) selectedGame() (types.Game, bool) {
	i := m.list.Index()
	items := m.list.Items()
	if i < 0 || i >= len(items) {
		return types.Game{}, false
	}
	it, ok := items[i].(gameItem)
	if !ok {
		return types.Game{}, false
	}
	return it.game, true
}

// applyPending commits the pending operation and folds the updated accounts
// back into the model.
func (m browseModel) applyPending(confirmed bool) browseModel {
	updated, applied, err := m.pending.Commit(confirmed)
	m.pending = nil
	m.confirming = false
	if err != nil {
		m.status = err.Error()
		return m
	}
	if !applied {
		m.status = ""
		return m
	}
	m.accounts = types.ReplaceAccounts(m.accounts, updated...)
	m.changed = true
	m.status = ""
	if active, ok := m.active(); ok {
		m.list.SetItems(gameItems(active))
	}
	return m
}

func (m browseModel) Init() tea.Cmd { return nil }

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// confirmation mode
	if m.confirming {
		if x, ok := msg.(tea.KeyMsg); ok {
			switch x.String() {
			case "y", "Y", "enter":
				return m.applyPending(true), nil
			case "n", "N", "esc", "q":
				return m.applyPending(false), nil
			}
		}
		return m, nil
	}

	// counterpart picker mode
	if m.picking {
		if x, ok := msg.(tea.KeyMsg); ok {
			switch x.String() {
			case "up", "k":
				if m.pickIndex > 0 {
					m.pickIndex--
				}
				return m, nil
			case "down", "j":
				if m.pickIndex < len(m.counterparts)-1 {
					m.pickIndex++
				}
				return m, nil
			case "enter":
				op, err := engine.ProposeSwap(m.sess, m.accounts, m.counterparts[m.pickIndex])
				m.picking = false
				if err != nil {
					m.status = err.Error()
					m.sess.ClearSelection()
					return m, nil
				}
				m.pending = op
				m.confirming = true
				return m, nil
			case "esc", "q", "s":
				m.picking = false
				m.sess.ClearSelection()
				return m, nil
			}
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case " ":
			g, ok := m.selectedGame()
			if !ok {
				return m, nil
			}
			active, _ := m.active()
			op, err := engine.ProposeSetInUse(m.sess, active, g.GameID)
			if err != nil {
				m.status = err.Error()
				return m, nil
			}
			if !op.NeedsConfirm() {
				m.pending = op
				return m.applyPending(true), nil
			}
			m.pending = op
			m.confirming = true
			return m, nil
		case "d":
			g, ok := m.selectedGame()
			if !ok {
				return m, nil
			}
			active, _ := m.active()
			op, err := engine.ProposeRemove(m.sess, active, g.GameID)
			if err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.pending = op
			m.confirming = true
			return m, nil
		case "s":
			g, ok := m.selectedGame()
			if !ok {
				return m, nil
			}
			active, _ := m.active()
			open, err := m.sess.ToggleMenu(active, g.GameID)
			if err != nil {
				m.status = err.Error()
				return m, nil
			}
			if !open {
				return m, nil
			}
			m.counterparts = m.sess.Counterparts(m.accounts)
			if len(m.counterparts) == 0 {
				m.sess.ClearSelection()
				m.status = "nobody to swap with"
				return m, nil
			}
			m.picking = true
			m.pickIndex = 0
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m browseModel) View() string {
	w, h := widthHeight()
	listHeight := h - 4
	if m.confirming || m.picking || m.status != "" {
		listHeight = h - 6
	}
	m.list.SetSize(w-2, listHeight)

	content := m.list.View()
	switch {
	case m.confirming && m.pending != nil:
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		content += "\n" + bar.Render(m.pending.Message+"  "+helpStyle.Render("y/n"))
	case m.picking:
		lines := make([]string, 0, len(m.counterparts)+1)
		lines = append(lines, titleStyle.Render("Swap with")+"  "+helpStyle.Render("enter to pick, esc to close"))
		for i, handle := range m.counterparts {
			prefix := "  "
			if i == m.pickIndex {
				prefix = selectedStyle.Render("> ")
			}
			lines = append(lines, prefix+handle)
		}
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		content += "\n" + bar.Render(strings.Join(lines, "\n"))
	case m.status != "":
		content += "\n" + errorStyle.Render(m.status)
	}
	return panelString(content)
}

func widthHeight() (int, int) {
	w, h := 80, 24
	if tw, th, err := termSize(); err == nil {
		w, h = tw, th
	}
	return w, h
}

// portable terminal size
func termSize() (int, int, error) {
	fd := int(os.Stdout.Fd())
	type winsize struct {
		Row, Col, Xpixel, Ypixel uint16
	}
	ws := &winsize{}
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL,
		uintptr(fd), uintptr(syscall.TIOCGWINSZ), uintptr(unsafe.Pointer(ws)))
	if errno != 0 {
		return 0, 0, fmt.Errorf("ioctl: %v", errno)
	}
	return int(ws.Col), int(ws.Row), nil
}
