package cli

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stickerboard/pkg/board"
	"github.com/matzehuels/stickerboard/pkg/geom"
	"github.com/matzehuels/stickerboard/pkg/observability"
	"github.com/matzehuels/stickerboard/pkg/sink"
)

// A terminal cell stands for cellWidth x cellHeight viewport pixels, roughly
// the aspect ratio of a monospace glyph.
const (
	cellWidth   = 10.0
	cellHeight  = 20.0
	statusLines = 2
)

// playCommand creates the play command.
func (c *CLI) playCommand() *cobra.Command {
	var bf boardFlags

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Drag stickers around a live board in the terminal",
		Long: `Play opens a full-screen board sized to the terminal. Drag stickers with
the mouse; resize the terminal and the stickers follow, keeping their
relative positions. Press q to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			// Log lines would tear the alternate screen.
			observability.SetBoardHooks(observability.NoopBoardHooks{})

			changes := newChangeSignal()
			sess, names, err := c.prepareBoard(ctx, &bf, func(board.Snapshot) { changes.notify() })
			if err != nil {
				return err
			}
			defer sess.Close()
			defer changes.close()

			p := tea.NewProgram(newPlayModel(sess, names, changes),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithContext(ctx),
			)
			final, err := p.Run()
			if errors.Is(err, tea.ErrProgramKilled) {
				return ctx.Err()
			}
			if err != nil {
				return err
			}
			m, ok := final.(playModel)
			if ok && m.err != nil {
				return m.err
			}
			if ok && m.placed >= 0 {
				printInfo("Placed %d of %d stickers, %d drags", m.placed, len(names), m.drags)
			}
			return nil
		},
	}

	bf.register(cmd)
	return cmd
}

// =============================================================================
// Change Signal
// =============================================================================

// changeSignal wakes the UI when the board changes off the event loop, i.e.
// when a debounced resize settles. It holds at most one pending wakeup.
type changeSignal struct {
	c    chan struct{}
	done chan struct{}
	once sync.Once
}

type boardChangedMsg struct{}

func newChangeSignal() *changeSignal {
	return &changeSignal{c: make(chan struct{}, 1), done: make(chan struct{})}
}

func (s *changeSignal) notify() {
	select {
	case s.c <- struct{}{}:
	default:
	}
}

// wait returns a command that delivers the next change, or nothing once the
// signal is closed.
func (s *changeSignal) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-s.c:
			return boardChangedMsg{}
		case <-s.done:
			return nil
		}
	}
}

// close releases a pending wait. It may be called more than once.
func (s *changeSignal) close() {
	s.once.Do(func() { close(s.done) })
}

// =============================================================================
// Model
// =============================================================================

type playModel struct {
	sess    *board.Session
	names   []string
	changes *changeSignal

	snap   board.Snapshot
	cols   int
	rows   int
	placed int
	drags  int
	err    error

	dragging string
	grab     geom.Point // pointer offset from the dragged sticker's top-left
	dragPos  geom.Point
}

func newPlayModel(sess *board.Session, names []string, changes *changeSignal) playModel {
	return playModel{sess: sess, names: names, changes: changes, placed: -1}
}

func (m playModel) Init() tea.Cmd {
	return m.changes.wait()
}

// viewport converts the terminal size to board pixels.
func (m playModel) viewport() geom.Size {
	return geom.Size{
		Width:  float64(m.cols) * cellWidth,
		Height: float64(max(m.rows-statusLines, 1)) * cellHeight,
	}
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.sess.Close()
			m.changes.close()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		vp := m.viewport()
		if m.sess.Phase() == board.PhaseUninitialized {
			placed, err := m.sess.Initialize(vp, m.names)
			if err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.placed = placed
		} else {
			m.sess.ScheduleResize(vp.Width, vp.Height)
		}
		m.snap = m.sess.Snapshot()

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case boardChangedMsg:
		m.snap = m.sess.Snapshot()
		return m, m.changes.wait()
	}
	return m, nil
}

func (m playModel) handleMouse(msg tea.MouseMsg) playModel {
	pointer := geom.Point{X: float64(msg.X) * cellWidth, Y: float64(msg.Y) * cellHeight}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m
		}
		if it, ok := m.hit(pointer); ok {
			m.dragging = it.ID
			m.grab = geom.Point{X: pointer.X - it.X, Y: pointer.Y - it.Y}
			m.dragPos = geom.Point{X: it.X, Y: it.Y}
		}
	case tea.MouseActionMotion:
		if m.dragging != "" {
			m.dragPos = m.constrain(geom.Point{X: pointer.X - m.grab.X, Y: pointer.Y - m.grab.Y})
		}
	case tea.MouseActionRelease:
		if m.dragging == "" {
			return m
		}
		if m.sess.OnDragCommitted(m.dragging, m.dragPos.X, m.dragPos.Y) {
			m.drags++
		}
		m.dragging = ""
		m.snap = m.sess.Snapshot()
	}
	return m
}

// constrain keeps a dragged sticker fully on the board.
func (m playModel) constrain(p geom.Point) geom.Point {
	vp, size := m.snap.Viewport, m.snap.ItemSize
	return geom.Point{
		X: geom.Clamp(p.X, 0, max(vp.Width-size, 0)),
		Y: geom.Clamp(p.Y, 0, max(vp.Height-size, 0)),
	}
}

// hit returns the topmost sticker under p.
func (m playModel) hit(p geom.Point) (board.ItemView, bool) {
	size := m.snap.ItemSize
	for i := len(m.snap.Items) - 1; i >= 0; i-- {
		it := m.snap.Items[i]
		if p.X >= it.X && p.X < it.X+size && p.Y >= it.Y && p.Y < it.Y+size {
			return it, true
		}
	}
	return board.ItemView{}, false
}

// =============================================================================
// View
// =============================================================================

func (m playModel) View() string {
	if m.cols == 0 {
		return "loading…"
	}

	var b strings.Builder
	b.WriteString(m.renderBoard())
	b.WriteString(m.renderStatus())
	return b.String()
}

// renderBoard rasterizes stickers into terminal cells in z order.
func (m playModel) renderBoard() string {
	rows := max(m.rows-statusLines, 1)
	cells := make([][]int, rows)
	text := make([][]rune, rows)
	for r := range cells {
		cells[r] = make([]int, m.cols)
		text[r] = []rune(strings.Repeat(" ", m.cols))
		for c := range cells[r] {
			cells[r][c] = -1
		}
	}

	for i, it := range m.snap.Items {
		pos := geom.Point{X: it.X, Y: it.Y}
		if it.ID == m.dragging {
			pos = m.dragPos
		}
		m.paint(cells, text, i, pos, it)
	}

	var b strings.Builder
	for r := range cells {
		b.WriteString(renderRow(cells[r], text[r], m.snap.Items, m.dragging))
		b.WriteByte('\n')
	}
	return b.String()
}

func (m playModel) paint(cells [][]int, text [][]rune, idx int, pos geom.Point, it board.ItemView) {
	size := m.snap.ItemSize
	c0, r0 := int(pos.X/cellWidth), int(pos.Y/cellHeight)
	w, h := max(int(size/cellWidth), 1), max(int(size/cellHeight), 1)

	for r := r0; r < r0+h; r++ {
		if r < 0 || r >= len(cells) {
			continue
		}
		for c := c0; c < c0+w; c++ {
			if c < 0 || c >= len(cells[r]) {
				continue
			}
			cells[r][c] = idx
			text[r][c] = ' '
		}
	}

	lines := []string{sink.Label(it.Asset), fmt.Sprintf("%+.0f°", it.Rotation)}
	top := r0 + (h-len(lines))/2
	for i, line := range lines {
		r := top + i
		if r < 0 || r >= len(text) {
			continue
		}
		runes := []rune(line)
		if len(runes) > w {
			runes = runes[:w]
		}
		start := c0 + (w-len(runes))/2
		for j, ch := range runes {
			if c := start + j; c >= 0 && c < len(text[r]) {
				text[r][c] = ch
			}
		}
	}
}

// renderRow styles runs of cells that belong to the same sticker.
func renderRow(owner []int, text []rune, items []board.ItemView, dragging string) string {
	var b strings.Builder
	for start := 0; start < len(owner); {
		end := start + 1
		for end < len(owner) && owner[end] == owner[start] {
			end++
		}
		run := string(text[start:end])
		if idx := owner[start]; idx >= 0 {
			style := lipgloss.NewStyle().
				Background(stickerColors[items[idx].Order%len(stickerColors)]).
				Foreground(lipgloss.Color("235"))
			if items[idx].ID == dragging {
				style = style.Bold(true).Underline(true)
			}
			run = style.Render(run)
		}
		b.WriteString(run)
		start = end
	}
	return b.String()
}

func (m playModel) renderStatus() string {
	vp := m.snap.Viewport
	info := fmt.Sprintf("%.0fx%.0fpx · %.0fpx stickers · %d/%d placed · %d drags",
		vp.Width, vp.Height, m.snap.ItemSize, len(m.snap.Items), len(m.names), m.drags)
	if m.sess.ResizePending() {
		info += " · resizing…"
	}
	return StyleTitle.Render(appName) + "  " + StyleDim.Render(info) + "\n" +
		StyleDim.Render("drag with the mouse · resize the terminal · q quit")
}
