package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/pagethumbs/internal/config"
	"github.com/llehouerou/pagethumbs/internal/errmsg"
	"github.com/llehouerou/pagethumbs/internal/source"
	"github.com/llehouerou/pagethumbs/internal/state"
	"github.com/llehouerou/pagethumbs/internal/thumbcache"
	"github.com/llehouerou/pagethumbs/internal/thumbnail"
	"github.com/llehouerou/pagethumbs/internal/ui/kittyimg"
	"github.com/llehouerou/pagethumbs/internal/ui/sizectl"
	"github.com/llehouerou/pagethumbs/internal/ui/styles"
)

// Preview area in terminal cells. Cells are about twice as tall as wide.
const (
	previewCols = 32
	previewRows = 16
)

type previewMsg struct {
	size int
	seq  string
	err  error
}

type model struct {
	ref      thumbnail.Ref
	renderer thumbcache.Renderer
	stateMgr *state.Manager
	sizer    sizectl.Model
	kitty    bool

	preview     string
	previewSize int
	status      string
	saved       bool
}

func initialModel(path string) (model, error) {
	cfg, err := config.Load()
	if err != nil {
		return model{}, errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}
	thumbCfg := cfg.GetThumbnailConfig()

	opts, err := thumbCfg.RendererOptions()
	if err != nil {
		return model{}, errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}

	stateMgr, err := state.Open()
	if err != nil {
		return model{}, errors.New(errmsg.Format(errmsg.OpStateOpen, err))
	}
	stateMgr.SetFallbackSize(thumbCfg.Size)

	files := source.FileProvider{}
	svc := thumbnail.NewService(thumbnail.New(opts...), files, stateMgr)

	// Without a cache every preview is rendered
	cache, _ := thumbcache.New("")

	return model{
		ref:      thumbnail.Ref(path),
		renderer: thumbcache.NewRenderer(svc, cache, files.ModTime),
		stateMgr: stateMgr,
		sizer:    sizectl.New(svc.DefaultSize()),
		kitty:    kittyimg.Supported(),
	}, nil
}

func (m model) Init() tea.Cmd {
	return m.renderPreview(m.sizer.Size())
}

func (m model) renderPreview(size int) tea.Cmd {
	ref, renderer, kitty := m.ref, m.renderer, m.kitty
	return func() tea.Msg {
		img, err := renderer.RenderRef(context.Background(), ref, size)
		if err != nil {
			return previewMsg{size: size, err: err}
		}
		if !kitty {
			return previewMsg{size: size}
		}
		seq, err := kittyimg.EncodeImage(img, previewCols, previewRows)
		return previewMsg{size: size, seq: seq, err: err}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case previewMsg:
		// Drop renders for sizes the user has already moved past
		if msg.size != m.sizer.Size() {
			return m, nil
		}
		m.previewSize = msg.size
		m.preview = msg.seq
		m.status = errmsg.FormatWith(errmsg.OpThumbnailRender, filepath.Base(string(m.ref)), msg.err)
		return m, nil

	case sizectl.ChangedMsg:
		return m, m.renderPreview(msg.Size)

	case sizectl.ConfirmedMsg:
		m.stateMgr.SaveThumbnailSize(msg.Size)
		if err := m.stateMgr.FlushThumbnailSize(); err != nil {
			m.status = errmsg.Format(errmsg.OpSizeSave, err)
			return m, nil
		}
		m.saved = true
		return m, tea.Quit

	case sizectl.CancelledMsg:
		return m, tea.Quit
	}

	updated, cmd := m.sizer.Update(msg)
	if s, ok := updated.(sizectl.Model); ok {
		m.sizer = s
	}
	return m, cmd
}

func (m model) View() string {
	var preview string
	switch {
	case m.preview != "" && m.previewSize == m.sizer.Size():
		// Blank cells for layout, the image is drawn over them
		blank := strings.Repeat(strings.Repeat(" ", previewCols)+"\n", previewRows-1) +
			strings.Repeat(" ", previewCols)
		preview = kittyimg.DeleteAll() + m.preview + blank
	default:
		label := fmt.Sprintf("%dpx", m.sizer.Size())
		if m.previewSize != m.sizer.Size() {
			label = "rendering…"
		}
		preview = kittyimg.Placeholder(previewCols, previewRows, label)
	}

	st := styles.T().S()
	content := lipgloss.JoinVertical(lipgloss.Left,
		st.Muted.Render(filepath.Base(string(m.ref))),
		"",
		m.sizer.View(),
		"",
		preview,
	)
	if m.status != "" {
		content += "\n" + st.Error.Render(m.status)
	}
	return st.Panel.Render(content)
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: pagethumbs <image>")
		os.Exit(2)
	}

	m, err := initialModel(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	closeErr := m.stateMgr.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if closeErr != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpSizeSave, closeErr))
		os.Exit(1)
	}

	if fm, ok := final.(model); ok && fm.saved {
		fmt.Printf("Thumbnail size set to %dpx\n", fm.sizer.Size())
	}
}
