package ui

import (
	"context"
	"fmt"
	"time"

	tcell "github.com/gdamore/tcell/v2"
	domain "github.com/inference-gateway/envkeys/internal/domain"
	tcellinput "github.com/inference-gateway/envkeys/internal/input/tcellinput"
	runewidth "github.com/mattn/go-runewidth"
)

var (
	headerStyle = tcell.StyleDefault.Foreground(tcell.GetColor("#7aa2f7")).Bold(true)
	activeStyle = tcell.StyleDefault.Foreground(tcell.GetColor("#9ece6a")).Bold(true)
	textStyle   = tcell.StyleDefault.Foreground(tcell.GetColor("#a9b1d6"))
	dimStyle    = tcell.StyleDefault.Foreground(tcell.GetColor("#565f89"))
)

// TcellView draws a session on a tcell screen and feeds its key events
type TcellView struct {
	screen  tcell.Screen
	session *Session
	source  *tcellinput.Source
}

// NewTcellView creates a view on an initialized screen
func NewTcellView(screen tcell.Screen, session *Session, source *tcellinput.Source) *TcellView {
	return &TcellView{screen: screen, session: session, source: source}
}

// Run polls the screen until ctx is done, Ctrl+C is pressed or the session
// quits. The caller owns the screen's Init and Fini.
func (v *TcellView) Run(ctx context.Context) error {
	events := make(chan tcell.Event)
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	}()

	ticker := time.NewTicker(RefreshInterval)
	defer ticker.Stop()

	var quit <-chan struct{}
	if v.session.Quitter != nil {
		quit = v.session.Quitter.Done()
	}

	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-quit:
			return nil
		case <-ticker.C:
			v.Draw()
		case ev := <-events:
			if !v.handle(ev) {
				return nil
			}
			v.Draw()
		}
	}
}

// handle processes one event and reports whether the loop should go on
func (v *TcellView) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		v.source.Feed(ev, domain.SurfaceDocument)
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// Draw renders the current snapshot
func (v *TcellView) Draw() {
	v.screen.Clear()
	width, height := v.screen.Size()

	snap := v.session.Snapshot()
	for y, line := range snap.Lines() {
		if y >= height-1 {
			break
		}
		style := textStyle
		switch {
		case y == 0:
			style = headerStyle
		case y <= len(snap.Environments) && snap.Environments[y-1].IsActive:
			style = activeStyle
		case y > len(snap.Environments)+1:
			style = dimStyle
		}
		v.drawText(0, y, width, line, style)
	}

	footer := fmt.Sprintf("ctrl+c quit  %d environments", len(snap.Environments))
	v.drawText(0, height-1, width, footer, dimStyle)
	v.screen.Show()
}

func (v *TcellView) drawText(x, y, width int, text string, style tcell.Style) {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if x+w > width {
			return
		}
		v.screen.SetContent(x, y, r, nil, style)
		x += max(w, 1)
	}
}
