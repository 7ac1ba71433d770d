// Package hud draws the shared chrome around the game field: centered
// message boxes, the status bar, and the live performance overlay. All
// drawing targets the core screen buffer; the platform decides when to
// composite the HUD over a frame.
package hud

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/topple-run/internal/core"
	"github.com/vovakirdan/topple-run/internal/perf"
)

// MessageBox draws a bordered box in the center of the screen with a
// title line and a subtitle line. The box sizes itself to the longer of
// the two strings.
func MessageBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	titleX := boxX + (boxW-len(title))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}

// StatusBar writes left- and right-aligned text on the screen's top row.
// When both sides collide, the left side wins.
func StatusBar(dst *core.Screen, left, right string) {
	dst.DrawText(0, 0, strings.Repeat(" ", dst.Width()))
	if right != "" {
		dst.DrawText(dst.Width()-len(right), 0, right)
	}
	dst.DrawText(0, 0, left)
}

// Overlay is the live performance readout drawn in the top-right corner
// while the F3-style debug view is on.
type Overlay struct {
	Visible bool
	Quality string // active quality level name
}

// Draw renders the overlay from the latest monitor snapshot. Issues is
// the count of issues detected in the current window.
func (o *Overlay) Draw(dst *core.Screen, score int, m perf.Metrics, issues int) {
	if !o.Visible {
		return
	}

	lines := []string{
		fmt.Sprintf("fps %5.1f", m.CurrentFPS),
		fmt.Sprintf("frame %5.1fms", m.AverageFrameTime),
		fmt.Sprintf("score %d", score),
		fmt.Sprintf("perf %3.0f", m.PerformanceScore),
	}
	if o.Quality != "" {
		lines = append(lines, "quality "+o.Quality)
	}
	if issues > 0 {
		lines = append(lines, fmt.Sprintf("issues %d", issues))
	}

	width := 0
	for _, l := range lines {
		if len(l) > width {
			width = len(l)
		}
	}

	x := dst.Width() - width - 1
	for i, l := range lines {
		dst.DrawText(x, 1+i, l)
	}
}
