package bench

import (
	"fmt"
	"math"

	"github.com/vovakirdan/topple-run/internal/core"
	"github.com/vovakirdan/topple-run/internal/registry"
)

// Built-in scenarios cover the render paths the game exercises every
// frame: full-buffer fills, sparse column drawing, and scrolling text.
// They are deterministic functions of the frame number so captured
// baselines stay stable.
func init() {
	registry.RegisterScenario("glyph-fill", glyphFill)
	registry.RegisterScenario("pillar-field", pillarField)
	registry.RegisterScenario("scroll-text", scrollText)
	registry.RegisterScenario("sprite-wave", spriteWave)
}

// glyphFill writes every cell, alternating glyph and color per frame.
// This is the worst-case full-repaint path.
func glyphFill(dst *core.Screen, frame int) {
	glyphs := []rune{'█', '▓', '▒', '░'}
	colors := []core.Color{core.ColorWhite, core.ColorCyan, core.ColorGray}

	for y := 0; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			idx := (x + y + frame) % len(glyphs)
			dst.SetCell(x, y, glyphs[idx], colors[(x+frame)%len(colors)])
		}
	}
}

// pillarField draws a scrolling field of vertical columns, the game's
// dominant sparse drawing pattern.
func pillarField(dst *core.Screen, frame int) {
	groundY := dst.Height() - 2
	dst.DrawHLine(0, groundY, dst.Width(), '─')

	for x := 0; x < dst.Width(); x += 7 {
		sx := x - frame%7
		height := 2 + (x/7+frame/7)%5
		dst.SetCell(sx, groundY-height, '╥', core.ColorWhite)
		for dy := 1; dy <= height; dy++ {
			dst.SetCell(sx, groundY-height+dy, '║', core.ColorWhite)
		}
	}
}

// scrollText exercises the text drawing path with rows of horizontally
// scrolling labels.
func scrollText(dst *core.Screen, frame int) {
	for y := 0; y < dst.Height(); y++ {
		x := (frame*2 + y*5) % (dst.Width() + 20)
		dst.DrawTextColored(x-20, y, fmt.Sprintf("row %02d frame %d", y, frame), core.ColorGreen)
	}
}

// spriteWave plots a dense sine field of single glyphs, approximating a
// particle-heavy frame.
func spriteWave(dst *core.Screen, frame int) {
	h := float64(dst.Height())
	for x := 0; x < dst.Width(); x++ {
		for k := 0; k < 4; k++ {
			phase := float64(frame)*0.1 + float64(k)*1.7
			y := int(h/2 + (h/3)*math.Sin(float64(x)*0.2+phase))
			dst.SetCell(x, y, '·', core.ColorYellow)
		}
	}
}
