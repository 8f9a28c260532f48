package stage

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/phanxgames/habitat"
)

// Draw styling.
const (
	silhouetteAlpha = 0.7
	draggedAlpha    = 0.8
	labelHeight     = 13
)

var (
	waterColor   = color.RGBA{R: 0x1d, G: 0x5c, B: 0x8a, A: 0xff}
	trayColor    = color.RGBA{R: 0x0b, G: 0x2a, B: 0x44, A: 0xf0}
	trashColor   = color.RGBA{R: 0xc0, G: 0x39, B: 0x2b, A: 0xff}
	outlineColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x60}
	textColor    = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.face == nil {
		g.face = text.NewGoXFace(basicfont.Face7x13)
	}

	screen.Fill(waterColor)
	g.drawBackground(screen)
	g.drawTargets(screen)
	g.drawMapItems(screen)
	g.drawTray(screen)
	g.drawDragged(screen)
	g.drawHUD(screen)
	g.drawDialog(screen)

	g.flushScreenshots(screen)
}

func (g *Game) drawBackground(screen *ebiten.Image) {
	cfg := g.cfg.Board
	if cfg.Background == "" {
		return
	}
	img := g.assets.Image(cfg.Background, "background")
	if g.assets.Err(cfg.Background) != nil {
		return
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(cfg.Map.Width/float64(w), cfg.Map.Height/float64(h))
	op.GeoM.Translate(0, -g.board.ScrollOffset())
	screen.DrawImage(img, op)
}

// drawTargets draws the trash and a dimmed silhouette of every item that is
// not yet placed on its placeholder.
func (g *Game) drawTargets(screen *ebiten.Image) {
	scroll := g.board.ScrollOffset()

	trash := g.board.Targets().Trash().Rect
	vector.DrawFilledRect(screen, float32(trash.X), float32(trash.Y-scroll), float32(trash.Width), float32(trash.Height), trashColor, false)

	for _, t := range g.board.Targets().Placeholders() {
		if g.board.IsPlaced(t.ItemID) {
			continue
		}
		it, _ := g.board.Item(t.ItemID)
		img := g.assets.Image(it.Asset, it.ID)
		op := &ebiten.DrawImageOptions{}
		fitImage(op, img, t.Rect.Width, t.Rect.Height)
		op.GeoM.Translate(t.Rect.X, t.Rect.Y-scroll)
		op.ColorScale.Scale(0, 0, 0, silhouetteAlpha)
		screen.DrawImage(img, op)
		vector.StrokeRect(screen, float32(t.Rect.X), float32(t.Rect.Y-scroll), float32(t.Rect.Width), float32(t.Rect.Height), 1, outlineColor, false)
	}
}

// drawMapItems draws items on the canvas and placed items, except the one
// being dragged.
func (g *Game) drawMapItems(screen *ebiten.Image) {
	dragging, isDragging := g.board.Dragging()
	for _, it := range g.board.Items() {
		if it.Location == habitat.LocationInTray || (isDragging && it.ID == dragging.ItemID) {
			continue
		}
		g.drawItem(screen, it, g.drawOrigin(it.ID), 1)
	}
}

func (g *Game) drawTray(screen *ebiten.Image) {
	tray := g.cfg.Board.TrayRect()
	vector.DrawFilledRect(screen, float32(tray.X), float32(tray.Y), float32(tray.Width), float32(tray.Height), trayColor, false)

	for i, it := range g.board.TrayItems() {
		slot := g.board.TraySlot(i)
		if slot.X+slot.Width < 0 || slot.X > tray.Width {
			continue
		}
		g.drawItem(screen, it, slot.Origin(), 1)
		g.drawLabel(screen, it.Name, slot.X, slot.Y+slot.Height+4, slot.Width)
	}
}

// drawDragged draws the dragged item translucent, above the tray.
func (g *Game) drawDragged(screen *ebiten.Image) {
	s, ok := g.board.Dragging()
	if !ok {
		return
	}
	it, _ := g.board.Item(s.ItemID)
	g.drawItem(screen, it, s.Origin, draggedAlpha)
}

func (g *Game) drawItem(screen *ebiten.Image, it habitat.Item, at habitat.Vec2, alpha float32) {
	size := g.cfg.Board.ItemSize
	img := g.assets.Image(it.Asset, it.ID)
	op := &ebiten.DrawImageOptions{}
	fitImage(op, img, size, size)
	op.GeoM.Translate(at.X, at.Y)
	op.ColorScale.ScaleAlpha(alpha)
	screen.DrawImage(img, op)
}

func (g *Game) drawLabel(screen *ebiten.Image, s string, x, y, width float64) {
	w, _ := text.Measure(s, g.face, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate(x+(width-w)/2, y)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, s, g.face, op)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(12, 12)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, fmt.Sprintf("Score: %d", g.board.Score()), g.face, op)

	if g.toast.text != "" {
		viewW := g.cfg.Board.Viewport.Width
		w, _ := text.Measure(g.toast.text, g.face, 0)
		x := (viewW - w) / 2
		y := 40.0
		vector.DrawFilledRect(screen, float32(x-8), float32(y-6), float32(w+16), labelHeight+12, color.RGBA{A: 0xa0}, false)
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleWithColor(textColor)
		op.ColorScale.ScaleAlpha(g.toast.alpha)
		text.Draw(screen, g.toast.text, g.face, op)
	}

	if g.showFPS {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()),
			int(g.cfg.Board.Viewport.Width)-90, 4)
	}
}

// fitImage scales img to width x height.
func fitImage(op *ebiten.DrawImageOptions, img *ebiten.Image, width, height float64) {
	b := img.Bounds()
	op.GeoM.Scale(width/float64(b.Dx()), height/float64(b.Dy()))
}
