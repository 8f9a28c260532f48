package stage

import "github.com/hajimehoshi/ebiten/v2"

// RunConfig holds window settings for Run.
type RunConfig struct {
	Title string
	// Width and Height are the window size. Zero uses the board viewport.
	Width, Height int
	ShowFPS       bool
}

// Run opens a window and runs g until it is closed or returns an error.
// ebiten.Termination from a finished script is not an error.
func Run(g *Game, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w == 0 || h == 0 {
		w, h = g.Layout(0, 0)
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	g.showFPS = cfg.ShowFPS
	return ebiten.RunGame(g)
}
