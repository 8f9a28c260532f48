package stage

import (
	"path/filepath"

	"github.com/phanxgames/habitat"
	"github.com/phanxgames/habitat/boards"
)

// pollReload restarts the session when the watcher reports an edit to the
// running board. Events for a file whose modification time has not moved
// since the last load are dropped. A board that fails to load or validate is logged and the
// current session keeps running.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		path, ok := g.watcher.Poll()
		if !ok {
			return
		}
		if g.cfg.BoardName == "" || !samePath(path, boards.Path(g.cfg.BoardName)) {
			continue
		}
		if mod, ok := boards.ModTime(g.cfg.BoardName); ok && mod.Equal(g.boardMod) {
			continue
		}
		if err := g.Reload(); err != nil {
			g.logf("reload %s: %v", path, err)
			continue
		}
		g.logf("reloaded %s", path)
	}
}

// Reload loads the board by name again and restarts the session with it.
func (g *Game) Reload() error {
	if g.cfg.BoardName == "" {
		return errNoBoardName
	}
	mod, _ := boards.ModTime(g.cfg.BoardName)
	cfg, err := habitat.LoadBoardConfig(g.cfg.BoardName)
	if err != nil {
		return err
	}
	if err := g.Restart(cfg); err != nil {
		return err
	}
	g.boardMod = mod
	return nil
}

func samePath(a, b string) bool {
	aa, err := filepath.Abs(a)
	if err != nil {
		return a == b
	}
	bb, err := filepath.Abs(b)
	if err != nil {
		return a == b
	}
	return filepath.Clean(aa) == filepath.Clean(bb)
}
