// Package stage hosts a habitat board in an Ebitengine window: it turns mouse
// and touch input into grab, move and release calls, scrolls the map and the
// tray, and draws the board with its tray, silhouettes, trash and score.
package stage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/phanxgames/habitat"
	"github.com/phanxgames/habitat/boards"
)

// Config describes a stage session.
type Config struct {
	// Board is the layout to play.
	Board habitat.BoardConfig
	// BoardName is reloaded through habitat.LoadBoardConfig when a watched
	// board file changes. Empty disables reloading.
	BoardName string
	// Assets holds item and background images by their configured paths.
	// Missing images are drawn as colored swatches.
	Assets fs.FS
	// Debug enables board debug logging.
	Debug bool
	// ExitAfterScript ends the game once an attached script has finished.
	ExitAfterScript bool
	// Now is the clock used for double-tap timing. Defaults to time.Now.
	Now func() time.Time
}

// Game is an ebiten.Game running one habitat board.
type Game struct {
	cfg   Config
	board *habitat.Board

	mapView  *habitat.Viewport
	trayView *habitat.Viewport

	ptr         pointerState
	touchIDs    []ebiten.TouchID
	injectQueue []syntheticPointerEvent
	runner      *Runner

	snaps map[string]*snapAnim
	toast toast

	pendingDelete string
	dialog        *ebitenui.UI
	dialogFor     string

	watcher  *habitat.Watcher
	// boardMod is the on-disk modification time of the board last loaded by
	// name; watcher events that do not change it are ignored.
	boardMod time.Time
	chime    *Chime

	assets  *Assets
	face    text.Face
	showFPS bool

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []shotRequest

	logOut io.Writer
}

// New creates a game for cfg.Board. No images or audio are created until the
// first Draw.
func New(cfg Config) (*Game, error) {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	g := &Game{
		cfg:           cfg,
		snaps:         make(map[string]*snapAnim),
		assets:        NewAssets(cfg.Assets),
		ScreenshotDir: "screenshots",
		logOut:        os.Stderr,
	}
	if err := g.Restart(cfg.Board); err != nil {
		return nil, err
	}
	if cfg.BoardName != "" {
		g.boardMod, _ = boards.ModTime(cfg.BoardName)
	}
	return g, nil
}

// Board returns the running board.
func (g *Game) Board() *habitat.Board {
	return g.board
}

// Restart starts a fresh session with cfg, dropping the current board, drag,
// animations and any open dialog.
func (g *Game) Restart(cfg habitat.BoardConfig) error {
	b, err := habitat.NewBoard(cfg)
	if err != nil {
		return err
	}
	b.SetDebugOutput(g.logOut)
	b.SetDebugMode(g.cfg.Debug)

	g.cfg.Board = b.Config()
	g.board = b
	g.mapView = habitat.NewViewport(g.cfg.Board.MapViewHeight(), g.cfg.Board.Map.Height)
	g.trayView = habitat.NewViewport(g.cfg.Board.Viewport.Width, b.TrayContentWidth())
	g.ptr = pointerState{}
	g.injectQueue = g.injectQueue[:0]
	clear(g.snaps)
	g.toast = toast{}
	g.closeDialog()

	b.OnPlaced(g.onPlaced)
	b.OnDoubleTap(g.onDoubleTap)
	b.OnTrashed(func(e habitat.Event) {
		g.showToast(fmt.Sprintf("%s went back to the tray", g.itemName(e.ItemID)))
	})
	return nil
}

// SetScript attaches a script runner. The runner's step is called from
// Update before input each frame.
func (g *Game) SetScript(r *Runner) {
	g.runner = r
}

// SetWatcher enables hot reload: edits reported by w restart the session with
// the reloaded board.
func (g *Game) SetWatcher(w *habitat.Watcher) {
	g.watcher = w
}

// SetChime sets the sound played on each successful placement.
func (g *Game) SetChime(c *Chime) {
	g.chime = c
}

// PendingDelete returns the item awaiting a delete confirmation, if any.
func (g *Game) PendingDelete() (string, bool) {
	return g.pendingDelete, g.pendingDelete != ""
}

// ConfirmDelete sends the pending item back to the tray and closes the dialog.
func (g *Game) ConfirmDelete() error {
	id := g.pendingDelete
	g.closeDialog()
	if id == "" {
		return nil
	}
	return g.board.Remove(id)
}

// DismissDelete closes the delete dialog without changing the board.
func (g *Game) DismissDelete() {
	g.closeDialog()
}

func (g *Game) closeDialog() {
	g.pendingDelete = ""
	g.dialog = nil
	g.dialogFor = ""
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	return g.update(1/float32(ebiten.TPS()), true)
}

// update advances one frame. readDevices is false in tests, where all input
// comes from the inject queue.
func (g *Game) update(dt float32, readDevices bool) error {
	g.pollReload()

	if readDevices && g.dialog != nil {
		g.dialog.Update()
	}

	if g.runner != nil {
		g.runner.step(g)
	}

	if !g.processInjectedInput() && readDevices && g.pendingDelete == "" {
		g.processInput()
	}

	if g.mapView.Update(dt) {
		g.board.Scroll(g.mapView.Offset)
	}
	g.trayView.SetContent(g.board.TrayContentWidth())
	g.board.ScrollTray(g.trayView.Offset)

	g.updateAnimations(dt)

	if g.runner != nil && g.runner.Done() && g.cfg.ExitAfterScript {
		if err := g.runner.Err(); err != nil {
			return err
		}
		return ebiten.Termination
	}
	return nil
}

// Layout implements ebiten.Game. The logical screen is the board viewport;
// Ebitengine scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.cfg.Board.Viewport.Width), int(g.cfg.Board.Viewport.Height)
}

// ScrollMap moves the map to offset, animated over duration seconds.
func (g *Game) ScrollMap(offset float64, duration float32) {
	g.mapView.ScrollTo(offset, duration, nil)
	if duration <= 0 {
		g.board.Scroll(g.mapView.Offset)
	}
}

func (g *Game) onPlaced(e habitat.Event) {
	g.showToast(fmt.Sprintf("%s is home! +%d", g.itemName(e.ItemID), g.cfg.Board.ScoreIncrement))
	if g.chime != nil {
		g.chime.Play()
	}
	if g.board.Complete() {
		g.showToast(fmt.Sprintf("Every animal is home! Score %d", e.Score))
	}
}

func (g *Game) onDoubleTap(e habitat.Event) {
	if e.Location == habitat.LocationPlaced && !g.cfg.Board.PlacedReversible {
		return
	}
	g.pendingDelete = e.ItemID
}

func (g *Game) itemName(id string) string {
	if it, ok := g.board.Item(id); ok {
		return it.Name
	}
	return id
}

func (g *Game) logf(format string, args ...any) {
	_, _ = fmt.Fprintf(g.logOut, "[stage] "+format+"\n", args...)
}

var errNoBoardName = errors.New("stage: no board name to reload")
