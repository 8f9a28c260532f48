package stage

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// shotRequest is a queued screenshot together with the board progress at
// the moment it was asked for.
type shotRequest struct {
	label  string
	board  string
	score  int
	placed int
	total  int
}

// Screenshot queues a labeled capture of the next drawn frame. The file
// name records the board, the score and how many items were placed when
// Screenshot was called, so a scripted run leaves a readable trail in
// ScreenshotDir.
func (g *Game) Screenshot(label string) {
	cfg := g.board.Config()
	g.screenshotQueue = append(g.screenshotQueue, shotRequest{
		label:  label,
		board:  cfg.Name,
		score:  g.board.Score(),
		placed: len(g.board.PlacedIDs()),
		total:  len(g.board.Items()),
	})
}

// flushScreenshots writes every queued request from the frame just drawn.
func (g *Game) flushScreenshots(screen *ebiten.Image) {
	if len(g.screenshotQueue) == 0 {
		return
	}
	queue := g.screenshotQueue
	g.screenshotQueue = nil

	if err := os.MkdirAll(g.ScreenshotDir, 0o755); err != nil {
		g.logf("screenshot: mkdir %s: %v", g.ScreenshotDir, err)
		return
	}

	bounds := screen.Bounds()
	pixels := make([]byte, 4*bounds.Dx()*bounds.Dy())
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, bounds.Dx(), bounds.Dy())

	stamp := time.Now().Format("20060102_150405")
	for _, r := range queue {
		path := filepath.Join(g.ScreenshotDir, r.fileName(stamp))
		if err := savePNG(path, img); err != nil {
			g.logf("screenshot: %v", err)
			continue
		}
		g.logf("screenshot %s", path)
	}
}

// fileName is board_score<N>_<placed>of<total>_<stamp>_<label>.png.
func (r shotRequest) fileName(stamp string) string {
	board := r.board
	if board == "" {
		board = "board"
	}
	return fmt.Sprintf("%s_score%d_%dof%d_%s_%s.png",
		sanitizeLabel(board), r.score, r.placed, r.total, stamp, sanitizeLabel(r.label))
}

// unpremultiply converts premultiplied RGBA pixels to straight-alpha NRGBA.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	n := min(len(pixels), len(img.Pix))
	for i := 0; i+3 < n; i += 4 {
		a := pixels[i+3]
		for c := 0; c < 3; c++ {
			v := pixels[i+c]
			if a > 0 && a < 255 {
				v = uint8(min(int(v)*255/int(a), 255))
			}
			img.Pix[i+c] = v
		}
		img.Pix[i+3] = a
	}
	return img
}

func savePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// sanitizeLabel keeps ASCII letters, digits, '-' and '.', maps everything
// else to '_' and returns "unlabeled" for blank input.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
