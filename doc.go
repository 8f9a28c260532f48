// Package habitat is the game logic of a drag-and-drop habitat matching game:
// a scrollable map of animal silhouettes, a tray of animal icons, a trash
// zone, and a score.
//
// The package has no rendering or input code. A host (see the stage package
// for Ebitengine, or examples/terminal for tcell) feeds it pointer events and
// draws what it reports.
//
// # Quick start
//
//	cfg, err := habitat.LoadBoardConfig("ocean")
//	if err != nil {
//		log.Fatal(err)
//	}
//	board, err := habitat.NewBoard(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	board.OnPlaced(func(e habitat.Event) {
//		fmt.Printf("%s is home! score %d\n", e.ItemID, e.Score)
//	})
//
// # Gestures
//
// A drag is [Board.Grab], any number of [Board.Move] calls, then
// [Board.Release] (or [Board.Cancel] if the host interrupts the gesture).
// Points are in screen space. Grabbing a tray item moves it to the canonical
// origin and holds it at its center; grabbing an item on the map keeps the
// exact point touched. The grab offset is fixed for the whole drag.
//
// Moves are not scroll-corrected: the dragged item is drawn in screen space.
// On release the hit-test point is pointer - offset + scroll, in map space.
//
// # Drop resolution
//
// A finger lifted over the tray returns the item to it. Otherwise the
// trash is tested first, then placeholders in the order they were
// configured. Rectangle edges count as inside. Dropping on the item's own
// placeholder places it, snaps it to the placeholder origin and adds
// BoardConfig.ScoreIncrement to the score. Dropping on the trash returns it
// to the tray. Anything else is a miss, handled by BoardConfig.OnMiss; an
// item that remains in place is kept inside the map.
//
// Placed items cannot be dragged. Two grabs of the same item within
// BoardConfig.DoubleTapWindow fire [EventDoubleTap]; hosts answer with
// [Board.Remove]. Each item scores at most once per session.
//
// # Configuration
//
// Boards are YAML files (see boards/ocean.yaml). [LoadBoardConfig] prefers a
// copy under ./boards on disk over the embedded one, and [Watcher] reports
// edits so a host can restart the session.
package habitat
