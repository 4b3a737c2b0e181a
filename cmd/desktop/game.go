package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/wricardo/game2048/game/engine"
	"github.com/wricardo/game2048/game/palette"
	"github.com/wricardo/game2048/internal/board"
	"golang.org/x/image/font/basicfont"
)

const (
	tileSize     = 96
	tileGap      = 10
	headerHeight = 48
	statusTTL    = 2 * time.Second
)

var keyDirections = []struct {
	keys []ebiten.Key
	dir  engine.Direction
}{
	{[]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}, engine.Up},
	{[]ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}, engine.Down},
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, engine.Left},
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, engine.Right},
}

func justPressed(keys []ebiten.Key) bool {
	for _, key := range keys {
		if inpututil.IsKeyJustPressed(key) {
			return true
		}
	}
	return false
}

// Game implements ebiten.Game over a board
type Game struct {
	board   board.Board
	palette *palette.Palette
	logger  *slog.Logger
	face    *text.GoXFace
	title   string

	rows, columns int

	status      string
	statusUntil time.Time
}

// NewGame sizes the window from the board's current grid
func NewGame(b board.Board, p *palette.Palette, logger *slog.Logger) *Game {
	g := &Game{
		board:   b,
		palette: p,
		logger:  logger,
		face:    text.NewGoXFace(basicfont.Face7x13),
		rows:    engine.DefaultRows,
		columns: engine.DefaultColumns,
		title:   "2048",
	}
	if state := b.State(); state != nil {
		g.rows, g.columns = state.Rows, state.Columns
		g.title = fmt.Sprintf("2048 - %s", state.ConfigName)
	}
	return g
}

func (g *Game) flash(format string, args ...any) {
	g.status = fmt.Sprintf(format, args...)
	g.statusUntil = time.Now().Add(statusTTL)
}

// Update handles input
func (g *Game) Update() error {
	if remote, ok := g.board.(*board.Remote); ok {
		select {
		case <-remote.Updates():
			g.flash("disconnected from server")
		default:
			if msg := remote.LastError(); msg != "" && msg != g.status {
				g.flash("%s", msg)
			}
		}
	}

	for _, binding := range keyDirections {
		if !justPressed(binding.keys) {
			continue
		}
		if err := g.board.Move(binding.dir); err != nil {
			g.logger.Warn("move failed", "direction", binding.dir, "error", err)
			g.flash("move failed: %v", err)
		}
		break
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.board.Reset(); err != nil {
			g.flash("reset failed: %v", err)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if err := clipboard.WriteAll(board.Text(g.board.State())); err != nil {
			g.logger.Warn("clipboard write failed", "error", err)
			g.flash("clipboard unavailable")
		} else {
			g.flash("board copied")
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

// Draw renders the header and grid
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.palette.Background)

	state := g.board.State()
	if state == nil {
		ebitenutil.DebugPrintAt(screen, "waiting for state...", tileGap, tileGap)
		return
	}

	header := fmt.Sprintf("%s  max %d  moves %d", state.ConfigName, state.MaxTile, state.Moves)
	switch {
	case state.GameOver && state.Won:
		header += "  WON - GAME OVER (R to restart)"
	case state.GameOver:
		header += "  GAME OVER (R to restart)"
	case state.Won:
		header += "  WON!"
	}
	ebitenutil.DebugPrintAt(screen, header, tileGap, tileGap)
	if g.status != "" && time.Now().Before(g.statusUntil) {
		ebitenutil.DebugPrintAt(screen, g.status, tileGap, tileGap+16)
	}

	for r, row := range state.Grid {
		for c, value := range row {
			g.drawTile(screen, r, c, value, state.LastSpawn)
		}
	}
}

func (g *Game) drawTile(screen *ebiten.Image, r, c, value int, spawn *engine.Location) {
	x := float32(tileGap + c*(tileSize+tileGap))
	y := float32(headerHeight + tileGap + r*(tileSize+tileGap))

	vector.FillRect(screen, x, y, tileSize, tileSize, g.palette.Color(value), false)
	if spawn != nil && spawn.Row == r && spawn.Column == c {
		vector.StrokeRect(screen, x+2, y+2, tileSize-4, tileSize-4, 2, g.palette.TextColor(value), false)
	}
	if value == 0 {
		return
	}

	label := strconv.Itoa(value)
	scale := 4.0
	if len(label) > 3 {
		scale = 3.0
	}

	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(x)+tileSize/2, float64(y)+tileSize/2)
	op.ColorScale.ScaleWithColor(g.palette.TextColor(value))
	text.Draw(screen, label, g.face, op)
}

// Layout returns a fixed logical size for the grid
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := tileGap + g.columns*(tileSize+tileGap)
	h := headerHeight + tileGap + g.rows*(tileSize+tileGap)
	return w, h
}
