package client

import (
	"blockfall/tetris"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/template"
)

const (
	// ASCII colors.
	Blue   = "34"
	Red    = "31"
	Green  = "32"
	Yellow = "33"
	White  = "37"
	Grey   = "90"

	resetPos    = "\033[H"        // Reset cursor position to 0,0
	clearScreen = "\033[2J\033[H" // Clear the screen and reset the cursor
	emptyCell   = "  "
)

//go:embed "layout.tmpl"
var layout string

var colorMap = map[tetris.Color]string{
	tetris.Blue:   Blue,
	tetris.Red:    Red,
	tetris.Green:  Green,
	tetris.Yellow: Yellow,
}

type render struct {
	writer   io.Writer
	logger   *slog.Logger
	template *template.Template
}

func newRender(l *slog.Logger, w io.Writer) (*render, error) {
	tmp, err := loadTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	if w == nil {
		w = os.Stdout
	}
	return &render{
		writer:   w,
		logger:   l,
		template: tmp,
	}, nil
}

func (r *render) game(s *tetris.Snapshot) {
	fmt.Fprint(r.writer, resetPos)
	if err := r.template.Execute(r.writer, s); err != nil {
		r.logger.Error("unable to execute template in game()", slog.String("error", err.Error()))
	}
}

// lobby draws the menu on top of the last frame. s is the game that just finished, if any.
func (r *render) lobby(s *tetris.Snapshot) {
	msg := "Welcome to Terminal Tetris"
	if s != nil {
		msg = fmt.Sprintf("Stopped. Score: %d", s.Score)
		if s.State == tetris.GameOver {
			msg = fmt.Sprintf("Game Over :) Score: %d", s.Score)
		}
	}
	fmt.Fprint(r.writer, "\033[5;3H+----------------------------+")
	fmt.Fprintf(r.writer, "\033[6;3H|%s|", center(msg, 28))
	fmt.Fprint(r.writer, "\033[7;3H|                            |")
	fmt.Fprint(r.writer, "\033[8;3H|      (p)lay   (q)uit       |")
	fmt.Fprint(r.writer, "\033[9;3H+----------------------------+")
}

func (r *render) reset() {
	fmt.Fprint(r.writer, clearScreen)
}

func loadTemplate() (*template.Template, error) {
	funcMap := template.FuncMap{
		"rows":   rows,
		"border": border,
		"status": status,
		"join":   strings.Join,
	}

	// we use the console raw so new lines don't automatically transform into carriage return
	// to fix that we add a carriage return to every new line in the layout.
	l := strings.ReplaceAll(layout, "\n", "\r\n")
	l = strings.ReplaceAll(l, "Terminal Tetris", "\033[1mTerminal Tetris\033[0m")
	return template.New("layout").Funcs(funcMap).Parse(l)
}

func paint(color string) string {
	return fmt.Sprintf("\x1b[7m\x1b[%sm[]\x1b[0m", color)
}

// rows renders the board with the falling piece on top of it.
func rows(s *tetris.Snapshot) [][]string {
	rendered := make([][]string, len(s.Board))
	for y, r := range s.Board {
		rendered[y] = make([]string, len(r))
		for x, c := range r {
			rendered[y][x] = emptyCell
			if c == tetris.Filled {
				rendered[y][x] = paint(Grey)
			}
		}
	}

	if s.Piece == nil {
		return rendered
	}
	color, ok := colorMap[s.Piece.Color]
	if !ok {
		color = White
	}
	for _, c := range s.Piece.Cells() {
		x, y := c[0], c[1]
		// a piece that couldn't spawn may stick out of the board.
		if y < 0 || y >= len(rendered) || x < 0 || x >= len(rendered[y]) {
			continue
		}
		rendered[y][x] = paint(color)
	}
	return rendered
}

func border(s *tetris.Snapshot) string {
	if len(s.Board) == 0 {
		return ""
	}
	return strings.Repeat("-", len(s.Board[0])*len(emptyCell))
}

func status(s *tetris.Snapshot) string {
	if s.State == tetris.GameOver {
		return "GAME OVER"
	}
	return "arrows/wasd move, space drop, esc stop"
}

func center(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}
