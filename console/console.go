// Package console plays a game of minesweeper over a line based terminal.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/beka-birhanu/vinom-sweeper/board"
	"github.com/beka-birhanu/vinom-sweeper/game"
	"github.com/beka-birhanu/vinom-sweeper/render"
	"github.com/beka-birhanu/vinom-sweeper/viewmodel"
)

const defaultMaxSize = 50

const help = `commands:
  r <row> <col>   reveal a cell
  f <row> <col>   toggle a flag
  q               quit`

// ErrInputClosed is returned when input ends before the game does.
var ErrInputClosed = errors.New("input closed")

// Config holds the streams and random source of a console game.
type Config struct {
	In      io.Reader
	Out     io.Writer
	Rand    *rand.Rand // Random source for bomb placement, defaults to a time-seeded one
	MaxSize int        // Largest accepted board size, defaults to 50
}

// Console drives one game from text commands.
type Console struct {
	scanner *bufio.Scanner
	out     io.Writer
	rng     *rand.Rand
	maxSize int
}

// New creates a Console from c.
func New(c Config) *Console {
	rng := c.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	maxSize := c.MaxSize
	if maxSize <= 0 {
		maxSize = defaultMaxSize
	}

	return &Console{
		scanner: bufio.NewScanner(c.In),
		out:     c.Out,
		rng:     rng,
		maxSize: maxSize,
	}
}

// Run asks for the board dimensions and plays until the game ends or the player quits.
func (c *Console) Run() error {
	g, err := c.setup()
	if err != nil {
		return err
	}
	g.SetObserver(c)

	for g.State() == game.Active {
		c.draw(g)
		fmt.Fprint(c.out, "> ")

		line, ok := c.readLine()
		if !ok {
			return ErrInputClosed
		}

		quit, err := c.execute(g, line)
		if err != nil {
			fmt.Fprintln(c.out, err)
			fmt.Fprintln(c.out, help)
			continue
		}
		if quit {
			return nil
		}
	}

	c.draw(g)
	return nil
}

// setup prompts until the player picks a valid board.
func (c *Console) setup() (*game.Game, error) {
	for {
		size, err := c.promptInt("Enter the size of the board: ")
		if err != nil {
			return nil, err
		}
		bombs, err := c.promptInt("Enter the number of bombs: ")
		if err != nil {
			return nil, err
		}

		if size > c.maxSize {
			fmt.Fprintf(c.out, "Invalid board: size cannot exceed %d\n", c.maxSize)
			continue
		}

		b, err := board.New(size, bombs, board.WithRand(c.rng))
		if err != nil {
			fmt.Fprintf(c.out, "Invalid board: %v\n", err)
			continue
		}
		return game.New(b)
	}
}

func (c *Console) promptInt(prompt string) (int, error) {
	for {
		fmt.Fprint(c.out, prompt)
		line, ok := c.readLine()
		if !ok {
			return 0, ErrInputClosed
		}

		n, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintf(c.out, "%q is not a number\n", line)
			continue
		}
		return n, nil
	}
}

func (c *Console) readLine() (string, bool) {
	if !c.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.scanner.Text()), true
}

// execute applies one command. Coordinates off the board are passed through
// and ignored by the game.
func (c *Console) execute(g *game.Game, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, errors.New("empty command")
	}

	switch strings.ToLower(fields[0]) {
	case "q", "quit":
		return true, nil
	case "r", "reveal", "f", "flag":
		if len(fields) != 3 {
			return false, fmt.Errorf("%s needs a row and a column", fields[0])
		}
		row, errRow := strconv.Atoi(fields[1])
		col, errCol := strconv.Atoi(fields[2])
		if errRow != nil || errCol != nil {
			return false, errors.New("row and column must be numbers")
		}

		if strings.HasPrefix(strings.ToLower(fields[0]), "r") {
			g.Reveal(row, col)
		} else {
			g.ToggleFlag(row, col)
		}
		return false, nil
	default:
		return false, fmt.Errorf("unknown command %q", fields[0])
	}
}

func (c *Console) draw(g *game.Game) {
	view := viewmodel.NewGameView(g)
	fmt.Fprintln(c.out, render.Board(view))
	fmt.Fprintln(c.out, render.Status(view))
}

// CellsRevealed implements game.Observer.
func (c *Console) CellsRevealed(positions []board.Position) {
	if len(positions) > 1 {
		fmt.Fprintf(c.out, "Opened %d cells\n", len(positions))
	}
}

// FlagToggled implements game.Observer.
func (c *Console) FlagToggled(pos board.Position, flagged bool) {}

// Won implements game.Observer.
func (c *Console) Won() {}

// Lost implements game.Observer.
func (c *Console) Lost(trigger board.Position) {
	fmt.Fprintf(c.out, "Boom at (%d, %d)\n", trigger.Row, trigger.Col)
}
