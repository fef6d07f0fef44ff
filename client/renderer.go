package client

import (
	"fmt"
	"io"
	"strings"

	mb "github.com/saeidalz13/battleship-duel/models/battleship"
)

const (
	ansiRed   = "\033[31;01m"
	ansiReset = "\033[00m"
	separator = "-----------------------"
)

// Renderer draws the shot view of the local player.
type Renderer struct {
	out   io.Writer
	color bool
}

func NewRenderer(out io.Writer, color bool) *Renderer {
	return &Renderer{out: out, color: color}
}

// Render prints x along the columns and y down the rows. The remaining
// counter is omitted once it reaches zero.
func (r *Renderer) Render(grid mb.Grid, remaining int) error {
	var sb strings.Builder

	sb.WriteString("    ")
	for x := 0; x < grid.Width(); x++ {
		fmt.Fprintf(&sb, "%d ", x)
	}
	sb.WriteByte('\n')

	for y := 0; y < grid.Height(); y++ {
		fmt.Fprintf(&sb, "%d | ", y)
		for x := 0; x < grid.Width(); x++ {
			cell, _ := grid.Get(x, y)
			if cell == mb.CellHit && r.color {
				fmt.Fprintf(&sb, "%s%c%s ", ansiRed, byte(cell), ansiReset)
				continue
			}
			fmt.Fprintf(&sb, "%c ", byte(cell))
		}
		sb.WriteByte('\n')
	}

	if remaining > 0 {
		fmt.Fprintf(&sb, "\nremaining ships: %d\n", remaining)
	}
	sb.WriteString(separator)
	sb.WriteString("\n\n")

	_, err := io.WriteString(r.out, sb.String())
	return err
}
