package client

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	cerr "github.com/saeidalz13/battleship-duel/internal/error"
	mb "github.com/saeidalz13/battleship-duel/models/battleship"
)

// MoveReader supplies the next shot of the local player.
type MoveReader interface {
	ReadMove() (mb.Move, error)
}

// Prompt asks for x then y on out and reads them from in. Invalid
// input is reported and the same coordinate is asked again.
type Prompt struct {
	scanner *bufio.Scanner
	out     io.Writer
}

var _ MoveReader = (*Prompt)(nil)

func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)

	return &Prompt{
		scanner: scanner,
		out:     out,
	}
}

func (p *Prompt) ReadMove() (mb.Move, error) {
	x, err := p.readCoordinate("x")
	if err != nil {
		return mb.Move{}, err
	}
	y, err := p.readCoordinate("y")
	if err != nil {
		return mb.Move{}, err
	}
	return mb.NewMove(x, y), nil
}

func (p *Prompt) readCoordinate(axis string) (uint8, error) {
	for {
		fmt.Fprintf(p.out, "%s = ", axis)

		if !p.scanner.Scan() {
			err := p.scanner.Err()
			if err == nil {
				err = io.EOF
			}
			return 0, cerr.ErrIO("read "+axis, err)
		}

		token := p.scanner.Text()
		v, err := strconv.ParseUint(token, 10, 8)
		if err != nil {
			fmt.Fprintf(p.out, "invalid coordinate: %s (0-255)\n", token)
			continue
		}
		return uint8(v), nil
	}
}
