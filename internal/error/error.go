package error

import (
	"errors"
	"fmt"
)

type Kind uint8

const (
	KindArgument Kind = iota
	KindConnection
	KindIO
	KindProtocol
	KindTimeout
	KindGrid
)

func (k Kind) String() string {
	switch k {
	case KindArgument:
		return "argument error"
	case KindConnection:
		return "connection error"
	case KindIO:
		return "io error"
	case KindProtocol:
		return "protocol error"
	case KindTimeout:
		return "timeout"
	case KindGrid:
		return "grid error"
	default:
		return "unknown error"
	}
}

// GameErr is the only error type the game packages return. The kind decides
// how the process reacts; every kind is fatal for the cmd binaries.
type GameErr struct {
	kind Kind
	desc string
	err  error
}

func NewGameErr(kind Kind) GameErr {
	return GameErr{kind: kind}
}

func (g GameErr) AddDesc(desc string) GameErr {
	g.desc = desc
	return g
}

func (g GameErr) Wrap(err error) GameErr {
	g.err = err
	return g
}

func (g GameErr) Error() string {
	if g.err != nil {
		return fmt.Sprintf("%s: %s: %v", g.kind, g.desc, g.err)
	}
	return fmt.Sprintf("%s: %s", g.kind, g.desc)
}

func (g GameErr) Kind() Kind {
	return g.kind
}

func (g GameErr) Unwrap() error {
	return g.err
}

func IsKind(err error, kind Kind) bool {
	var gameErr GameErr
	if !errors.As(err, &gameErr) {
		return false
	}
	return gameErr.kind == kind
}

func ErrArgument(usage string) error {
	return NewGameErr(KindArgument).AddDesc(usage)
}

func ErrConnection(op string, err error) error {
	return NewGameErr(KindConnection).AddDesc(op).Wrap(err)
}

func ErrIO(op string, err error) error {
	return NewGameErr(KindIO).AddDesc(op).Wrap(err)
}

func ErrProtocol(msg string, want, got int) error {
	return NewGameErr(KindProtocol).AddDesc(fmt.Sprintf("short %s: expected %d bytes\tgot: %d", msg, want, got))
}

func ErrTimeout(op string, err error) error {
	return NewGameErr(KindTimeout).AddDesc(op).Wrap(err)
}

func ErrXorYOutOfGridBound(x, y int) error {
	return NewGameErr(KindGrid).AddDesc(fmt.Sprintf("x or y is out of grid bound\tx: %d\ty: %d", x, y))
}

func ErrInvalidGridSize(width, height int) error {
	return NewGameErr(KindGrid).AddDesc(fmt.Sprintf("invalid grid size\twidth: %d\theight: %d", width, height))
}

func ErrLayoutSize(want, got int) error {
	return NewGameErr(KindGrid).AddDesc(fmt.Sprintf("layout must be %d bytes\tgot: %d", want, got))
}

func ErrFleetRejected(player int, reason string) error {
	return NewGameErr(KindProtocol).AddDesc(fmt.Sprintf("fleet of player %d rejected: %s", player, reason))
}

func ErrInvalidPlayer(player int) error {
	return fmt.Errorf("player index must be 0 or 1\tgot: %d", player)
}

func ErrInvalidTransport(transport string) error {
	return fmt.Errorf("transport must be tcp or ws\tgot: %s", transport)
}
