package client

import (
	"bytes"
	"context"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	cerr "github.com/saeidalz13/battleship-duel/internal/error"
	"github.com/saeidalz13/battleship-duel/internal/transport"
	mb "github.com/saeidalz13/battleship-duel/models/battleship"
	mc "github.com/saeidalz13/battleship-duel/models/connection"
)

type moveList struct {
	moves []mb.Move
}

func (l *moveList) ReadMove() (mb.Move, error) {
	if len(l.moves) == 0 {
		return mb.Move{}, cerr.ErrIO("read move", io.EOF)
	}
	m := l.moves[0]
	l.moves = l.moves[1:]
	return m, nil
}

type reply struct {
	result mb.Cell
	status mb.GameStatus
}

type fakeServer struct {
	ln     transport.Listener
	fleet  chan []byte
	shots  chan mb.Move
	errCh  chan error
	script []reply
}

// newFakeServer accepts one player, reads its fleet and answers every
// shot with the next scripted reply.
func newFakeServer(t *testing.T, script []reply) *fakeServer {
	t.Helper()

	ln, err := transport.Listen(transport.KindTCP, "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ln.Close() })

	fs := &fakeServer{
		ln:     ln,
		fleet:  make(chan []byte, 1),
		shots:  make(chan mb.Move, len(script)),
		errCh:  make(chan error, 1),
		script: script,
	}
	go fs.serve()
	return fs
}

func (fs *fakeServer) serve() {
	stream, err := fs.ln.Accept()
	if err != nil {
		fs.errCh <- err
		return
	}
	session := mc.NewSession(stream)
	defer session.Close()

	fleet, err := session.ReadFleet(mb.GridWidth, mb.GridHeight)
	if err != nil {
		fs.errCh <- err
		return
	}
	fs.fleet <- fleet.Layout

	for _, r := range fs.script {
		move, err := session.ReadShot()
		if err != nil {
			fs.errCh <- err
			return
		}
		fs.shots <- move

		if err := session.WriteResult(r.result, r.status); err != nil {
			fs.errCh <- err
			return
		}
	}
	fs.errCh <- nil
}

func (fs *fakeServer) hostPort(t *testing.T) (string, string) {
	t.Helper()

	host, port, err := net.SplitHostPort(fs.ln.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	return host, port
}

func newTestPlayer(t *testing.T, fs *fakeServer, layout string, moves []mb.Move, out io.Writer) *Player {
	t.Helper()

	host, port := fs.hostPort(t)
	p, err := NewPlayer(host, port, []byte(layout),
		WithMoveReader(&moveList{moves: moves}),
		WithOutput(out),
		WithRenderer(NewRenderer(out, false)),
		WithPlayerReadTimeout(5*time.Second),
	)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestPlayerWins(t *testing.T) {
	script := make([]reply, 0, mb.ShipCellsToDestroy)
	moves := make([]mb.Move, 0, mb.ShipCellsToDestroy)
	for y := 0; y < mb.ShipCellsToDestroy; y++ {
		status := mb.GameStatusOngoing
		if y == mb.ShipCellsToDestroy-1 {
			status = mb.GameStatusWin
		}
		script = append(script, reply{result: mb.CellHit, status: status})
		moves = append(moves, mb.NewMove(0, uint8(y)))
	}

	fs := newFakeServer(t, script)
	var out bytes.Buffer
	p := newTestPlayer(t, fs, strings.Repeat("X.......\n", 8), moves, &out)

	matchStatus, err := p.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if err := <-fs.errCh; err != nil {
		t.Fatal(err)
	}

	if matchStatus != mb.PlayerMatchStatusWon {
		t.Fatalf("expected match status: %d\tgot: %d", mb.PlayerMatchStatusWon, matchStatus)
	}
	if p.State() != PlayerStateDone {
		t.Fatalf("expected state: %s\tgot: %s", PlayerStateDone, p.State())
	}
	if p.View().Remaining() != 0 {
		t.Fatalf("expected remaining: 0\tgot: %d", p.View().Remaining())
	}
	if !strings.HasSuffix(out.String(), msgWon+"\n") {
		t.Fatalf("expected output to end with %q\tgot: %q", msgWon, out.String())
	}

	// row separators are stripped before upload
	layout := <-fs.fleet
	if string(layout) != strings.Repeat("X.......", 8) {
		t.Fatalf("expected normalised layout\tgot: %q", layout)
	}

	for i := 0; i < mb.ShipCellsToDestroy; i++ {
		if shot := <-fs.shots; shot != moves[i] {
			t.Fatalf("expected shot: %+v\tgot: %+v", moves[i], shot)
		}
	}
}

func TestPlayerVerdicts(t *testing.T) {
	tests := []struct {
		name        string
		last        reply
		matchStatus int
		message     string
	}{
		{
			name:        "opponent destroyed our fleet",
			last:        reply{result: mb.CellSplash, status: mb.GameStatusWin},
			matchStatus: mb.PlayerMatchStatusLost,
			message:     msgLost,
		},
		{
			name:        "both fleets destroyed",
			last:        reply{result: mb.CellHit, status: mb.GameStatusDraw},
			matchStatus: mb.PlayerMatchStatusDraw,
			message:     msgDraw,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			script := []reply{{result: mb.CellSplash, status: mb.GameStatusOngoing}, test.last}
			moves := []mb.Move{mb.NewMove(1, 1), mb.NewMove(2, 2)}

			fs := newFakeServer(t, script)
			var out bytes.Buffer
			p := newTestPlayer(t, fs, strings.Repeat(".", 64), moves, &out)

			matchStatus, err := p.Run(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			if err := <-fs.errCh; err != nil {
				t.Fatal(err)
			}

			if matchStatus != test.matchStatus {
				t.Fatalf("expected match status: %d\tgot: %d", test.matchStatus, matchStatus)
			}
			if !strings.HasSuffix(out.String(), test.message+"\n") {
				t.Fatalf("expected output to end with %q\tgot: %q", test.message, out.String())
			}

			cell, _ := p.View().Grid().Get(1, 1)
			if cell != mb.CellSplash {
				t.Fatalf("expected cell: %c\tgot: %c", mb.CellSplash, cell)
			}
		})
	}
}

func TestPlayerOutOfBoundShot(t *testing.T) {
	script := []reply{{result: mb.CellSplash, status: mb.GameStatusWin}}
	moves := []mb.Move{mb.NewMove(200, 9)}

	fs := newFakeServer(t, script)
	var out bytes.Buffer
	p := newTestPlayer(t, fs, "", moves, &out)

	if _, err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := <-fs.errCh; err != nil {
		t.Fatal(err)
	}

	if shot := <-fs.shots; shot != moves[0] {
		t.Fatalf("expected shot: %+v\tgot: %+v", moves[0], shot)
	}
	if n := p.View().Grid().Count(mb.CellEmpty); n != mb.GridWidth*mb.GridHeight {
		t.Fatalf("expected untouched view\tgot %d empty cells", n)
	}
}

func TestPlayerServerGone(t *testing.T) {
	fs := newFakeServer(t, nil)
	var out bytes.Buffer
	p := newTestPlayer(t, fs, strings.Repeat(".", 64), []mb.Move{mb.NewMove(0, 0)}, &out)

	_, err := p.Run(context.Background())
	if err == nil {
		t.Fatal("expected error when the server closes the connection")
	}
	if !cerr.IsKind(err, cerr.KindIO) {
		t.Fatalf("expected kind: %s\tgot: %v", cerr.KindIO, err)
	}
	if p.State() != PlayerStatePlaying {
		t.Fatalf("expected state: %s\tgot: %s", PlayerStatePlaying, p.State())
	}
}

func TestPlayerConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	_, port, _ := net.SplitHostPort(ln.Addr().String())
	ln.Close()

	p, err := NewPlayer("127.0.0.1", port, nil, WithOutput(io.Discard))
	if err != nil {
		t.Fatal(err)
	}

	_, err = p.Run(context.Background())
	if !cerr.IsKind(err, cerr.KindConnection) {
		t.Fatalf("expected kind: %s\tgot: %v", cerr.KindConnection, err)
	}
	if p.State() != PlayerStateConnecting {
		t.Fatalf("expected state: %s\tgot: %s", PlayerStateConnecting, p.State())
	}
}

func TestNewPlayerInvalidTransport(t *testing.T) {
	if _, err := NewPlayer("localhost", "9191", nil, WithPlayerTransport("udp")); err == nil {
		t.Fatal("expected error for invalid transport")
	}
}
