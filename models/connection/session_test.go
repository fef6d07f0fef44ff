package connection

import (
	"net"
	"strings"
	"testing"
	"time"

	cerr "github.com/saeidalz13/battleship-duel/internal/error"
	mb "github.com/saeidalz13/battleship-duel/models/battleship"
)

func newPipeSessions(opts ...SessionOption) (*Session, *Session) {
	clientConn, serverConn := net.Pipe()
	return NewSession(clientConn), NewSession(serverConn, opts...)
}

func TestSessionFleetAndShots(t *testing.T) {
	client, server := newPipeSessions(WithPlayer(mb.PlayerOne))
	defer client.Close()
	defer server.Close()

	if server.Player() != mb.PlayerOne {
		t.Fatalf("expected player: %d\tgot: %d", mb.PlayerOne, server.Player())
	}
	if client.Id() == "" || client.Id() == server.Id() {
		t.Fatal("expected unique session ids")
	}

	layout := strings.Repeat("X.......", 8)
	errCh := make(chan error, 1)
	go func() {
		if err := client.WriteFleet(NewFleetUploadFromFile([]byte(layout), mb.GridWidth, mb.GridHeight)); err != nil {
			errCh <- err
			return
		}
		errCh <- client.WriteShot(mb.NewMove(4, 2))
	}()

	fleet, err := server.ReadFleet(mb.GridWidth, mb.GridHeight)
	if err != nil {
		t.Fatal(err)
	}
	if string(fleet.Layout) != layout {
		t.Fatalf("expected layout: %s\tgot: %s", layout, fleet.Layout)
	}

	move, err := server.ReadShot()
	if err != nil {
		t.Fatal(err)
	}
	if move != mb.NewMove(4, 2) {
		t.Fatalf("expected move: %+v\tgot: %+v", mb.NewMove(4, 2), move)
	}
	if err := <-errCh; err != nil {
		t.Fatal(err)
	}

	go func() {
		errCh <- server.WriteResult(mb.CellHit, mb.GameStatusOngoing)
	}()

	res, err := client.ReadResult()
	if err != nil {
		t.Fatal(err)
	}
	if res.Result != mb.CellHit || res.Status != mb.GameStatusOngoing {
		t.Fatalf("expected: %s %s\tgot: %s %s", mb.CellHit, mb.GameStatusOngoing, res.Result, res.Status)
	}
	if err := <-errCh; err != nil {
		t.Fatal(err)
	}
}

func TestSessionShortMessage(t *testing.T) {
	client, server := newPipeSessions()
	defer server.Close()

	go func() {
		_, _ = client.stream.Write([]byte{1})
		_ = client.Close()
	}()

	_, err := server.ReadShot()
	if !cerr.IsKind(err, cerr.KindProtocol) {
		t.Fatalf("expected protocol error\tgot: %v", err)
	}
}

func TestSessionPeerClosed(t *testing.T) {
	client, server := newPipeSessions()
	defer server.Close()

	_ = client.Close()

	_, err := server.ReadFleet(mb.GridWidth, mb.GridHeight)
	if !cerr.IsKind(err, cerr.KindIO) {
		t.Fatalf("expected io error\tgot: %v", err)
	}
}

func TestSessionReadTimeout(t *testing.T) {
	client, server := newPipeSessions(WithReadTimeout(50 * time.Millisecond))
	defer client.Close()
	defer server.Close()

	_, err := server.ReadShot()
	if !cerr.IsKind(err, cerr.KindTimeout) {
		t.Fatalf("expected timeout error\tgot: %v", err)
	}
}

func TestSessionWriteAfterClose(t *testing.T) {
	client, server := newPipeSessions()
	_ = server.Close()
	_ = client.Close()

	if err := client.WriteShot(mb.NewMove(0, 0)); !cerr.IsKind(err, cerr.KindIO) {
		t.Fatalf("expected io error\tgot: %v", err)
	}
}
