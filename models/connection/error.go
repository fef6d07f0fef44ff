package connection

import (
	"errors"
	"io"
	"net"
	"os"

	cerr "github.com/saeidalz13/battleship-duel/internal/error"
)

// onReadErr maps a failed fixed-size read to the error taxonomy.
// got is the number of bytes of the message received before err.
func onReadErr(msg string, want, got int, err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return cerr.ErrTimeout("receive "+msg, err)
	}

	if errors.Is(err, os.ErrDeadlineExceeded) {
		return cerr.ErrTimeout("receive "+msg, err)
	}

	// Peer went away in the middle of a message
	if errors.Is(err, io.ErrUnexpectedEOF) && got > 0 {
		return cerr.ErrProtocol(msg, want, got)
	}

	if errors.Is(err, io.EOF) {
		return cerr.ErrIO("receive "+msg+": peer closed the connection", err)
	}

	return cerr.ErrIO("receive "+msg, err)
}

func onWriteErr(msg string, err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return cerr.ErrTimeout("send "+msg, err)
	}
	return cerr.ErrIO("send "+msg, err)
}
