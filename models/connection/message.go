package connection

import (
	"bytes"
	"encoding"

	cerr "github.com/saeidalz13/battleship-duel/internal/error"
	mb "github.com/saeidalz13/battleship-duel/models/battleship"
)

// Messages have no header and no length prefix. Their size is
// implied by where they appear in the game:
//
//	client -> server  FleetUpload   width*height bytes, once
//	client -> server  ShotRequest   2 bytes per round
//	server -> client  ShotResult    2 bytes per round
const (
	ShotRequestSize int = 2
	ShotResultSize  int = 2
)

const (
	MessageFleetUpload = "fleet upload"
	MessageShotRequest = "shot request"
	MessageShotResult  = "shot result"
)

func FleetUploadSize(width, height int) int {
	return width * height
}

type FleetUpload struct {
	Layout []byte
}

type ShotRequest struct {
	mb.Move
}

type ShotResult struct {
	Result mb.Cell
	Status mb.GameStatus
}

var (
	_ encoding.BinaryMarshaler   = FleetUpload{}
	_ encoding.BinaryUnmarshaler = (*FleetUpload)(nil)
	_ encoding.BinaryMarshaler   = ShotRequest{}
	_ encoding.BinaryUnmarshaler = (*ShotRequest)(nil)
	_ encoding.BinaryMarshaler   = ShotResult{}
	_ encoding.BinaryUnmarshaler = (*ShotResult)(nil)
)

func NewFleetUpload(fleet mb.Grid) FleetUpload {
	return FleetUpload{Layout: fleet.Bytes()}
}

// NewFleetUploadFromFile builds an upload of exactly width*height bytes
// from the raw content of a layout file. Row separators are dropped,
// missing cells are padded as empty and extra bytes are cut.
func NewFleetUploadFromFile(raw []byte, width, height int) FleetUpload {
	size := FleetUploadSize(width, height)

	layout := make([]byte, 0, size)
	for _, b := range raw {
		if len(layout) == size {
			break
		}
		if b == '\n' || b == '\r' {
			continue
		}
		layout = append(layout, b)
	}
	for len(layout) < size {
		layout = append(layout, byte(mb.CellEmpty))
	}
	return FleetUpload{Layout: layout}
}

func (f FleetUpload) MarshalBinary() ([]byte, error) {
	return bytes.Clone(f.Layout), nil
}

func (f *FleetUpload) UnmarshalBinary(data []byte) error {
	f.Layout = bytes.Clone(data)
	return nil
}

func (f FleetUpload) Grid(width, height int) (mb.Grid, error) {
	return mb.ParseLayout(f.Layout, width, height)
}

func NewShotRequest(x, y uint8) ShotRequest {
	return ShotRequest{Move: mb.NewMove(x, y)}
}

func (s ShotRequest) MarshalBinary() ([]byte, error) {
	return []byte{s.X, s.Y}, nil
}

func (s *ShotRequest) UnmarshalBinary(data []byte) error {
	if len(data) != ShotRequestSize {
		return cerr.ErrProtocol(MessageShotRequest, ShotRequestSize, len(data))
	}
	s.X = data[0]
	s.Y = data[1]
	return nil
}

func NewShotResult(result mb.Cell, status mb.GameStatus) ShotResult {
	return ShotResult{Result: result, Status: status}
}

func (s ShotResult) MarshalBinary() ([]byte, error) {
	return []byte{byte(s.Result), s.Status.Byte()}, nil
}

func (s *ShotResult) UnmarshalBinary(data []byte) error {
	if len(data) != ShotResultSize {
		return cerr.ErrProtocol(MessageShotResult, ShotResultSize, len(data))
	}
	s.Result = mb.Cell(data[0])
	s.Status = mb.StatusFromByte(data[1])
	return nil
}
