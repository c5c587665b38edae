package sink

import (
	"encoding/json"

	"github.com/matzehuels/stickerboard/pkg/board"
)

// RenderJSON encodes snap as indented JSON.
func RenderJSON(snap board.Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
