package fragment

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot is the unit of export to a paint consumer.
type Snapshot struct {
	Version int       `msgpack:"version"`
	Root    *Fragment `msgpack:"root"`
}

// SnapshotVersion is the version of the snapshot format written by Encode.
const SnapshotVersion = 1

// Encode writes a MessagePack snapshot of a fragment tree to w.
func Encode(w io.Writer, root *Fragment) error {
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(Snapshot{Version: SnapshotVersion, Root: root}); err != nil {
		return fmt.Errorf("encoding fragment tree: %w", err)
	}
	return nil
}

// Decode reads a snapshot written by Encode. Decoded fragments carry no
// style.
func Decode(r io.Reader) (*Fragment, error) {
	var snap Snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decoding fragment tree: %w", err)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported fragment snapshot version %d", snap.Version)
	}
	return snap.Root, nil
}
