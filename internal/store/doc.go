// Package store loads dictionary nodes into the databases the index
// is served from.
//
// Every store is a wikinode.Sink, so it can be handed straight to
// wikinode.Run, and must be closed when the run is over to flush
// whatever it still holds.
package store

import (
	"io"

	"github.com/dustin/go-wikinode"
)

// A Store is a Sink that needs closing.
type Store interface {
	wikinode.Sink
	io.Closer
}
