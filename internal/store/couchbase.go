package store

import (
	"github.com/couchbase/go-couchbase"

	"github.com/dustin/go-wikinode"
)

// Couchbase stores each node as a document keyed by its title.
type Couchbase struct {
	set   func(key string, v interface{}) error
	close func()
}

// OpenCouchbase connects to a bucket.
func OpenCouchbase(url, pool, bucket string) (*Couchbase, error) {
	b, err := couchbase.GetBucket(url, pool, bucket)
	if err != nil {
		return nil, err
	}
	return &Couchbase{
		set:   func(k string, v interface{}) error { return b.Set(k, 0, v) },
		close: b.Close,
	}, nil
}

func (c *Couchbase) Emit(n wikinode.Node) error {
	return c.set(n.Title, n)
}

func (c *Couchbase) Close() error {
	c.close()
	return nil
}
