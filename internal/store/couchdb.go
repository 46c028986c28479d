package store

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dustin/go-couch"
	"github.com/dustin/httputil"
	"github.com/rs/zerolog/log"

	"github.com/dustin/go-wikinode"
)

type couchNode struct {
	ID      string `json:"_id"`
	Rev     string `json:"_rev"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// escapeTitle makes a title safe to use as a document id in a URL.
func escapeTitle(in string) string {
	return strings.NewReplacer("/", "%2f", "+", "%2b").Replace(in)
}

func newCouchNode(n wikinode.Node) couchNode {
	return couchNode{ID: escapeTitle(n.Title), Title: n.Title, Content: n.Content}
}

// CouchDB stores each node as a document with its title as the id.
// A node for a title that's already there replaces it.
type CouchDB struct {
	db couch.Database
}

// OpenCouchDB connects to the database at url.
func OpenCouchDB(url string) (*CouchDB, error) {
	db, err := couch.Connect(url)
	if err != nil {
		return nil, err
	}
	return &CouchDB{db: db}, nil
}

func (c *CouchDB) Emit(n wikinode.Node) error {
	doc := newCouchNode(n)
	_, _, err := c.db.Insert(&doc)
	if httputil.IsHTTPStatus(err, http.StatusConflict) {
		return c.replace(&doc)
	}
	return err
}

func (c *CouchDB) replace(doc *couchNode) error {
	log.Debug().Str("id", doc.ID).Msg("resolving conflict")
	var prev couchNode
	if err := c.db.Retrieve(doc.ID, &prev); err != nil {
		return err
	}
	if prev.Rev == "" {
		return errors.New("no revision for " + doc.ID)
	}
	_, err := c.db.EditWith(doc, doc.ID, prev.Rev)
	return err
}

func (c *CouchDB) Close() error { return nil }
