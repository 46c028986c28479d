package store

import (
	"github.com/rs/zerolog/log"
	"gopkg.in/mgo.v2"

	"github.com/dustin/go-wikinode"
)

// Titles are the dictionary keys, so they have to be unique.
var titleIndex = mgo.Index{
	Key:        []string{"title"},
	Unique:     true,
	DropDups:   true,
	Background: true,
	Sparse:     true,
}

type mongoNode struct {
	Title   string `bson:"title"`
	Content string `bson:"content"`
}

// Mongo inserts nodes into a collection with a unique title index.
// A title that's already there is skipped.
type Mongo struct {
	insert func(doc interface{}) error
	close  func()
}

// OpenMongo dials url and makes sure the title index exists.
func OpenMongo(url, db, collection string) (*Mongo, error) {
	session, err := mgo.Dial(url)
	if err != nil {
		return nil, err
	}
	c := session.DB(db).C(collection)
	if err := c.EnsureIndex(titleIndex); err != nil {
		session.Close()
		return nil, err
	}
	return &Mongo{
		insert: func(doc interface{}) error { return c.Insert(doc) },
		close:  session.Close,
	}, nil
}

func (m *Mongo) Emit(n wikinode.Node) error {
	err := m.insert(&mongoNode{Title: n.Title, Content: n.Content})
	if mgo.IsDup(err) {
		log.Debug().Str("title", n.Title).Msg("duplicate title")
		return nil
	}
	return err
}

func (m *Mongo) Close() error {
	m.close()
	return nil
}
