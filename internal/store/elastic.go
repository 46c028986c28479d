package store

import (
	"github.com/dustin/go-elasticsearch"

	"github.com/dustin/go-wikinode"
)

// Elasticsearch feeds nodes to a bulk loader, sending a batch every
// Batch nodes.  The loader works in the background, so indexing
// failures aren't reported back through Emit.
type Elasticsearch struct {
	index, typ string
	batch      int
	pending    int

	update func(*elasticsearch.UpdateInstruction)
	send   func()
	quit   func()
}

// OpenElasticsearch starts a bulk loader against the server at url.
func OpenElasticsearch(url, index, typ string, batch int) *Elasticsearch {
	es := elasticsearch.ElasticSearch{URL: url}
	bulk := es.Bulk()
	if batch < 1 {
		batch = 1
	}
	return &Elasticsearch{
		index:  index,
		typ:    typ,
		batch:  batch,
		update: func(ui *elasticsearch.UpdateInstruction) { bulk.Update(ui) },
		send:   func() { bulk.SendBatch() },
		quit:   func() { bulk.Quit() },
	}
}

func (e *Elasticsearch) instruction(n wikinode.Node) *elasticsearch.UpdateInstruction {
	return &elasticsearch.UpdateInstruction{
		Id:    n.Title,
		Index: e.index,
		Type:  e.typ,
		Body: map[string]interface{}{
			"title":   n.Title,
			"content": n.Content,
		},
	}
}

func (e *Elasticsearch) Emit(n wikinode.Node) error {
	e.update(e.instruction(n))
	e.pending++
	if e.pending >= e.batch {
		e.send()
		e.pending = 0
	}
	return nil
}

// Close sends what's left and stops the loader.
func (e *Elasticsearch) Close() error {
	if e.pending > 0 {
		e.send()
		e.pending = 0
	}
	e.quit()
	return nil
}
