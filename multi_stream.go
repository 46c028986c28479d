package wikinode

import (
	"compress/bzip2"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sync"
)

type chunkTask struct {
	seq   int
	chunk Chunk
}

type chunkResult struct {
	seq   int
	pages []*Page
	err   error
}

// An IndexedParser reads a multistream dump, decompressing and
// parsing its streams concurrently, and hands pages back in the order
// they appear in the dump.
type IndexedParser struct {
	siteInfo SiteInfo

	open    func(Chunk) (io.Reader, error)
	tasks   chan chunkTask
	results chan chunkResult
	// One token per chunk decoded but not yet consumed by Next.
	slots chan struct{}
	done  chan struct{}
	wg    sync.WaitGroup

	pending map[int]chunkResult
	next    int
	cur     []*Page
	err     error

	closeOnce sync.Once
	files     []*os.File
}

// NewIndexedParser gets a parser for a multistream dump from its
// bzip2 index file and its data file.
func NewIndexedParser(indexfn, datafn string, numWorkers int) (*IndexedParser, error) {
	idx, err := os.Open(indexfn)
	if err != nil {
		return nil, err
	}
	data, err := os.Open(datafn)
	if err != nil {
		idx.Close()
		return nil, err
	}
	st, err := data.Stat()
	if err != nil {
		idx.Close()
		data.Close()
		return nil, err
	}
	size := st.Size()

	si, err := readSiteInfo(bzip2.NewReader(io.NewSectionReader(data, 0, size)))
	if err != nil {
		idx.Close()
		data.Close()
		return nil, err
	}

	open := func(c Chunk) (io.Reader, error) {
		if c.Offset < 0 || c.Offset >= size {
			return nil, fmt.Errorf("chunk offset %d outside of %s", c.Offset, datafn)
		}
		return bzip2.NewReader(io.NewSectionReader(data, c.Offset, size-c.Offset)), nil
	}

	rv := newIndexedParser(bzip2.NewReader(idx), open, numWorkers)
	rv.siteInfo = si
	rv.files = []*os.File{idx, data}
	return rv, nil
}

func newIndexedParser(index io.Reader, open func(Chunk) (io.Reader, error), numWorkers int) *IndexedParser {
	if numWorkers < 1 {
		numWorkers = 1
	}
	p := &IndexedParser{
		open:    open,
		tasks:   make(chan chunkTask, numWorkers),
		results: make(chan chunkResult, numWorkers),
		slots:   make(chan struct{}, 2*numWorkers),
		done:    make(chan struct{}),
		pending: map[int]chunkResult{},
	}

	p.wg.Add(numWorkers + 1)
	go p.dispatch(NewChunkReader(index))
	for i := 0; i < numWorkers; i++ {
		go p.work()
	}
	go func() {
		p.wg.Wait()
		close(p.results)
	}()

	return p
}

func (p *IndexedParser) dispatch(cr *ChunkReader) {
	defer p.wg.Done()
	defer close(p.tasks)

	for seq := 0; ; seq++ {
		select {
		case p.slots <- struct{}{}:
		case <-p.done:
			return
		}
		c, err := cr.Next()
		if err == io.EOF {
			return
		}
		if err != nil {
			p.send(chunkResult{seq: seq, err: fmt.Errorf("reading index: %w", err)})
			return
		}
		select {
		case p.tasks <- chunkTask{seq, c}:
		case <-p.done:
			return
		}
	}
}

func (p *IndexedParser) work() {
	defer p.wg.Done()
	for t := range p.tasks {
		pages, err := p.decode(t.chunk)
		if err != nil {
			err = fmt.Errorf("chunk at offset %d: %w", t.chunk.Offset, err)
		}
		if !p.send(chunkResult{t.seq, pages, err}) {
			return
		}
	}
}

func (p *IndexedParser) send(r chunkResult) bool {
	select {
	case p.results <- r:
		return true
	case <-p.done:
		return false
	}
}

func (p *IndexedParser) decode(c Chunk) ([]*Page, error) {
	r, err := p.open(c)
	if err != nil {
		return nil, err
	}
	sp := NewParser(r)
	rv := make([]*Page, 0, c.Count)
	for len(rv) < c.Count {
		page, err := sp.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rv = append(rv, page)
	}
	return rv, nil
}

// Next gets the next page in dump order.
func (p *IndexedParser) Next() (*Page, error) {
	for len(p.cur) == 0 {
		if p.err != nil {
			return nil, p.err
		}
		if r, ok := p.pending[p.next]; ok {
			delete(p.pending, p.next)
			p.next++
			<-p.slots
			if r.err != nil {
				p.err = r.err
				continue
			}
			p.cur = r.pages
			continue
		}
		r, ok := <-p.results
		if !ok {
			p.err = io.EOF
			continue
		}
		p.pending[r.seq] = r
	}

	rv := p.cur[0]
	p.cur = p.cur[1:]
	return rv, nil
}

// SiteInfo gets the site info from the head of the dump.
func (p *IndexedParser) SiteInfo() SiteInfo {
	return p.siteInfo
}

// Close stops the workers and closes the dump files.
func (p *IndexedParser) Close() error {
	var err error
	p.closeOnce.Do(func() {
		close(p.done)
		p.wg.Wait()
		for _, f := range p.files {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}
	})
	return err
}

// readSiteInfo reads the <siteinfo> header at the head of a dump.
func readSiteInfo(r io.Reader) (SiteInfo, error) {
	var si SiteInfo
	d := xml.NewDecoder(r)
	for {
		t, err := d.Token()
		if err != nil {
			return si, &ScanError{Offset: d.InputOffset(), Err: err}
		}
		se, ok := t.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "siteinfo":
			if err := d.DecodeElement(&si, &se); err != nil {
				return si, &ScanError{Offset: d.InputOffset(), Err: err}
			}
			return si, nil
		case "page":
			return si, nil
		}
	}
}
