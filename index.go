package wikinode

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var errBadIndexLine = errors.New("bad index line")

// An IndexEntry is one line of a multistream index: which bzip2
// stream a page lives in, its page id and its title.
type IndexEntry struct {
	StreamOffset int64
	PageID       uint64
	Title        string
}

func (e IndexEntry) String() string {
	return fmt.Sprintf("%v:%v:%v", e.StreamOffset, e.PageID, e.Title)
}

// An IndexReader reads a multistream index line by line.
type IndexReader struct {
	s    *bufio.Scanner
	line int
	// Old indexes wrote offsets as 32 bit values that wrap around.
	wrap, prev int64
}

// NewIndexReader gets a multistream index reader.  r should already
// be decompressed.
func NewIndexReader(r io.Reader) *IndexReader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &IndexReader{s: s}
}

// Next gets the next entry from the index.
//
// Offsets are assumed to never go backwards, so a smaller offset than
// the previous one is taken as a 32 bit wraparound.
func (ir *IndexReader) Next() (IndexEntry, error) {
	if !ir.s.Scan() {
		if err := ir.s.Err(); err != nil {
			return IndexEntry{}, err
		}
		return IndexEntry{}, io.EOF
	}
	ir.line++

	parts := strings.SplitN(ir.s.Text(), ":", 3)
	if len(parts) != 3 {
		return IndexEntry{}, fmt.Errorf("line %d: %w", ir.line, errBadIndexLine)
	}
	offset, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return IndexEntry{}, fmt.Errorf("line %d: %w", ir.line, err)
	}
	id, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return IndexEntry{}, fmt.Errorf("line %d: %w", ir.line, err)
	}

	if offset < ir.prev {
		ir.wrap += 1 << 32
	}
	ir.prev = offset

	return IndexEntry{StreamOffset: offset + ir.wrap, PageID: id, Title: parts[2]}, nil
}

// A Chunk is one bzip2 stream of a multistream dump.
type Chunk struct {
	Offset int64
	Count  int
}

// A ChunkReader folds index entries into the chunks they point at.
//
// Use this when only the layout of the dump matters, not the
// individual titles.
type ChunkReader struct {
	ir  *IndexReader
	cur Chunk
	err error
}

// NewChunkReader gets a ChunkReader from a stream of index lines.
func NewChunkReader(r io.Reader) *ChunkReader {
	return &ChunkReader{ir: NewIndexReader(r)}
}

// Next gets the next chunk, in index order.  It returns io.EOF once
// every chunk has been returned.
func (cr *ChunkReader) Next() (Chunk, error) {
	for cr.err == nil {
		e, err := cr.ir.Next()
		if err != nil {
			cr.err = err
			break
		}
		if cr.cur.Count == 0 {
			cr.cur = Chunk{Offset: e.StreamOffset, Count: 1}
			continue
		}
		if e.StreamOffset != cr.cur.Offset {
			rv := cr.cur
			cr.cur = Chunk{Offset: e.StreamOffset, Count: 1}
			return rv, nil
		}
		cr.cur.Count++
	}

	if cr.err == io.EOF && cr.cur.Count > 0 {
		rv := cr.cur
		cr.cur = Chunk{}
		return rv, nil
	}
	return Chunk{}, cr.err
}
