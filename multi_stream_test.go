package wikinode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"
)

// fakeMultiStream lays out chunks of pages the way a multistream
// dump does, but uncompressed, keyed by offset.
func fakeMultiStream(chunks, perChunk int) (string, map[int64]string) {
	var idx strings.Builder
	data := map[int64]string{}
	for c := 0; c < chunks; c++ {
		off := int64(1000 + c*100)
		var b strings.Builder
		for i := 0; i < perChunk; i++ {
			n := c*perChunk + i
			title := fmt.Sprintf("문서 %d", n)
			fmt.Fprintf(&idx, "%d:%d:%s\n", off, n, title)
			b.WriteString(pageXML(title, "0", fmt.Sprintf("%d번째 문서. ", n)+seoul))
		}
		data[off] = b.String()
	}
	return idx.String(), data
}

func TestIndexedParserOrder(t *testing.T) {
	idx, data := fakeMultiStream(20, 7)
	open := func(c Chunk) (io.Reader, error) {
		// Later chunks finish first.
		time.Sleep(time.Duration(2000-c.Offset/10) * time.Microsecond)
		return strings.NewReader(data[c.Offset]), nil
	}

	p := newIndexedParser(strings.NewReader(idx), open, 6)
	defer p.Close()

	pages := readAll(t, p)
	if len(pages) != 140 {
		t.Fatalf("Expected 140 pages, got %v", len(pages))
	}
	for i, page := range pages {
		if want := fmt.Sprintf("문서 %d", i); page.Title != want {
			t.Fatalf("Page %d: expected %q, got %q", i, want, page.Title)
		}
	}
}

func TestIndexedParserRun(t *testing.T) {
	idx, data := fakeMultiStream(5, 3)
	open := func(c Chunk) (io.Reader, error) {
		return strings.NewReader(data[c.Offset]), nil
	}
	p := newIndexedParser(strings.NewReader(idx), open, 2)
	defer p.Close()

	c := &collect{}
	st, err := Run(context.Background(), p, c, DefaultOptions())
	if err != nil {
		t.Fatalf("Error running: %v", err)
	}
	if st.Accepted != 15 || len(c.nodes) != 15 {
		t.Errorf("Expected 15 nodes, got %+v", st)
	}
}

func TestIndexedParserChunkError(t *testing.T) {
	idx, data := fakeMultiStream(4, 2)
	data[1200] = "<page><title>bad</ns></page>"
	open := func(c Chunk) (io.Reader, error) {
		return strings.NewReader(data[c.Offset]), nil
	}
	p := newIndexedParser(strings.NewReader(idx), open, 3)
	defer p.Close()

	var n int
	var err error
	for err == nil {
		_, err = p.Next()
		if err == nil {
			n++
		}
	}
	var se *ScanError
	if !errors.As(err, &se) {
		t.Fatalf("Expected a ScanError, got %v", err)
	}
	if n != 4 {
		t.Errorf("Expected the 4 pages before the bad chunk, got %v", n)
	}
	if _, again := p.Next(); again != err {
		t.Errorf("Expected the error to stick, got %v", again)
	}
}

func TestIndexedParserOpenError(t *testing.T) {
	idx, _ := fakeMultiStream(3, 1)
	boom := errors.New("boom")
	p := newIndexedParser(strings.NewReader(idx), func(Chunk) (io.Reader, error) {
		return nil, boom
	}, 2)
	defer p.Close()

	if _, err := p.Next(); !errors.Is(err, boom) {
		t.Fatalf("Expected the open error, got %v", err)
	}
}

func TestIndexedParserEarlyClose(t *testing.T) {
	idx, data := fakeMultiStream(50, 5)
	open := func(c Chunk) (io.Reader, error) {
		return strings.NewReader(data[c.Offset]), nil
	}
	p := newIndexedParser(strings.NewReader(idx), open, 4)
	if _, err := p.Next(); err != nil {
		t.Fatalf("Error reading first page: %v", err)
	}

	done := make(chan error)
	go func() { done <- p.Close() }()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Error closing: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Close hung with workers still running")
	}
}

func TestReadSiteInfo(t *testing.T) {
	si, err := readSiteInfo(strings.NewReader(smallDump))
	if err != nil {
		t.Fatalf("Error reading site info: %v", err)
	}
	if si.Base != "https://ko.wikipedia.org/wiki/" {
		t.Errorf("Unexpected site info %+v", si)
	}

	si, err = readSiteInfo(strings.NewReader("<page><title>x</title></page>"))
	if err != nil || si.SiteName != "" {
		t.Errorf("Expected empty site info without error, got %+v, %v", si, err)
	}
}
