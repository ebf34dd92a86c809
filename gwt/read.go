package gwt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hupe1980/geoweights/blobstore"
	"github.com/hupe1980/geoweights/weights"
)

// Header is the first line of a GWT file.
type Header struct {
	NumObs   int
	Layer    string
	Variable string
}

// Edge is one weighted link between two external ids.
type Edge struct {
	From   int64
	To     int64
	Weight float64
}

// File is a parsed GWT file.
type File struct {
	Header
	Edges []Edge
}

// Read parses a GWT stream. Zstandard and LZ4 frames are decompressed
// transparently.
func Read(r io.Reader) (*File, error) {
	plain, release, err := decompressor(r)
	if err != nil {
		return nil, err
	}
	defer release()

	sc := bufio.NewScanner(plain)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	f := &File{}
	lineNo := 0
	sawHeader := false

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		if !sawHeader {
			h, err := parseHeader(line)
			if err != nil {
				return nil, &ParseError{Line: lineNo, Msg: "header", Err: err}
			}
			f.Header = h
			sawHeader = true
			continue
		}

		e, err := parseEdge(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Msg: "edge", Err: err}
		}
		f.Edges = append(f.Edges, e)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !sawHeader {
		return nil, &ParseError{Line: lineNo, Msg: "missing header"}
	}
	return f, nil
}

// Load reads the GWT file at path.
func Load(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()
	return Read(fh)
}

// LoadBlob reads a GWT file from a blob store.
func LoadBlob(ctx context.Context, store blobstore.BlobStore, name string) (*File, error) {
	b, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("gwt: open %s: %w", name, err)
	}
	defer func() { _ = b.Close() }()

	r, err := blobstore.NewReader(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("gwt: read %s: %w", name, err)
	}
	defer func() { _ = r.Close() }()

	return Read(r)
}

// Graph rebuilds the weights graph. ids[i] is the external id of
// observation i; nil ids means the external ids are the positions.
// Edge order is preserved within each row. The symmetry flags are derived
// from the rows.
func (f *File) Graph(ids []int64) (*weights.Graph, error) {
	pos, err := f.positions(ids)
	if err != nil {
		return nil, err
	}

	g := weights.NewGraph(f.NumObs)
	for _, e := range f.Edges {
		from, err := pos(e.From)
		if err != nil {
			return nil, err
		}
		to, err := pos(e.To)
		if err != nil {
			return nil, err
		}
		g.Rows[from] = append(g.Rows[from], weights.Neighbor{Index: to, Weight: e.Weight})
	}

	g.CheckSymmetry()
	return g, nil
}

func (f *File) positions(ids []int64) (func(int64) (int, error), error) {
	if ids == nil {
		return func(id int64) (int, error) {
			if id < 0 || id >= int64(f.NumObs) {
				return 0, &ErrUnknownID{ID: id}
			}
			return int(id), nil
		}, nil
	}

	if len(ids) != f.NumObs {
		return nil, &ErrIDCount{NumObs: f.NumObs, IDs: len(ids)}
	}

	byID := make(map[int64]int, len(ids))
	for i, id := range ids {
		if _, dup := byID[id]; dup {
			return nil, &ErrDuplicateID{ID: id}
		}
		byID[id] = i
	}

	return func(id int64) (int, error) {
		p, ok := byID[id]
		if !ok {
			return 0, &ErrUnknownID{ID: id}
		}
		return p, nil
	}, nil
}

func parseHeader(line string) (Header, error) {
	tokens, err := splitQuoted(line)
	if err != nil {
		return Header{}, err
	}
	if len(tokens) < 3 {
		return Header{}, fmt.Errorf("want at least 3 fields, got %d", len(tokens))
	}
	if tokens[0] != "0" {
		return Header{}, fmt.Errorf("unexpected leading token %q", tokens[0])
	}
	n, err := strconv.Atoi(tokens[1])
	if err != nil || n < 0 {
		return Header{}, fmt.Errorf("invalid observation count %q", tokens[1])
	}
	return Header{
		NumObs:   n,
		Layer:    tokens[2],
		Variable: strings.Join(tokens[3:], " "),
	}, nil
}

func parseEdge(line string) (Edge, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return Edge{}, fmt.Errorf("want 3 fields, got %d", len(fields))
	}
	from, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Edge{}, err
	}
	to, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return Edge{}, err
	}
	w, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return Edge{}, err
	}
	return Edge{From: from, To: to, Weight: w}, nil
}

// splitQuoted splits on whitespace, keeping double-quoted tokens whole.
func splitQuoted(line string) ([]string, error) {
	var tokens []string
	for {
		line = strings.TrimLeft(line, " \t")
		if line == "" {
			return tokens, nil
		}
		if line[0] == '"' {
			end := strings.IndexByte(line[1:], '"')
			if end < 0 {
				return nil, errUnterminatedQuote
			}
			tokens = append(tokens, line[1:end+1])
			line = line[end+2:]
			continue
		}
		end := strings.IndexAny(line, " \t")
		if end < 0 {
			end = len(line)
		}
		tokens = append(tokens, line[:end])
		line = line[end:]
	}
}
