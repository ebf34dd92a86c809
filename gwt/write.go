package gwt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hupe1980/geoweights/blobstore"
	"github.com/hupe1980/geoweights/weights"
)

func validate(g *weights.Graph, layer string, ids []int64) error {
	if g == nil {
		return ErrNilGraph
	}
	if layer == "" {
		return ErrEmptyLayer
	}
	if ids != nil && len(ids) != g.NumObs {
		return &ErrIDCount{NumObs: g.NumObs, IDs: len(ids)}
	}
	return g.Validate()
}

// FormatWeight formats w with nine significant digits.
func FormatWeight(w float64) string {
	return strconv.FormatFloat(w, 'g', 9, 64)
}

func header(numObs int, layer, variable string) string {
	if strings.Contains(layer, " ") {
		layer = `"` + layer + `"`
	}
	h := "0 " + strconv.Itoa(numObs) + " " + layer
	if variable != "" {
		h += " " + variable
	}
	return h
}

// Write writes g to w. ids[i] is the external id of observation i; nil ids
// writes positions. Nothing is written when a precondition fails.
func Write(w io.Writer, g *weights.Graph, layer, variable string, ids []int64) error {
	if err := validate(g, layer, ids); err != nil {
		return err
	}
	return write(w, g, layer, variable, ids)
}

func write(w io.Writer, g *weights.Graph, layer, variable string, ids []int64) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(header(g.NumObs, layer, variable) + "\n"); err != nil {
		return err
	}

	id := func(i int) int64 { return int64(i) }
	if ids != nil {
		id = func(i int) int64 { return ids[i] }
	}

	var line []byte
	for i, row := range g.Rows {
		for _, nb := range row {
			line = strconv.AppendInt(line[:0], id(i), 10)
			line = append(line, ' ')
			line = strconv.AppendInt(line, id(nb.Index), 10)
			line = append(line, ' ')
			line = strconv.AppendFloat(line, nb.Weight, 'g', 9, 64)
			line = append(line, '\n')
			if _, err := bw.Write(line); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// Save writes g to the file at path, compressed according to its extension.
// The file is written to a temporary name and renamed into place, so a
// failed save leaves no partial file.
func Save(path string, g *weights.Graph, layer, variable string, ids []int64) error {
	if path == "" {
		return ErrEmptyPath
	}
	if err := validate(g, layer, ids); err != nil {
		return err
	}
	store := blobstore.NewLocalStore(filepath.Dir(path))
	return save(context.Background(), store, filepath.Base(path), g, layer, variable, ids)
}

// SaveBlob writes g to the named blob, compressed according to its
// extension. A failed write is aborted where the store supports it.
func SaveBlob(ctx context.Context, store blobstore.BlobStore, name string, g *weights.Graph, layer, variable string, ids []int64) error {
	if name == "" {
		return ErrEmptyPath
	}
	if err := validate(g, layer, ids); err != nil {
		return err
	}
	return save(ctx, store, name, g, layer, variable, ids)
}

func save(ctx context.Context, store blobstore.BlobStore, name string, g *weights.Graph, layer, variable string, ids []int64) error {
	w, err := store.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("gwt: create %s: %w", name, err)
	}

	if err := encode(w, CompressionFor(name), g, layer, variable, ids); err != nil {
		_ = blobstore.Abort(w)
		return fmt.Errorf("gwt: write %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gwt: commit %s: %w", name, err)
	}
	return nil
}

func encode(w io.Writer, c Compression, g *weights.Graph, layer, variable string, ids []int64) error {
	cw, err := compressor(w, c)
	if err != nil {
		return err
	}
	if err := write(cw, g, layer, variable, ids); err != nil {
		_ = cw.Close()
		return err
	}
	return cw.Close()
}
