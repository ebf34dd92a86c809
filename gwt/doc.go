// Package gwt reads and writes spatial weights graphs in the GWT text
// format.
//
// A GWT file starts with a header line
//
//	0 <num_obs> <layer> <variable>
//
// followed by one line per edge:
//
//	<origin id> <neighbor id> <weight>
//
// Edges are written in row-major order and, within a row, in the order the
// builder produced them. Weights carry nine significant digits. A layer name
// containing a space is wrapped in double quotes.
//
// Files whose name ends in ".zst" or ".lz4" are compressed with Zstandard
// or LZ4 frames. Read detects either frame format from the stream itself.
package gwt
