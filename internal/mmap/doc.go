// Package mmap maps files read-only into memory.
//
//	m, err := mmap.Open("weights.gwt")
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()
//
// Unix platforms use mmap(2) and madvise(2); Windows uses
// CreateFileMapping/MapViewOfFile and ignores access hints.
//
// A Mapping is safe for concurrent reads. Close is idempotent, but slices
// returned by Bytes must not be used after Close.
package mmap
