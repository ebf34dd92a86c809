// Package fs abstracts the filesystem operations behind atomic file writes
// so tests can inject failures.
//
// Production code uses fs.Default ([LocalFS]). Tests wrap it in a
// [FaultyFS]:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".gwt", fs.Fault{FailOnSync: true})
//	// inject ffs into the component under test
//
// Operations take no context.Context; local filesystem calls are not
// interruptible at the syscall level. Remote storage goes through
// blobstore, which is context-aware.
package fs
