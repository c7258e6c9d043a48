// Package filesystem abstracts the directory trees jcagen reads descriptors
// from.
//
// FileSystemProvider opens a Directory that can be walked; OSFileSystem backs
// it with the real filesystem and MemoryFileSystem keeps everything in a map
// so discovery can be tested without touching disk.
//
// Returning fs.SkipDir from a Walk callback for a directory skips its
// contents in both implementations.
package filesystem
