package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo.
type FileInfo = fs.FileInfo

// File is a file or directory found while walking a Directory.
type File interface {
	// Path returns the absolute path to the file
	Path() string

	// RelativePath returns the slash-separated path relative to the walked root
	RelativePath() string

	Info() FileInfo

	ReadContent() ([]byte, error)
}

// Directory is a tree that can be walked in lexical order.
type Directory interface {
	Path() string

	// Walk calls fn for the root and every entry below it. A non-nil error
	// from fn stops the walk, except fs.SkipDir which skips a directory.
	Walk(fn func(File, error) error) error
}

// FileSystemProvider opens directories and reads single files.
type FileSystemProvider interface {
	Open(path string) (Directory, error)
	ReadFile(path string) ([]byte, error)
	Stat(path string) (FileInfo, error)
}
