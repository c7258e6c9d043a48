package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.mode.IsDir() }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryFile struct {
	absPath string
	relPath string
	content []byte
	info    *memoryFileInfo
}

func (f *memoryFile) Path() string                 { return f.absPath }
func (f *memoryFile) RelativePath() string         { return f.relPath }
func (f *memoryFile) Info() FileInfo               { return f.info }
func (f *memoryFile) ReadContent() ([]byte, error) { return f.content, nil }

type memoryDirectory struct {
	absPath string
	fs      *MemoryFileSystem
}

func (d *memoryDirectory) Path() string { return d.absPath }

func (d *memoryDirectory) Walk(fn func(File, error) error) error {
	var paths []string
	for p := range d.fs.files {
		if p == d.absPath || strings.HasPrefix(p, strings.TrimSuffix(d.absPath, "/")+"/") {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	var skip []string
	for _, p := range paths {
		if skipped(p, skip) {
			continue
		}
		entry := d.fs.files[p]
		rel := strings.TrimPrefix(strings.TrimPrefix(p, d.absPath), "/")
		if rel == "" {
			rel = "."
		}
		err := fn(&memoryFile{absPath: p, relPath: rel, content: entry.content, info: entry.info}, nil)
		switch {
		case errors.Is(err, fs.SkipDir) && entry.info.IsDir():
			if p == d.absPath {
				return nil
			}
			skip = append(skip, p+"/")
		case errors.Is(err, fs.SkipDir):
			skip = append(skip, path.Dir(p)+"/")
		case err != nil:
			return err
		}
	}
	return nil
}

func skipped(p string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// MemoryFileSystem implements FileSystemProvider in memory. Paths are
// slash-separated; relative paths are resolved against the root.
type MemoryFileSystem struct {
	files map[string]*memoryFile
	root  string
}

func NewMemoryFileSystem(root string) *MemoryFileSystem {
	mfs := &MemoryFileSystem{
		files: make(map[string]*memoryFile),
		root:  path.Clean(filepath.ToSlash(root)),
	}
	mfs.addDir(mfs.root)
	return mfs
}

// AddFile adds a file and any missing parent directories.
func (mfs *MemoryFileSystem) AddFile(filePath, content string) {
	abs := mfs.abs(filePath)
	mfs.files[abs] = &memoryFile{
		absPath: abs,
		content: []byte(content),
		info: &memoryFileInfo{
			name:    path.Base(abs),
			size:    int64(len(content)),
			mode:    0644,
			modTime: time.Now(),
		},
	}
	for dir := path.Dir(abs); dir != "/" && dir != "."; dir = path.Dir(dir) {
		if _, ok := mfs.files[dir]; ok {
			break
		}
		mfs.addDir(dir)
	}
}

func (mfs *MemoryFileSystem) addDir(dir string) {
	mfs.files[dir] = &memoryFile{
		absPath: dir,
		info: &memoryFileInfo{
			name:    path.Base(dir),
			mode:    0755 | fs.ModeDir,
			modTime: time.Now(),
		},
	}
}

func (mfs *MemoryFileSystem) abs(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

func (mfs *MemoryFileSystem) Open(openPath string) (Directory, error) {
	abs := mfs.abs(openPath)
	f, ok := mfs.files[abs]
	if !ok {
		return nil, fmt.Errorf("directory not found: %s", openPath)
	}
	if !f.info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", openPath)
	}
	return &memoryDirectory{absPath: abs, fs: mfs}, nil
}

func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	f, ok := mfs.files[mfs.abs(filePath)]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", filePath)
	}
	if f.info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	return f.content, nil
}

func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	f, ok := mfs.files[mfs.abs(statPath)]
	if !ok {
		return nil, fmt.Errorf("path not found: %s", statPath)
	}
	return f.info, nil
}
