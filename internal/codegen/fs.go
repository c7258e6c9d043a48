package codegen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-multierror"
	"github.com/vvka-141/jcagen/pkg/jcagen"
	"golang.org/x/sync/errgroup"
)

// FS is an in-memory tree of generated files that can be written to disk or
// compared against what is already there.
//
// Files may not be removed once added. Adding a path twice is an error.
type FS struct {
	mu    sync.Mutex
	files map[string]*fsEntry
}

type fsEntry struct {
	data  []byte
	owner string
}

// NewFS creates an empty FS.
func NewFS() *FS {
	return &FS{files: make(map[string]*fsEntry)}
}

// Add adds files to the FS. Conflicting or absolute paths are errors and
// nothing is added.
func (wd *FS) Add(flist ...File) error {
	for i := range flist {
		if err := flist[i].Validate(); err != nil {
			return err
		}
	}
	return wd.add(flist...)
}

func (wd *FS) add(flist ...File) error {
	wd.mu.Lock()
	defer wd.mu.Unlock()

	var result *multierror.Error
	for i := range flist {
		f := &flist[i]
		if rf, has := wd.files[f.RelativePath]; has {
			result = multierror.Append(result, fmt.Errorf("cannot create %s for %q, already created for %q", f.RelativePath, f.Owner(), rf.owner))
		}
		if filepath.IsAbs(f.RelativePath) {
			result = multierror.Append(result, fmt.Errorf("generated files must have relative paths, got %s from %q", f.RelativePath, f.Owner()))
		}
	}
	if result.ErrorOrNil() != nil {
		return result
	}

	for i := range flist {
		wd.files[flist[i].RelativePath] = &fsEntry{data: flist[i].Data, owner: flist[i].Owner()}
	}
	return nil
}

// Merge adds every entry of other. Duplicate paths are errors.
func (wd *FS) Merge(other *FS) error {
	var result *multierror.Error
	for _, item := range other.toSlice() {
		if err := wd.add(File{RelativePath: item.path, Data: item.contents, From: []Jenny{namedJenny(item.owner)}}); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// Len returns the number of files.
func (wd *FS) Len() int {
	wd.mu.Lock()
	defer wd.mu.Unlock()
	return len(wd.files)
}

// Paths returns every file path, sorted.
func (wd *FS) Paths() []string {
	items := wd.toSlice()
	paths := make([]string, len(items))
	for i, it := range items {
		paths[i] = it.path
	}
	return paths
}

// Get returns the content of the file at path.
func (wd *FS) Get(path string) ([]byte, bool) {
	wd.mu.Lock()
	defer wd.mu.Unlock()
	e, ok := wd.files[path]
	if !ok {
		return nil, false
	}
	return e.data, true
}

// AsFiles returns the content of the FS as a path-sorted slice.
func (wd *FS) AsFiles() Files {
	items := wd.toSlice()
	fl := make(Files, len(items))
	for i, it := range items {
		fl[i] = File{RelativePath: it.path, Data: it.contents, From: []Jenny{namedJenny(it.owner)}}
	}
	return fl
}

// Write writes every file below prefix, creating directories as needed.
func (wd *FS) Write(ctx context.Context, prefix string) error {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(jcagen.MaxWriteConcurrency)

	for _, item := range wd.toSlice() {
		item := item
		g.Go(func() error {
			path := filepath.Join(prefix, filepath.FromSlash(item.path))
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return fmt.Errorf("%s: failed to ensure parent directory exists: %w", path, err)
			}
			if err := os.WriteFile(path, item.contents, 0644); err != nil {
				return fmt.Errorf("%s: error while writing file: %w", path, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Verify compares every file with its counterpart below prefix. Missing or
// differing files are reported together, wrapped in jcagen.ErrVerifyFailed.
func (wd *FS) Verify(ctx context.Context, prefix string) error {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(jcagen.MaxWriteConcurrency)

	var (
		mu     sync.Mutex
		result *multierror.Error
	)
	report := func(err error) {
		mu.Lock()
		result = multierror.Append(result, err)
		mu.Unlock()
	}

	for _, item := range wd.toSlice() {
		item := item
		g.Go(func() error {
			path := filepath.Join(prefix, filepath.FromSlash(item.path))
			ondisk, err := os.ReadFile(path)
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					report(fmt.Errorf("%s: generated file should exist, but does not", path))
					return nil
				}
				return fmt.Errorf("%s: error reading file: %w", path, err)
			}
			if diff := cmp.Diff(string(ondisk), string(item.contents)); diff != "" {
				report(fmt.Errorf("%s would have changed:\n\n%s", path, diff))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("io error while verifying tree: %w", err)
	}

	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", jcagen.ErrVerifyFailed, err)
	}
	return nil
}

type fsItem struct {
	path     string
	contents []byte
	owner    string
}

func (wd *FS) toSlice() []fsItem {
	wd.mu.Lock()
	defer wd.mu.Unlock()

	sl := make([]fsItem, 0, len(wd.files))
	for k, v := range wd.files {
		sl = append(sl, fsItem{path: k, contents: v.data, owner: v.owner})
	}
	sort.Slice(sl, func(i, j int) bool {
		return sl[i].path < sl[j].path
	})
	return sl
}

// namedJenny carries the name of a jenny through FS round trips.
type namedJenny string

func (n namedJenny) JennyName() string { return string(n) }
