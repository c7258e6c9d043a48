package scanner

import (
	"bytes"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/vvka-141/jcagen/internal/files/filesystem"
	"github.com/vvka-141/jcagen/internal/metadata"
	"github.com/vvka-141/jcagen/pkg/jcagen"
)

// Kind is the document type a descriptor is expected to hold, derived from
// its file name.
type Kind int

const (
	KindUnknown Kind = iota
	KindIronJacamar
	KindResourceAdapters
)

func (k Kind) String() string {
	switch k {
	case KindIronJacamar:
		return "ironjacamar"
	case KindResourceAdapters:
		return "resource-adapters"
	}
	return "unknown"
}

// Classify returns the descriptor kind for a file name.
func Classify(name string) Kind {
	name = strings.ToLower(name)
	switch {
	case name == "ironjacamar.xml":
		return KindIronJacamar
	case name == "resource-adapters.xml", strings.HasSuffix(name, "-ra.xml"):
		return KindResourceAdapters
	}
	return KindUnknown
}

// Descriptor is one scanned file. Exactly one of Document and Err is set.
type Descriptor struct {
	Path     string
	Kind     Kind
	Document *metadata.Document
	Err      error
}

// ScanResult holds descriptors in walk order.
type ScanResult struct {
	Descriptors []Descriptor
}

// Failed returns the descriptors that did not parse.
func (r ScanResult) Failed() []Descriptor {
	var failed []Descriptor
	for _, d := range r.Descriptors {
		if d.Err != nil {
			failed = append(failed, d)
		}
	}
	return failed
}

// Scanner is safe for concurrent use as long as its provider is.
type Scanner struct {
	parser     *metadata.Parser
	fsProvider filesystem.FileSystemProvider
}

// NewScanner creates a scanner over the OS filesystem.
// Panics if parser is nil.
func NewScanner(parser *metadata.Parser) *Scanner {
	return NewScannerWithFS(parser, filesystem.NewOSFileSystem())
}

// NewScannerWithFS creates a scanner over a custom filesystem provider.
// Panics if parser or fsProvider is nil.
func NewScannerWithFS(parser *metadata.Parser, fsProvider filesystem.FileSystemProvider) *Scanner {
	if parser == nil {
		panic("parser cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{parser: parser, fsProvider: fsProvider}
}

// Scan parses path as a single descriptor when it is a file and scans it
// recursively when it is a directory. An explicitly named file is parsed
// whatever its name; the root element decides the document type.
func (s *Scanner) Scan(path string) (ScanResult, error) {
	info, err := s.fsProvider.Stat(path)
	if err != nil {
		return ScanResult{}, fmt.Errorf("failed to access %s: %w", path, err)
	}
	if info.IsDir() {
		return s.ScanDirectory(path)
	}

	content, err := s.fsProvider.ReadFile(path)
	if err != nil {
		return ScanResult{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ScanResult{Descriptors: []Descriptor{s.parse(path, Classify(info.Name()), content)}}, nil
}

// ScanDirectory walks sourcePath and parses every descriptor found.
func (s *Scanner) ScanDirectory(sourcePath string) (ScanResult, error) {
	dir, err := s.fsProvider.Open(sourcePath)
	if err != nil {
		return ScanResult{}, fmt.Errorf("failed to open directory: %w", err)
	}

	var result ScanResult
	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking path: %w", err)
		}

		info := file.Info()
		if info.IsDir() {
			if file.RelativePath() != "." && skipDir(info.Name()) {
				return fs.SkipDir
			}
			return nil
		}

		kind := Classify(info.Name())
		if kind == KindUnknown {
			return nil
		}

		content, err := file.ReadContent()
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file.RelativePath(), err)
		}
		display := filepath.Join(sourcePath, filepath.FromSlash(file.RelativePath()))
		result.Descriptors = append(result.Descriptors, s.parse(display, kind, content))
		return nil
	})
	if err != nil {
		return ScanResult{}, err
	}
	return result, nil
}

func (s *Scanner) parse(path string, kind Kind, content []byte) Descriptor {
	d := Descriptor{Path: path, Kind: kind}
	doc, err := s.parser.ParseDocument(bytes.NewReader(content), path)
	if err != nil {
		d.Err = err
		return d
	}
	if want := kindOfRoot(doc.Root); kind != KindUnknown && want != kind {
		d.Err = fmt.Errorf("%w: %s: expected a %s document, found <%s>", jcagen.ErrInvalidMetadata, path, kind, doc.Root)
		return d
	}
	d.Kind = kindOfRoot(doc.Root)
	d.Document = doc
	return d
}

func kindOfRoot(root string) Kind {
	switch root {
	case "ironjacamar":
		return KindIronJacamar
	case "resource-adapters":
		return KindResourceAdapters
	}
	return KindUnknown
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "target"
}
