package components

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// PathCompleter completes directory names for the output directory field.
// Repeated Tab presses on the same input cycle through the candidates.
//
//	completer := NewPathCompleter(true)
//	input.SetValue(completer.Next(input.Value())) // on Tab
//	completer.Reset()                            // on any other key
type PathCompleter struct {
	dirsOnly   bool
	parent     string
	candidates []string
	next       int
}

// NewPathCompleter creates a completer. If dirsOnly is true, files are
// never offered.
func NewPathCompleter(dirsOnly bool) *PathCompleter {
	return &PathCompleter{dirsOnly: dirsOnly}
}

// Next returns the completion for input. The first call for a parent
// directory completes the longest shared prefix when there is one; later
// calls cycle through the candidates.
func (c *PathCompleter) Next(input string) string {
	parent, prefix := splitPath(input)

	if c.candidates == nil || parent != c.parent {
		c.parent = parent
		c.candidates = c.list(parent, prefix)
		c.next = 0
		if len(c.candidates) == 0 {
			return input
		}
		if len(c.candidates) > 1 {
			if candidate := filepath.Join(parent, longestCommonPrefix(c.candidates)); len(candidate) > len(input) {
				return candidate
			}
		}
	} else if len(c.candidates) == 0 {
		return input
	}

	name := c.candidates[c.next%len(c.candidates)]
	c.next++
	return withSeparator(filepath.Join(parent, name))
}

// Reset forgets the candidates so the next Tab starts over.
func (c *PathCompleter) Reset() {
	c.parent = ""
	c.candidates = nil
	c.next = 0
}

func (c *PathCompleter) list(parent, prefix string) []string {
	entries, err := os.ReadDir(parent)
	if err != nil {
		return []string{}
	}

	lowPrefix := strings.ToLower(prefix)
	names := []string{}
	for _, entry := range entries {
		if c.dirsOnly && !entry.IsDir() {
			continue
		}
		if strings.HasPrefix(strings.ToLower(entry.Name()), lowPrefix) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}

func withSeparator(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path + string(filepath.Separator)
	}
	return path
}

// splitPath splits input into the directory to list and the name prefix.
//
//	"./out/acm" → ("out", "acm")
//	"./out/"    → ("./out", "")
//	"acm"       → (".", "acm")
//	""          → (".", "")
func splitPath(input string) (parent, prefix string) {
	if input == "" || input == "." {
		return ".", ""
	}
	if strings.HasSuffix(input, "/") || strings.HasSuffix(input, string(filepath.Separator)) {
		return strings.TrimRight(input, `/\`), ""
	}
	return filepath.Dir(input), filepath.Base(input)
}

// longestCommonPrefix compares case-insensitively and returns the prefix
// spelled as in the first string.
func longestCommonPrefix(strs []string) string {
	first := strings.ToLower(strs[0])
	n := len(first)
	for _, s := range strs[1:] {
		s = strings.ToLower(s)
		i := 0
		for i < n && i < len(s) && s[i] == first[i] {
			i++
		}
		n = i
	}
	return strs[0][:n]
}
