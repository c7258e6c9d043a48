package codegen

import (
	"fmt"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// JennyList is an ordered collection of jennies. GenerateFS calls each jenny
// in order and collects the results into one FS.
//
// All files share a single relative path namespace. Two jennies producing
// the same path is an error.
type JennyList struct {
	mut sync.RWMutex

	jennies []Jenny

	// post runs on every file returned from a contained jenny.
	post []FileMapper
}

// NewJennyList returns an empty JennyList.
func NewJennyList() *JennyList {
	return &JennyList{}
}

func (js *JennyList) JennyName() string { return "JennyList" }

// Len returns the number of jennies in the list.
func (js *JennyList) Len() int {
	js.mut.RLock()
	defer js.mut.RUnlock()
	return len(js.jennies)
}

// Append adds jennies to the end of the list. Every jenny must implement
// OneToOne or OneToMany, or Append panics.
func (js *JennyList) Append(jennies ...Jenny) {
	for _, j := range jennies {
		switch j.(type) {
		case OneToOne, OneToMany:
		default:
			panic(fmt.Sprintf("%T is not a valid Jenny, must implement OneToOne or OneToMany", j))
		}
	}
	js.mut.Lock()
	js.jennies = append(js.jennies, jennies...)
	js.mut.Unlock()
}

// AddPostprocessors appends FileMappers. They run in order on every file.
func (js *JennyList) AddPostprocessors(fn ...FileMapper) {
	js.mut.Lock()
	js.post = append(js.post, fn...)
	js.mut.Unlock()
}

// GenerateFS runs every jenny against def. Errors from all jennies are
// aggregated; a non-nil error means no FS is returned.
func (js *JennyList) GenerateFS(def *Definition) (*FS, error) {
	js.mut.RLock()
	defer js.mut.RUnlock()

	jfs := NewFS()

	manyout := func(j Jenny, fl Files, err error) error {
		if err != nil {
			return fmt.Errorf("%s: %w", j.JennyName(), err)
		}
		for i := range fl {
			fl[i].From = append([]Jenny{j}, fl[i].From...)
		}
		if err = fl.Validate(); err != nil {
			return fmt.Errorf("%s returned invalid files: %w", j.JennyName(), err)
		}

		for i, f := range fl {
			for _, post := range js.post {
				of, err := post(f)
				if err != nil {
					return fmt.Errorf("postprocessing of %s from %s failed: %w", f.RelativePath, jennystack(f.From), err)
				}
				f = of
			}
			fl[i] = f
		}
		return jfs.add(fl...)
	}
	oneout := func(j Jenny, f *File, err error) error {
		var fl Files
		if f != nil {
			fl = Files{*f}
		}
		if err == nil && len(fl) == 0 {
			return nil
		}
		return manyout(j, fl, err)
	}

	var result *multierror.Error
	for _, jn := range js.jennies {
		var err error
		switch jenny := jn.(type) {
		case OneToOne:
			f, gerr := jenny.Generate(def)
			err = oneout(jenny, f, gerr)
		case OneToMany:
			fl, gerr := jenny.Generate(def)
			err = manyout(jenny, fl, gerr)
		}
		if err != nil {
			result = multierror.Append(result, err)
		}
	}

	if result.ErrorOrNil() != nil {
		return nil, multierror.Flatten(result)
	}
	return jfs, nil
}

// Generate is GenerateFS returning a sorted file slice.
func (js *JennyList) Generate(def *Definition) (Files, error) {
	jfs, err := js.GenerateFS(def)
	if err != nil {
		return nil, err
	}
	return jfs.AsFiles(), nil
}

func jennystack(s []Jenny) string {
	names := make([]string, 0, len(s))
	for _, j := range s {
		names = append(names, j.JennyName())
	}
	return strings.Join(names, ":")
}
