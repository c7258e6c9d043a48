package filesystem

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func walkFiles(t *testing.T, dir Directory, skipDirs ...string) []string {
	t.Helper()
	var files []string
	err := dir.Walk(func(f File, err error) error {
		require.NoError(t, err)
		if f.Info().IsDir() {
			for _, name := range skipDirs {
				if f.Info().Name() == name {
					return fs.SkipDir
				}
			}
			return nil
		}
		files = append(files, f.RelativePath())
		return nil
	})
	require.NoError(t, err)
	return files
}

func TestMemoryFileSystem_Walk(t *testing.T) {
	mfs := NewMemoryFileSystem("/work/adapter")
	mfs.AddFile("src/main/resources/META-INF/ironjacamar.xml", "<ironjacamar/>")
	mfs.AddFile("src/main/resources/META-INF/ra.xml", "<connector/>")
	mfs.AddFile("build.xml", "<project/>")

	dir, err := mfs.Open("/work/adapter")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"build.xml",
		"src/main/resources/META-INF/ironjacamar.xml",
		"src/main/resources/META-INF/ra.xml",
	}, walkFiles(t, dir))
}

func TestMemoryFileSystem_WalkSkipDir(t *testing.T) {
	mfs := NewMemoryFileSystem("/work")
	mfs.AddFile("deployments/eis-ra.xml", "<resource-adapters/>")
	mfs.AddFile("target/classes/META-INF/ironjacamar.xml", "<ironjacamar/>")
	mfs.AddFile("zz.xml", "<x/>")

	dir, err := mfs.Open(".")
	require.NoError(t, err)

	assert.Equal(t, []string{"deployments/eis-ra.xml", "zz.xml"}, walkFiles(t, dir, "target"))
}

func TestMemoryFileSystem_WalkSubdirectory(t *testing.T) {
	mfs := NewMemoryFileSystem("/work")
	mfs.AddFile("a/one.xml", "1")
	mfs.AddFile("ab/two.xml", "2")

	dir, err := mfs.Open("a")
	require.NoError(t, err)
	assert.Equal(t, "/work/a", dir.Path())
	assert.Equal(t, []string{"one.xml"}, walkFiles(t, dir))
}

func TestMemoryFileSystem_ReadFileAndStat(t *testing.T) {
	mfs := NewMemoryFileSystem("/work")
	mfs.AddFile("META-INF/ironjacamar.xml", "<ironjacamar/>")

	content, err := mfs.ReadFile("/work/META-INF/ironjacamar.xml")
	require.NoError(t, err)
	assert.Equal(t, "<ironjacamar/>", string(content))

	info, err := mfs.Stat("META-INF/ironjacamar.xml")
	require.NoError(t, err)
	assert.False(t, info.IsDir())
	assert.Equal(t, int64(len("<ironjacamar/>")), info.Size())

	info, err = mfs.Stat("META-INF")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = mfs.ReadFile("META-INF")
	assert.Error(t, err)
	_, err = mfs.Stat("missing.xml")
	assert.Error(t, err)
}

func TestMemoryFileSystem_OpenErrors(t *testing.T) {
	mfs := NewMemoryFileSystem("/work")
	mfs.AddFile("ironjacamar.xml", "<ironjacamar/>")

	_, err := mfs.Open("nope")
	assert.Error(t, err)
	_, err = mfs.Open("ironjacamar.xml")
	assert.ErrorContains(t, err, "not a directory")
}
