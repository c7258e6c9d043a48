package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/jcagen/pkg/jcagen"
)

const validIronJacamar = `<?xml version="1.0" encoding="UTF-8"?>
<ironjacamar>
  <config-property name="Server">${eis.host:localhost}</config-property>
  <connection-definitions>
    <connection-definition class-name="com.acme.eis.AcmeManagedConnectionFactory" jndi-name="java:/eis/Acme">
      <pool>
        <min-pool-size>1</min-pool-size>
        <max-pool-size>${pool.max:10}</max-pool-size>
      </pool>
    </connection-definition>
  </connection-definitions>
</ironjacamar>
`

const invalidIronJacamar = `<ironjacamar>
  <connection-definitions>
    <connection-definition jndi-name="java:/eis/Broken">
      <pool><min-pool-size>10</min-pool-size><max-pool-size>5</max-pool-size></pool>
    </connection-definition>
  </connection-definitions>
</ironjacamar>
`

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestMetadataValidate_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "META-INF", "ironjacamar.xml"), validIronJacamar)
	writeFile(t, filepath.Join(dir, "target", "ironjacamar.xml"), invalidIronJacamar)

	stdout, _, err := executeCommand(t, "", "metadata", "validate", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ "+filepath.Join(dir, "META-INF", "ironjacamar.xml"))
	assert.Contains(t, stdout, "1 connection definition(s)")
	assert.NotContains(t, stdout, "target")
}

func TestMetadataValidate_ReportsFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, filepath.Join(dir, "good", "ironjacamar.xml"), validIronJacamar)
	bad := writeFile(t, filepath.Join(dir, "bad-ra.xml"), `<resource-adapters><resource-adapter><archive>x.rar</archive>`+
		`<connection-definitions><connection-definition jndi-name="java:/a"><pool><min-pool-size>10</min-pool-size><max-pool-size>5</max-pool-size></pool></connection-definition></connection-definitions>`+
		`</resource-adapter></resource-adapters>`)

	stdout, _, err := executeCommand(t, "", "metadata", "validate", "--json", dir)
	require.Error(t, err)
	assert.Equal(t, jcagen.ExitMetadataError, jcagen.ExitCodeForError(err))
	assert.Contains(t, err.Error(), "1 of 2 descriptor(s) failed")

	var report validateReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.False(t, report.Valid)
	require.Len(t, report.Descriptors, 2)

	byPath := map[string]descriptorReport{}
	for _, d := range report.Descriptors {
		byPath[d.Path] = d
	}
	assert.True(t, byPath[good].Valid)
	assert.Equal(t, "ironjacamar", byPath[good].Kind)
	assert.False(t, byPath[bad].Valid)
	assert.Equal(t, "resource-adapters", byPath[bad].Kind)
	assert.Contains(t, byPath[bad].Error, "min-pool-size")
}

func TestMetadataValidate_ExplicitFileAndDefines(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "activation.xml"), validIronJacamar)

	_, _, err := executeCommand(t, "", "metadata", "validate", path, "-D", "pool.max=-1")
	require.Error(t, err, "a negative max-pool-size from -D is invalid")
	assert.Equal(t, jcagen.ExitMetadataError, jcagen.ExitCodeForError(err))

	_, _, err = executeCommand(t, "", "metadata", "validate", path, "-D", "broken")
	assert.Equal(t, jcagen.ExitUsageError, jcagen.ExitCodeForError(err))

	_, _, err = executeCommand(t, "", "metadata", "validate")
	assert.Equal(t, jcagen.ExitUsageError, jcagen.ExitCodeForError(err))
}

func TestMetadataValidate_EmptyDirectory(t *testing.T) {
	stdout, _, err := executeCommand(t, "", "metadata", "validate", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, stdout, "No descriptors found")
}

func TestMetadataFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "ironjacamar.xml"), validIronJacamar)
	props := writeFile(t, filepath.Join(dir, "prod.properties"), "eis.host=eis.prod\npool.max=30\n")

	stdout, _, err := executeCommand(t, "", "metadata", "format", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, `<max-pool-size>${pool.max:10}</max-pool-size>`)
	assert.Contains(t, stdout, `<config-property name="Server">${eis.host:localhost}</config-property>`)

	stdout, _, err = executeCommand(t, "", "metadata", "format", path, "--resolve",
		"--properties-file", props, "-D", "pool.max=50")
	require.NoError(t, err)
	assert.Contains(t, stdout, `<max-pool-size>50</max-pool-size>`)
	assert.Contains(t, stdout, `<config-property name="Server">eis.prod</config-property>`)
	assert.NotContains(t, stdout, "${")

	_, _, err = executeCommand(t, "", "metadata", "format", path, "--write")
	require.NoError(t, err)
	rewritten, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(rewritten), `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, string(rewritten), `${pool.max:10}`)
}

func TestMetadataFormat_WriteKeepsSchema(t *testing.T) {
	tests := []struct {
		name string
		root string
	}{
		{"ironjacamar", `<ironjacamar xmlns="http://www.ironjacamar.org/doc/schema" version="1.1"><bootstrap-context>ctx</bootstrap-context></ironjacamar>`},
		{"resource-adapters", `<resource-adapters xmlns="http://www.ironjacamar.org/doc/schema" version="1.1"><resource-adapter id="ra"><archive>ra.rar</archive></resource-adapter></resource-adapters>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, filepath.Join(t.TempDir(), tt.name+".xml"), tt.root)

			_, _, err := executeCommand(t, "", "metadata", "format", path, "--write")
			require.NoError(t, err)
			rewritten, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(rewritten), "?>\n<"+tt.name+` xmlns="http://www.ironjacamar.org/doc/schema" version="1.1">`)
		})
	}
}

func TestMetadataFormat_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, filepath.Join(dir, "bad.xml"), invalidIronJacamar)
	other := writeFile(t, filepath.Join(dir, "other.xml"), `<connector/>`)

	_, _, err := executeCommand(t, "", "metadata", "format", bad)
	assert.Equal(t, jcagen.ExitMetadataError, jcagen.ExitCodeForError(err))

	_, _, err = executeCommand(t, "", "metadata", "format", other)
	assert.Equal(t, jcagen.ExitMetadataError, jcagen.ExitCodeForError(err))

	_, _, err = executeCommand(t, "", "metadata", "format", filepath.Join(dir, "missing.xml"))
	assert.Equal(t, jcagen.ExitGeneralError, jcagen.ExitCodeForError(err))

	_, _, err = executeCommand(t, "", "metadata", "format", bad, other)
	assert.Equal(t, jcagen.ExitUsageError, jcagen.ExitCodeForError(err))
}
