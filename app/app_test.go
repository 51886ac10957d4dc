package app

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eink-vnc/vncprefs/internal/config"
	"github.com/eink-vnc/vncprefs/internal/preference"
)

func writeConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	content := fmt.Sprintf(`Title = "vncprefs"
Origin = "https://vnc.local"

[Store]
Driver = "sqlite"

[Store.SQLite]
Path = %q

[Webserver]
Port = 6081
URL = "http://localhost:6081"
`, filepath.Join(dir, "preferences.db"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(content), 0o600))

	return dir
}

func run(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, Execute())

	return out.String()
}

func TestSeedAndShow(t *testing.T) {
	dir := writeConfig(t)

	out := run(t, "seed", "--config", dir)
	assert.Contains(t, out, "origin: https://vnc.local")
	assert.Contains(t, out, "seeded: language, cursor, resize, clipboard, compression, quality, dotCursor")
	assert.Contains(t, out, "kept:   -")

	out = run(t, "seed", "--config", dir)
	assert.Contains(t, out, "seeded: -")

	out = run(t, "show", "--config", dir)
	assert.Contains(t, out, "KEY")
	assert.Regexp(t, `quality\s+"5"\s+5`, out)
}

func TestConfigDump(t *testing.T) {
	dir := writeConfig(t)

	out := run(t, "config", "--config", dir)
	assert.Contains(t, out, `Origin = "https://vnc.local"`)

	t.Cleanup(func() { dumpJSON = false })

	out = run(t, "config", "--config", dir, "--json")
	assert.Contains(t, out, `"Origin": "https://vnc.local"`)
}

func TestPrintReport(t *testing.T) {
	var out bytes.Buffer

	printReport(&out, &preference.Report{
		Origin: "o",
		Seeded: []preference.Key{preference.KeyQuality},
	})

	assert.Equal(t, "origin: o\nseeded: quality\nkept:   -\n", out.String())
}

func TestPrintValues(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, printValues(&out, map[string]string{"zoom": "", "language": "fr"}))

	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Regexp(t, `^language\s+"fr"\s+en$`, string(lines[1]))
	assert.Regexp(t, `^zoom\s+""\s+-$`, string(lines[2]))
}
