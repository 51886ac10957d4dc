package overview

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eink-vnc/vncprefs/internal/config"
	"github.com/eink-vnc/vncprefs/internal/preference"
)

func TestBuild(t *testing.T) {
	cfg := &config.Config{Title: "prefs", Origin: "https://vnc.local"}

	data := build(cfg, map[string]string{"quality": "9", "language": "en", "zoom": "2"})

	assert.Equal(t, "prefs", data.Title)
	assert.Equal(t, "/novnc-config.js", data.ScriptPath)
	require.Len(t, data.Rows, 7)

	assert.Equal(t, Row{Key: "language", Value: "en", Default: "en", Description: "UI locale", Stored: true}, data.Rows[0])
	assert.False(t, data.Rows[1].Stored, "cursor is not stored")
	assert.True(t, data.Rows[5].Changed, "quality differs from its default")

	assert.Equal(t, []Row{{Key: "zoom", Value: "2", Stored: true}}, data.Custom)
}

func TestGet(t *testing.T) {
	engine := html.NewFileSystem(http.Dir("../../templates"), ".gohtml")
	app := fiber.New(fiber.Config{Views: engine})

	store := preference.NewMemoryStore(map[string]string{"quality": "9", "zoom": "<b>"})
	require.NoError(t, (&Service{}).Init(app, &config.Config{Title: "prefs", Origin: "https://vnc.local"}, store))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, Path, nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	page := string(body)
	assert.Contains(t, page, "<title>prefs</title>")
	assert.Contains(t, page, "https://vnc.local")
	assert.Contains(t, page, `<tr class="changed">`)
	assert.Contains(t, page, "&lt;b&gt;")
	assert.NotContains(t, page, "<b>")
}

func TestInitNil(t *testing.T) {
	require.Error(t, (&Service{}).Init(nil, &config.Config{}, preference.NewMemoryStore(nil)))
}
