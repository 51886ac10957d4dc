// Package viewerconfig serves the script the noVNC page loads to pick up its
// preference defaults.
package viewerconfig

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"text/template"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/eink-vnc/vncprefs/internal/config"
	"github.com/eink-vnc/vncprefs/internal/preference"
	"github.com/eink-vnc/vncprefs/internal/web/handler"
)

// Path of the generated script.
const Path = handler.RootPath + "novnc-config.js"

//go:embed novnc-config.js.tmpl
var scriptSource string

var script = template.Must(template.New("novnc-config.js").Parse(scriptSource)) //nolint:gochecknoglobals

// Service is the viewer config handler service.
type Service struct {
	handler.Service
	cfg   *config.Config
	store preference.Backend
}

// Init registers the script route.
func (s *Service) Init(app *fiber.App, cfg *config.Config, store preference.Backend) error {
	if app == nil || cfg == nil || store == nil {
		return handler.ErrNilACS
	}

	s.cfg = cfg
	s.store = store

	app.Get(Path, s.Get)

	return nil
}

// Values returns the preference pairs the script writes: the defaults
// overlaid with the stored values, default keys first.
func Values(stored map[string]string) [][2]string {
	merged := make(map[string]string, len(stored))
	for _, e := range preference.Defaults() {
		merged[string(e.Key)] = e.Default
	}

	for k, v := range stored {
		merged[k] = v
	}

	out := make([][2]string, 0, len(merged))
	for _, k := range preference.Ordered(merged) {
		out = append(out, [2]string{k, merged[k]})
	}

	return out
}

// Render writes the script for the given pairs.
func Render(origin string, pairs [][2]string) ([]byte, error) {
	// json.Marshal escapes <, > and & so the data can not close a script tag
	data, err := json.Marshal(pairs)
	if err != nil {
		return nil, err
	}

	originJSON, err := json.Marshal(origin)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err = script.Execute(&buf, map[string]string{
		"Origin":      string(originJSON),
		"Preferences": string(data),
	}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Get renders the script.
func (s *Service) Get(c *fiber.Ctx) error {
	stored, err := s.store.All(c.UserContext())
	if err != nil {
		log.Error().Err(err).Msg("failed to load preferences for viewer script")
		return fiber.ErrInternalServerError
	}

	body, err := Render(s.cfg.Origin, Values(stored))
	if err != nil {
		log.Error().Err(err).Msg("failed to render viewer script")
		return fiber.ErrInternalServerError
	}

	c.Set(fiber.HeaderContentType, "application/javascript; charset=utf-8")
	c.Set(fiber.HeaderCacheControl, "no-cache")

	return c.Send(body)
}
