// Package overview renders the HTML page listing the stored preferences.
package overview

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/eink-vnc/vncprefs/internal/config"
	"github.com/eink-vnc/vncprefs/internal/preference"
	"github.com/eink-vnc/vncprefs/internal/web/handler"
	"github.com/eink-vnc/vncprefs/internal/web/handler/viewerconfig"
)

const (
	// Path is the path to the overview page.
	Path = handler.RootPath

	// TemplateName is the name of the overview template.
	TemplateName = "overview/overview"
)

// Row is one table row of the overview page.
type Row struct {
	Key         string
	Value       string
	Default     string
	Description string
	Stored      bool
	Changed     bool
}

// Data is the template data of the overview page.
type Data struct {
	Title      string
	Origin     string
	ScriptPath string
	Rows       []Row
	Custom     []Row
}

// Service is the overview handler service.
type Service struct {
	handler.Service
	cfg   *config.Config
	store preference.Backend
}

// Init registers the overview route.
func (s *Service) Init(app *fiber.App, cfg *config.Config, store preference.Backend) error {
	if app == nil || cfg == nil || store == nil {
		return handler.ErrNilACS
	}

	s.cfg = cfg
	s.store = store

	app.Get(Path, s.Get)

	return nil
}

// Get renders the overview page.
func (s *Service) Get(c *fiber.Ctx) error {
	values, err := s.store.All(c.UserContext())
	if err != nil {
		log.Error().Err(err).Msg("failed to list preferences")
		return fiber.ErrInternalServerError
	}

	return c.Render(TemplateName, fiber.Map{
		"Data": build(s.cfg, values),
	}, handler.BaseLayout)
}

func build(cfg *config.Config, values map[string]string) Data {
	data := Data{
		Title:      cfg.Title,
		Origin:     cfg.Origin,
		ScriptPath: viewerconfig.Path,
		Rows:       make([]Row, 0, len(preference.Defaults())),
	}

	for _, e := range preference.Defaults() {
		v, ok := values[string(e.Key)]
		data.Rows = append(data.Rows, Row{
			Key:         string(e.Key),
			Value:       v,
			Default:     e.Default,
			Description: e.Description,
			Stored:      ok,
			Changed:     ok && v != e.Default,
		})
	}

	for _, k := range preference.Ordered(values) {
		if _, ok := preference.Default(preference.Key(k)); ok {
			continue
		}

		data.Custom = append(data.Custom, Row{Key: k, Value: values[k], Stored: true})
	}

	return data
}
