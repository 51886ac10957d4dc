// Package preferences implements the JSON API over the stored viewer preferences.
package preferences

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/eink-vnc/vncprefs/internal/config"
	"github.com/eink-vnc/vncprefs/internal/preference"
	"github.com/eink-vnc/vncprefs/internal/web/handler"
)

const (
	// Path is the collection path of the preference API.
	Path = handler.APIPath + "preferences"

	// DefaultsPath lists the seeded defaults.
	DefaultsPath = Path + "/defaults"

	// SeedPath reruns the seeder.
	SeedPath = Path + "/seed"

	// KeyPath addresses one preference.
	KeyPath = Path + "/:key"
)

// Item is one preference in API responses.
type Item struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	Default   string `json:"default,omitempty"`
	IsDefault bool   `json:"isDefault"`
}

// List is the response of the collection endpoint.
type List struct {
	Origin      string `json:"origin"`
	Preferences []Item `json:"preferences"`
}

// keyValue is validated for writes.
type keyValue struct {
	Key   string `json:"key" validate:"required,max=64,prefkey"`
	Value string `json:"value" validate:"max=256"`
}

// Service is the preference API handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	store     preference.Backend
	validator XValidator
}

// Init registers the preference API routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, store preference.Backend) error {
	if app == nil || cfg == nil || store == nil {
		return handler.ErrNilACS
	}

	s.cfg = cfg
	s.store = store
	s.validator = NewValidator()

	app.Get(Path, s.List)
	app.Get(DefaultsPath, s.Defaults)
	app.Post(SeedPath, s.Seed)
	app.Get(KeyPath, s.Get)
	app.Put(KeyPath, s.Put)
	app.Delete(KeyPath, s.Delete)

	return nil
}

// List returns every stored preference, default keys first.
func (s *Service) List(c *fiber.Ctx) error {
	values, err := s.store.All(c.UserContext())
	if err != nil {
		log.Error().Err(err).Msg("failed to list preferences")
		return fiber.ErrInternalServerError
	}

	out := List{Origin: s.cfg.Origin, Preferences: make([]Item, 0, len(values))}
	for _, k := range preference.Ordered(values) {
		out.Preferences = append(out.Preferences, newItem(k, values[k]))
	}

	return c.JSON(out)
}

// Defaults returns the default table in seeding order.
func (s *Service) Defaults(c *fiber.Ctx) error {
	return c.JSON(preference.Defaults())
}

// Get returns one preference.
func (s *Service) Get(c *fiber.Ctx) error {
	key := c.Params("key")

	value, found, err := s.store.Get(c.UserContext(), key)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to read preference")
		return fiber.ErrInternalServerError
	}

	if !found {
		return c.Status(fiber.StatusNotFound).JSON(handler.Response{Message: "preference not found"})
	}

	return c.JSON(newItem(key, value))
}

// Put stores a preference value, replacing any previous one.
func (s *Service) Put(c *fiber.Ctx) error {
	req := keyValue{Key: c.Params("key")}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(handler.Response{Message: "invalid request body"})
	}

	// the path wins over a key in the body
	req.Key = c.Params("key")

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	if err := s.store.Set(c.UserContext(), req.Key, req.Value); err != nil {
		log.Error().Err(err).Str("key", req.Key).Msg("failed to write preference")
		return fiber.ErrInternalServerError
	}

	log.Info().Str("origin", s.cfg.Origin).Str("key", req.Key).Str("value", req.Value).Msg("preference changed")

	return c.JSON(newItem(req.Key, req.Value))
}

// Delete removes a preference. The next seeding run restores a default key.
func (s *Service) Delete(c *fiber.Ctx) error {
	key := c.Params("key")

	existed, err := s.store.Delete(c.UserContext(), key)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete preference")
		return fiber.ErrInternalServerError
	}

	if !existed {
		return c.Status(fiber.StatusNotFound).JSON(handler.Response{Message: "preference not found"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Seed reruns the seeder and returns its report.
func (s *Service) Seed(c *fiber.Ctx) error {
	report, err := preference.Seed(c.UserContext(), s.store, s.cfg.Origin)
	if err != nil {
		log.Error().Err(err).Msg("failed to seed preferences")
		return fiber.ErrInternalServerError
	}

	return c.JSON(report)
}

func newItem(key, value string) Item {
	item := Item{Key: key, Value: value}

	if def, ok := preference.Default(preference.Key(key)); ok {
		item.Default = def
		item.IsDefault = def == value
	}

	return item
}
