// Package main provides the entry point of vncprefs.
// It seeds the viewer preferences of an e-ink tuned noVNC deployment with
// defaults, never overwriting a stored value, and serves them over a JSON API,
// a localStorage seeding script and a small HTML overview built on Fiber.
// Preferences persist in sqlite, MySQL or PostgreSQL through gorm, or in any
// gofiber storage backend.
package main
