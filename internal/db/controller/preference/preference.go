// Package preference provides CRUD operations for viewer preferences stored with gorm.
package preference

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/eink-vnc/vncprefs/internal/db/models"
)

const (
	originNameQueryPattern = "origin = ? AND name = ?"
	originQueryPattern     = "origin = ?"
)

var (
	// ErrPreferenceNotFound is returned when a preference is not found.
	ErrPreferenceNotFound = errors.New("preference not found")
	// ErrPreferenceNameEmpty is returned when a preference name is empty.
	ErrPreferenceNameEmpty = errors.New("preference name cannot be empty")
	// ErrPreferenceAlreadyExists is returned when creating a preference that already exists.
	ErrPreferenceAlreadyExists = errors.New("preference already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a preference of origin by name.
func Get(db *gorm.DB, origin, name string) (*models.Preference, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrPreferenceNameEmpty
	}

	var p models.Preference
	result := db.Where(originNameQueryPattern, origin, name).First(&p)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPreferenceNotFound
		}
		return nil, result.Error
	}

	return &p, nil
}

// GetAll retrieves all preferences of origin ordered by name.
func GetAll(db *gorm.DB, origin string) ([]models.Preference, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var prefs []models.Preference
	result := db.Where(originQueryPattern, origin).Order("name").Find(&prefs)
	if result.Error != nil {
		return nil, result.Error
	}

	return prefs, nil
}

// Create inserts a new preference. It fails if the name is already taken for origin.
func Create(db *gorm.DB, origin, name, value string) (*models.Preference, error) {
	p, created, err := CreateIfAbsent(db, origin, name, value)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, ErrPreferenceAlreadyExists
	}

	return p, nil
}

// CreateIfAbsent inserts a preference unless one with the same origin and name
// exists. The check and the insert are a single statement.
func CreateIfAbsent(db *gorm.DB, origin, name, value string) (*models.Preference, bool, error) {
	if db == nil {
		return nil, false, ErrDBNil
	}
	if name == "" {
		return nil, false, ErrPreferenceNameEmpty
	}

	p := &models.Preference{
		Origin: origin,
		Name:   name,
		Value:  value,
	}

	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(p)
	if result.Error != nil {
		return nil, false, result.Error
	}

	return p, result.RowsAffected == 1, nil
}

// Set creates or updates a preference by name (upsert operation).
func Set(db *gorm.DB, origin, name, value string) (*models.Preference, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrPreferenceNameEmpty
	}

	var p models.Preference
	result := db.Where(originNameQueryPattern, origin, name).First(&p)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return Create(db, origin, name, value)
	}
	if result.Error != nil {
		return nil, result.Error
	}

	p.Value = value
	result = db.Save(&p)
	if result.Error != nil {
		return nil, result.Error
	}

	return &p, nil
}

// Delete deletes a preference of origin by name.
func Delete(db *gorm.DB, origin, name string) error {
	if db == nil {
		return ErrDBNil
	}
	if name == "" {
		return ErrPreferenceNameEmpty
	}

	result := db.Where(originNameQueryPattern, origin, name).Delete(&models.Preference{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPreferenceNotFound
	}

	return nil
}
