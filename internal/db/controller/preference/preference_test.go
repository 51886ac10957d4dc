package preference

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/eink-vnc/vncprefs/internal/db/models"
	core "github.com/eink-vnc/vncprefs/internal/preference"
)

const testOrigin = "https://vnc.local"

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	// a single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&models.Preference{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// seedPreferences inserts test data into the database.
func seedPreferences(t *testing.T, db *gorm.DB, prefs []models.Preference) {
	t.Helper()
	for _, p := range prefs {
		err := db.Create(&p).Error
		require.NoError(t, err, "failed to seed test data")
	}
}

func TestGet(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		origin        string
		prefName      string
		seedData      []models.Preference
		expectedError error
		expectedValue string
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			prefName:      "quality",
			expectedError: ErrDBNil,
		},
		{
			name:          "empty name",
			dbParam:       db,
			prefName:      "",
			expectedError: ErrPreferenceNameEmpty,
		},
		{
			name:          "preference not found",
			dbParam:       db,
			origin:        testOrigin,
			prefName:      "quality",
			expectedError: ErrPreferenceNotFound,
		},
		{
			name:     "other origin is not visible",
			dbParam:  db,
			origin:   testOrigin,
			prefName: "quality",
			seedData: []models.Preference{
				{Origin: "https://other.local", Name: "quality", Value: "9"},
			},
			expectedError: ErrPreferenceNotFound,
		},
		{
			name:     "successful get",
			dbParam:  db,
			origin:   testOrigin,
			prefName: "quality",
			seedData: []models.Preference{
				{Origin: testOrigin, Name: "quality", Value: "9"},
			},
			expectedValue: "9",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Clean database for each test
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM preferences")
			}

			if tc.seedData != nil {
				seedPreferences(t, tc.dbParam, tc.seedData)
			}

			p, err := Get(tc.dbParam, tc.origin, tc.prefName)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, p)
			} else {
				require.NoError(t, err)
				require.NotNil(t, p)
				assert.Equal(t, tc.prefName, p.Name)
				assert.Equal(t, tc.expectedValue, p.Value)
			}
		})
	}
}

func TestGetAll(t *testing.T) {
	db := setupTestDB(t)

	_, err := GetAll(nil, testOrigin)
	require.ErrorIs(t, err, ErrDBNil)

	prefs, err := GetAll(db, testOrigin)
	require.NoError(t, err)
	assert.Empty(t, prefs)

	seedPreferences(t, db, []models.Preference{
		{Origin: testOrigin, Name: "quality", Value: "5"},
		{Origin: testOrigin, Name: "cursor", Value: "true"},
		{Origin: "https://other.local", Name: "cursor", Value: "false"},
	})

	prefs, err = GetAll(db, testOrigin)
	require.NoError(t, err)
	require.Len(t, prefs, 2)
	assert.Equal(t, "cursor", prefs[0].Name)
	assert.Equal(t, "quality", prefs[1].Name)
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)

	_, err := Create(nil, testOrigin, "quality", "5")
	require.ErrorIs(t, err, ErrDBNil)

	_, err = Create(db, testOrigin, "", "5")
	require.ErrorIs(t, err, ErrPreferenceNameEmpty)

	p, err := Create(db, testOrigin, "quality", "5")
	require.NoError(t, err)
	assert.NotZero(t, p.ID)

	_, err = Create(db, testOrigin, "quality", "9")
	require.ErrorIs(t, err, ErrPreferenceAlreadyExists)

	// same name, other origin
	_, err = Create(db, "https://other.local", "quality", "9")
	require.NoError(t, err)

	got, err := Get(db, testOrigin, "quality")
	require.NoError(t, err)
	assert.Equal(t, "5", got.Value)
}

func TestSet(t *testing.T) {
	db := setupTestDB(t)

	_, err := Set(nil, testOrigin, "quality", "5")
	require.ErrorIs(t, err, ErrDBNil)

	_, err = Set(db, testOrigin, "", "5")
	require.ErrorIs(t, err, ErrPreferenceNameEmpty)

	first, err := Set(db, testOrigin, "quality", "5")
	require.NoError(t, err)

	second, err := Set(db, testOrigin, "quality", "9")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "9", second.Value)

	var count int64
	err = db.Model(&models.Preference{}).Where("name = ?", "quality").Count(&count).Error
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)

	require.ErrorIs(t, Delete(nil, testOrigin, "quality"), ErrDBNil)
	require.ErrorIs(t, Delete(db, testOrigin, ""), ErrPreferenceNameEmpty)
	require.ErrorIs(t, Delete(db, testOrigin, "quality"), ErrPreferenceNotFound)

	seedPreferences(t, db, []models.Preference{{Origin: testOrigin, Name: "quality", Value: "5"}})

	require.NoError(t, Delete(db, testOrigin, "quality"))

	_, err := Get(db, testOrigin, "quality")
	require.ErrorIs(t, err, ErrPreferenceNotFound)
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	store := NewStore(db, testOrigin)

	var _ core.Backend = store
	var _ core.AbsentSetter = store

	_, found, err := store.Get(ctx, "quality")
	require.NoError(t, err)
	assert.False(t, found)

	written, err := store.SetIfAbsent(ctx, "quality", "9")
	require.NoError(t, err)
	assert.True(t, written)

	written, err = store.SetIfAbsent(ctx, "quality", "5")
	require.NoError(t, err)
	assert.False(t, written)

	v, found, err := store.Get(ctx, "quality")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "9", v)

	require.NoError(t, store.Set(ctx, "quality", "7"))

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"quality": "7"}, all)

	existed, err := store.Delete(ctx, "quality")
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = store.Delete(ctx, "quality")
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestStoreNilDB(t *testing.T) {
	store := NewStore(nil, testOrigin)

	_, _, err := store.Get(context.Background(), "quality")
	require.ErrorIs(t, err, ErrDBNil)

	_, err = core.Seed(context.Background(), store, testOrigin)
	require.ErrorIs(t, err, core.ErrStore)
	require.ErrorIs(t, err, ErrDBNil)
}

func TestSeedThroughStore(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	seedPreferences(t, db, []models.Preference{
		{Origin: testOrigin, Name: "language", Value: "fr"},
		{Origin: "https://other.local", Name: "quality", Value: "9"},
	})

	store := NewStore(db, testOrigin)

	report, err := core.Seed(ctx, store, testOrigin)
	require.NoError(t, err)
	assert.Equal(t, []core.Key{core.KeyLanguage}, report.Kept)
	assert.Len(t, report.Seeded, 6)

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"language": "fr", "cursor": "true", "resize": "remote", "clipboard": "true",
		"compression": "0", "quality": "5", "dotCursor": "true",
	}, all)

	// second run changes nothing
	report, err = core.Seed(ctx, store, testOrigin)
	require.NoError(t, err)
	assert.Empty(t, report.Seeded)

	var count int64
	require.NoError(t, db.Model(&models.Preference{}).Count(&count).Error)
	assert.Equal(t, int64(8), count)

	// the other origin was not seeded into
	other, err := NewStore(db, "https://other.local").All(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"quality": "9"}, other)
}
