package services

import (
	"testing"

	"github.com/brightdude/GreenDotPortfolioDemo-sub000/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStoreTestDB(t *testing.T) *Store {
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	assert.NoError(t, err)
	assert.NoError(t, database.AutoMigrate(&models.Location{}, &models.Facility{}))
	return NewStore(database)
}

func TestStoreGetByIDMiss(t *testing.T) {
	store := setupStoreTestDB(t)

	location, err := GetByID[models.Location](store, "nope")
	assert.NoError(t, err)
	assert.Nil(t, location)
}

func TestStoreCreateAndGet(t *testing.T) {
	store := setupStoreTestDB(t)

	created, err := Create(store, &models.Location{
		ID: "c1", Name: "USA", Type: models.TypeCountry, Status: models.StatusActive,
	})
	assert.NoError(t, err)
	assert.Equal(t, "c1", created.ID)

	found, err := GetByID[models.Location](store, "c1")
	assert.NoError(t, err)
	assert.NotNil(t, found)
	assert.Equal(t, "USA", found.Name)
}

func TestStoreCreateGeneratesID(t *testing.T) {
	store := setupStoreTestDB(t)

	created, err := Create(store, &models.Location{
		Name: "USA", Type: models.TypeCountry, Status: models.StatusActive,
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
}

func TestStoreCreateDuplicateIsPermanent(t *testing.T) {
	store := setupStoreTestDB(t)

	_, err := Create(store, &models.Location{ID: "c1", Name: "USA", Type: models.TypeCountry})
	assert.NoError(t, err)

	// A duplicated key must fail immediately, not exhaust the retry budget
	_, err = Create(store, &models.Location{ID: "c1", Name: "Again", Type: models.TypeCountry})
	assert.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestStoreUpsertReplacesDocument(t *testing.T) {
	store := setupStoreTestDB(t)

	_, err := Create(store, &models.Location{ID: "c1", Name: "USA", Type: models.TypeCountry, Status: models.StatusActive})
	assert.NoError(t, err)

	_, err = Upsert(store, &models.Location{ID: "c1", Name: "United States", Type: models.TypeCountry, Status: models.StatusActive})
	assert.NoError(t, err)

	found, err := GetByID[models.Location](store, "c1")
	assert.NoError(t, err)
	assert.Equal(t, "United States", found.Name)

	all, err := GetList[models.Location](store, "type = ?", models.TypeCountry)
	assert.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestStoreGetOneAndList(t *testing.T) {
	store := setupStoreTestDB(t)

	for _, name := range []string{"Alpha", "Beta"} {
		_, err := Create(store, &models.Location{Name: name, Type: models.TypeCountry, Status: models.StatusActive})
		assert.NoError(t, err)
	}

	one, err := GetOne[models.Location](store, "name = ?", "Alpha")
	assert.NoError(t, err)
	assert.NotNil(t, one)

	missing, err := GetOne[models.Location](store, "name = ?", "Gamma")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	list, err := GetList[models.Location](store, "type = ?", models.TypeCountry)
	assert.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestStoreDelete(t *testing.T) {
	store := setupStoreTestDB(t)

	_, err := Create(store, &models.Facility{ID: "f1", DisplayName: "Courtroom 1"})
	assert.NoError(t, err)

	deleted, err := Delete[models.Facility](store, "f1")
	assert.NoError(t, err)
	assert.NotNil(t, deleted)
	assert.Equal(t, "Courtroom 1", deleted.DisplayName)

	gone, err := GetByID[models.Facility](store, "f1")
	assert.NoError(t, err)
	assert.Nil(t, gone)

	// Deleting a missing document is a miss, not an error
	again, err := Delete[models.Facility](store, "f1")
	assert.NoError(t, err)
	assert.Nil(t, again)
}
