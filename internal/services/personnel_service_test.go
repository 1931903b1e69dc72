package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hld/work-schedule-api/internal/models"
	"github.com/hld/work-schedule-api/internal/repository"
)

func newPersonnelService(t *testing.T) *PersonnelService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Personnel{}))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		sqlDB.Close()
	})

	return NewPersonnelService(repository.NewPersonnelRepository(db), nil)
}

func TestPersonnelCreate(t *testing.T) {
	service := newPersonnelService(t)

	person, err := service.Create("  Alice  ", 1)
	require.NoError(t, err)
	require.Equal(t, "Alice", person.Name, "names are stored trimmed")

	_, err = service.Create("Alice", 1)
	require.ErrorIs(t, err, ErrPersonnelExists)

	_, err = service.Create("   ", 1)
	require.ErrorIs(t, err, ErrPersonnelNameRequired)
}

func TestPersonnelListOrderedByName(t *testing.T) {
	service := newPersonnelService(t)

	for _, name := range []string{"Charlie", "Alice", "Bob"} {
		_, err := service.Create(name, 1)
		require.NoError(t, err)
	}

	personnel, err := service.List()
	require.NoError(t, err)
	require.Len(t, personnel, 3)
	require.Equal(t, "Alice", personnel[0].Name)
	require.Equal(t, "Bob", personnel[1].Name)
	require.Equal(t, "Charlie", personnel[2].Name)
}

func TestPersonnelDelete(t *testing.T) {
	service := newPersonnelService(t)

	person, err := service.Create("Alice", 1)
	require.NoError(t, err)

	require.NoError(t, service.Delete(person.ID, 1))
	require.ErrorIs(t, service.Delete(person.ID, 1), ErrPersonnelNotFound)

	personnel, err := service.List()
	require.NoError(t, err)
	require.Empty(t, personnel)
}
