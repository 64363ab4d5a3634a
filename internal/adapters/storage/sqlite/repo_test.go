package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-registry/internal/domain/errs"
	"pet-registry/internal/domain/microchips"
	"pet-registry/internal/domain/pets"
)

type fixture struct {
	db      *DB
	petRepo *PetsRepo
	pets    *pets.Service
	chips   *microchips.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	db, err := OpenMemory(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	chipSvc := microchips.NewService(NewMicrochipsRepo(db))
	petRepo := NewPetsRepo(db)
	return fixture{
		db:      db,
		petRepo: petRepo,
		pets:    pets.NewService(petRepo, chipSvc, pets.WithTransactor(db)),
		chips:   chipSvc,
	}
}

func TestOpenMemory_IsIsolated(t *testing.T) {
	a := newFixture(t)
	b := newFixture(t)
	ctx := context.Background()

	_, err := a.pets.Create(ctx, pets.Pet{Name: "Rex", Species: "Dog", TagCode: "TAG-1"})
	require.NoError(t, err)

	items, err := b.pets.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestOpen_File(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "pets.db")

	db, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = NewMicrochipsRepo(db).Create(ctx, microchips.Microchip{Code: "CHIP-1", Brand: "BrandX"})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	items, err := NewMicrochipsRepo(db).List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestPets_RoundTripWithMicrochip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.pets.Create(ctx, pets.Pet{
		Name: "Rex", Species: "Dog", TagCode: "TAG-1",
		Microchip: &microchips.Microchip{Code: "CHIP-1", Brand: "BrandX"},
	})
	require.NoError(t, err)
	require.Positive(t, created.ID)
	require.Positive(t, created.Microchip.ID)

	got, err := f.pets.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Rex", got.Name)
	require.NotNil(t, got.Microchip)
	assert.Equal(t, created.Microchip.ID, got.Microchip.ID)
	assert.Equal(t, "BrandX", got.Microchip.Brand)
}

func TestPets_ChipScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	chip, err := f.chips.Create(ctx, microchips.Microchip{Code: "CHIP-1", Brand: "BrandX"})
	require.NoError(t, err)

	p, err := f.pets.Create(ctx, pets.Pet{Name: "Rex", Species: "Dog", TagCode: "TAG-1", Microchip: &chip})
	require.NoError(t, err)

	// chip ajeno: nada cambia
	err = f.pets.SafelyRemoveMicrochip(ctx, p.ID, chip.ID+100)
	assert.ErrorIs(t, err, errs.ErrIntegrity)

	got, err := f.pets.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Microchip)

	require.NoError(t, f.pets.SafelyRemoveMicrochip(ctx, p.ID, chip.ID))

	got, err = f.pets.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Microchip)

	gone, err := f.chips.GetByID(ctx, chip.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestPets_DuplicateTag_BothLayersAgree(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.pets.Create(ctx, pets.Pet{Name: "Rex", Species: "Dog", TagCode: "TAG-1"})
	require.NoError(t, err)

	_, svcErr := f.pets.Create(ctx, pets.Pet{Name: "Fido", Species: "Dog", TagCode: "TAG-1"})
	_, repoErr := f.petRepo.Create(ctx, pets.Pet{Name: "Fido", Species: "Dog", TagCode: "TAG-1"})

	for _, err := range []error{svcErr, repoErr} {
		assert.ErrorIs(t, err, errs.ErrValidation)
		assert.ErrorIs(t, err, pets.ErrDuplicateTag)
	}
}

func TestPets_DeletedTagCanBeReused(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.pets.Create(ctx, pets.Pet{Name: "Rex", Species: "Dog", TagCode: "TAG-1"})
	require.NoError(t, err)
	require.NoError(t, f.pets.Delete(ctx, p.ID))

	// el borrado es idempotente
	require.NoError(t, f.pets.Delete(ctx, p.ID))

	_, err = f.pets.Create(ctx, pets.Pet{Name: "Fido", Species: "Dog", TagCode: "TAG-1"})
	assert.NoError(t, err)

	gone, err := f.pets.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestPets_UnsafeChipDelete_ReferenceStaysVisible(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.pets.Create(ctx, pets.Pet{
		Name: "Rex", Species: "Dog", TagCode: "TAG-1",
		Microchip: &microchips.Microchip{Code: "CHIP-1", Brand: "BrandX"},
	})
	require.NoError(t, err)

	require.NoError(t, f.chips.Delete(ctx, p.Microchip.ID))

	got, err := f.pets.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Microchip)
	assert.True(t, got.Microchip.Deleted)
}

func TestPets_Search(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, p := range []pets.Pet{
		{Name: "Rex", Species: "Dog", TagCode: "T1"},
		{Name: "Tom", Species: "Cat", TagCode: "T2"},
		{Name: "100%_Kitty", Species: "Cat", TagCode: "T3"},
	} {
		_, err := f.pets.Create(ctx, p)
		require.NoError(t, err)
	}

	got, err := f.pets.SearchByNameOrSpecies(ctx, "CAT")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = f.pets.SearchByNameOrSpecies(ctx, "%_")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "T3", got[0].TagCode)
}

func TestPets_Search_FoldsNonASCII(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.pets.Create(ctx, pets.Pet{Name: "Ñata", Species: "Perro", TagCode: "T1"})
	require.NoError(t, err)
	_, err = f.pets.Create(ctx, pets.Pet{Name: "Rex", Species: "ÉMU", TagCode: "T2"})
	require.NoError(t, err)

	got, err := f.pets.SearchByNameOrSpecies(ctx, "ñata")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "T1", got[0].TagCode)

	got, err = f.pets.SearchByNameOrSpecies(ctx, "ému")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "T2", got[0].TagCode)
}

func TestPets_Update_KeepsOwnTag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.pets.Create(ctx, pets.Pet{Name: "Rex", Species: "Dog", TagCode: "TAG-1"})
	require.NoError(t, err)

	p.Name = "Rex II"
	p.Microchip = &microchips.Microchip{Code: "CHIP-9", Brand: "BrandY"}
	updated, err := f.pets.Update(ctx, p)
	require.NoError(t, err)
	require.Positive(t, updated.Microchip.ID)

	got, err := f.pets.FindByExactTag(ctx, "TAG-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Rex II", got.Name)
	assert.Equal(t, updated.Microchip.ID, got.Microchip.ID)
}

func TestWithinTx_RollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := NewMicrochipsRepo(f.db)

	boom := errs.Validation("boom")
	err := f.db.WithinTx(ctx, func(ctx context.Context) error {
		_, err := repo.Create(ctx, microchips.Microchip{Code: "CHIP-1", Brand: "BrandX"})
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPets_ForeignKeyEnforced(t *testing.T) {
	f := newFixture(t)

	p := pets.Pet{Name: "Rex", Species: "Dog", TagCode: "TAG-1", Microchip: &microchips.Microchip{}}
	p.Microchip.ID = 404
	_, err := f.petRepo.Create(context.Background(), p)
	assert.ErrorIs(t, err, errs.ErrStorage)
}
