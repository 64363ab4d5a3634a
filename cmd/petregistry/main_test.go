package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mem "pet-registry/internal/adapters/storage/memory"
	"pet-registry/internal/domain/errs"
	"pet-registry/internal/domain/microchips"
	"pet-registry/internal/domain/pets"
	"pet-registry/internal/router"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func seededServer(t *testing.T) (*httptest.Server, pets.Pet) {
	t.Helper()

	st := mem.NewStore()
	chipSvc := microchips.NewService(mem.NewMicrochipRepo(st))
	petSvc := pets.NewService(mem.NewPetRepo(st), chipSvc, pets.WithTransactor(st))

	p, err := petSvc.Create(context.Background(), pets.Pet{
		Name: "Milo", Species: "Dog", TagCode: "TAG-1",
		Microchip: &microchips.Microchip{Code: "CHIP-1", Brand: "BrandX"},
	})
	require.NoError(t, err)

	ts := httptest.NewServer(router.NewRouter(router.Options{Pets: petSvc, Microchips: chipSvc}))
	t.Cleanup(ts.Close)
	return ts, p
}

func TestCLI_RemoteQueries(t *testing.T) {
	ts, p := seededServer(t)

	out, err := runCLI(t, "--server", ts.URL, "--json", "pets", "tag", "TAG-1")
	require.NoError(t, err)

	var got petView
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, p.ID, got.ID)
	require.NotNil(t, got.Microchip)

	out, err = runCLI(t, "--server", ts.URL, "pets", "search", "dog")
	require.NoError(t, err)
	assert.Contains(t, out, "Milo")

	_, err = runCLI(t, "--server", ts.URL, "pets", "remove-chip",
		strconv.FormatInt(p.ID, 10), strconv.FormatInt(got.Microchip.ID, 10))
	require.NoError(t, err)

	out, err = runCLI(t, "--server", ts.URL, "chips", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "CHIP-1")
}

func TestCLI_RemoteNotFound(t *testing.T) {
	ts, _ := seededServer(t)

	_, err := runCLI(t, "--server", ts.URL, "pets", "get", "999")
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestCLI_LocalMemoryStore(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")

	out, err := runCLI(t, "pets", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "TAG")
	assert.Contains(t, out, "db_dsn is empty")
}

func TestCLI_LocalSQLiteFile_NoEphemeralWarning(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", filepath.Join(t.TempDir(), "registry.db"))

	out, err := runCLI(t, "chips", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "db_dsn is empty")
}

func TestCLI_InvalidID(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")

	_, err := runCLI(t, "chips", "get", "abc")
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, exitCode(nil))
	assert.Equal(t, exitUserError, exitCode(errs.Validation("bad")))
	assert.Equal(t, exitUserError, exitCode(errs.Integrity("mismatch")))
	assert.Equal(t, exitSysError, exitCode(errors.New("disk")))
}
