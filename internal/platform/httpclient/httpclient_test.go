package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-registry/internal/domain/errs"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	c, err := New(ts.URL, 0)
	require.NoError(t, err)
	return c
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := New("not a url", 0)
	assert.Error(t, err)
}

func TestListPets_SendsQueryAndDecodes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pets", r.URL.Path)
		assert.Equal(t, "rex dog", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"Rex","species":"Dog","tag_code":"T1","microchip":{"id":7,"code":"C","brand":"B"}}]`))
	})

	items, err := c.ListPets(context.Background(), "rex dog")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "T1", items[0].TagCode)
	require.NotNil(t, items[0].Microchip)
	assert.Equal(t, int64(7), items[0].Microchip.ID)
}

func TestGetPet_NotFoundIsNil(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"pet not found","code":"NOT_FOUND"}`))
	})

	p, err := c.GetPet(context.Background(), 9)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestSafelyRemoveMicrochip_MapsIntegrity(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/pets/1/microchip/8", r.URL.Path)
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"microchip 8 does not belong to pet 1","code":"INTEGRITY"}`))
	})

	err := c.SafelyRemoveMicrochip(context.Background(), 1, 8)
	assert.ErrorIs(t, err, errs.ErrIntegrity)
	assert.ErrorContains(t, err, "does not belong")
}

func TestDoJSON_UnknownErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := c.DoJSON(context.Background(), http.MethodGet, "/microchips", nil, nil)
	assert.ErrorIs(t, err, errs.ErrStorage)
	assert.ErrorContains(t, err, "502")
}
