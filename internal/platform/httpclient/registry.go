package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"pet-registry/internal/domain/errs"
	"pet-registry/internal/domain/microchips"
	"pet-registry/internal/domain/pets"
)

type microchipDTO struct {
	ID      int64  `json:"id"`
	Code    string `json:"code"`
	Brand   string `json:"brand"`
	Deleted bool   `json:"deleted,omitempty"`
}

type petDTO struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Species   string        `json:"species"`
	TagCode   string        `json:"tag_code"`
	Microchip *microchipDTO `json:"microchip"`
}

func (d microchipDTO) toDomain() microchips.Microchip {
	m := microchips.Microchip{Code: d.Code, Brand: d.Brand}
	m.ID = d.ID
	m.Deleted = d.Deleted
	return m
}

func (d petDTO) toDomain() pets.Pet {
	p := pets.Pet{Name: d.Name, Species: d.Species, TagCode: d.TagCode}
	p.ID = d.ID
	if d.Microchip != nil {
		m := d.Microchip.toDomain()
		p.Microchip = &m
	}
	return p
}

// ListPets lista mascotas activas; con query no vacío busca por nombre o especie.
func (c *Client) ListPets(ctx context.Context, query string) ([]pets.Pet, error) {
	path := "/pets"
	if query != "" {
		path += "?q=" + url.QueryEscape(query)
	}

	var out []petDTO
	if err := c.DoJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	items := make([]pets.Pet, 0, len(out))
	for _, d := range out {
		items = append(items, d.toDomain())
	}
	return items, nil
}

// GetPet devuelve nil si la API responde 404.
func (c *Client) GetPet(ctx context.Context, id int64) (*pets.Pet, error) {
	return c.onePet(ctx, fmt.Sprintf("/pets/%d", id))
}

func (c *Client) FindPetByTag(ctx context.Context, tag string) (*pets.Pet, error) {
	return c.onePet(ctx, "/pets/by-tag/"+url.PathEscape(tag))
}

func (c *Client) SafelyRemoveMicrochip(ctx context.Context, petID, microchipID int64) error {
	return c.DoJSON(ctx, http.MethodDelete, fmt.Sprintf("/pets/%d/microchip/%d", petID, microchipID), nil, nil)
}

func (c *Client) ListMicrochips(ctx context.Context) ([]microchips.Microchip, error) {
	var out []microchipDTO
	if err := c.DoJSON(ctx, http.MethodGet, "/microchips", nil, &out); err != nil {
		return nil, err
	}

	items := make([]microchips.Microchip, 0, len(out))
	for _, d := range out {
		items = append(items, d.toDomain())
	}
	return items, nil
}

// GetMicrochip devuelve nil si la API responde 404.
func (c *Client) GetMicrochip(ctx context.Context, id int64) (*microchips.Microchip, error) {
	var out microchipDTO
	err := c.DoJSON(ctx, http.MethodGet, fmt.Sprintf("/microchips/%d", id), nil, &out)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m := out.toDomain()
	return &m, nil
}

func (c *Client) onePet(ctx context.Context, path string) (*pets.Pet, error) {
	var out petDTO
	err := c.DoJSON(ctx, http.MethodGet, path, nil, &out)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p := out.toDomain()
	return &p, nil
}
