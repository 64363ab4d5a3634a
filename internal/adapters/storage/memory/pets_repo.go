package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"pet-registry/internal/domain/errs"
	"pet-registry/internal/domain/pets"
)

var ErrForeignKey = errors.New("microchip reference does not exist")

type petRepo struct {
	s *Store
}

func NewPetRepo(s *Store) pets.Repository {
	return &petRepo{s: s}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) (int64, error) {
	defer r.s.writeGate(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row := toRow(p)
	if err := r.checkConstraints(row); err != nil {
		return 0, err
	}

	r.s.nextPetID++
	row.ID = r.s.nextPetID
	row.Deleted = false
	r.s.pets[row.ID] = row
	return row.ID, nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	defer r.s.writeGate(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.pets[p.ID]
	if !ok || cur.Deleted {
		return errs.NotFound("pet %d not found", p.ID)
	}

	row := toRow(p)
	if err := r.checkConstraints(row); err != nil {
		return err
	}
	row.Deleted = cur.Deleted
	r.s.pets[p.ID] = row
	return nil
}

// SoftDelete es idempotente sobre una fila ya borrada (igual que el UPDATE de SQL).
func (r *petRepo) SoftDelete(ctx context.Context, id int64) error {
	defer r.s.writeGate(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.pets[id]
	if !ok {
		return errs.NotFound("pet %d not found", id)
	}
	row.Deleted = true
	r.s.pets[id] = row
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id int64) (*pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.pets[id]
	if !ok || row.Deleted {
		return nil, nil
	}
	p := r.load(row)
	return &p, nil
}

func (r *petRepo) List(ctx context.Context) ([]pets.Pet, error) {
	return r.filter(func(petRow) bool { return true }), nil
}

func (r *petRepo) SearchByNameOrSpecies(ctx context.Context, filter string) ([]pets.Pet, error) {
	f := strings.ToLower(filter)
	return r.filter(func(row petRow) bool {
		return strings.Contains(strings.ToLower(row.Name), f) ||
			strings.Contains(strings.ToLower(row.Species), f)
	}), nil
}

func (r *petRepo) FindByExactTag(ctx context.Context, tag string) (*pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, row := range r.s.pets {
		if !row.Deleted && row.TagCode == tag {
			p := r.load(row)
			return &p, nil
		}
	}
	return nil, nil
}

func (r *petRepo) filter(keep func(petRow) bool) []pets.Pet {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, row := range r.s.pets {
		if row.Deleted || !keep(row) {
			continue
		}
		out = append(out, r.load(row))
	}

	// Orden estable por id (igual que ORDER BY p.id en SQL)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// checkConstraints replica el índice único parcial sobre tag y la FK a microchips.
// Debe llamarse con el lock tomado.
func (r *petRepo) checkConstraints(row petRow) error {
	for id, other := range r.s.pets {
		if id != row.ID && !other.Deleted && other.TagCode == row.TagCode {
			return errs.ValidationCause(pets.ErrDuplicateTag, "tag %q already in use", row.TagCode)
		}
	}
	if row.ChipID != nil {
		if _, ok := r.s.chips[*row.ChipID]; !ok {
			return errs.Storage("check microchip reference", ErrForeignKey)
		}
	}
	return nil
}

// load arma la mascota con su microchip (aunque esté borrado, para que se vea la referencia).
// Debe llamarse con el lock tomado.
func (r *petRepo) load(row petRow) pets.Pet {
	p := pets.Pet{
		Name:    row.Name,
		Species: row.Species,
		TagCode: row.TagCode,
	}
	p.ID = row.ID
	p.Deleted = row.Deleted

	if row.ChipID != nil {
		m, ok := r.s.chips[*row.ChipID]
		if !ok {
			m.ID = *row.ChipID
		}
		p.Microchip = &m
	}
	return p
}

func toRow(p pets.Pet) petRow {
	row := petRow{
		ID:      p.ID,
		Name:    p.Name,
		Species: p.Species,
		TagCode: p.TagCode,
	}
	if id, ok := p.MicrochipID(); ok {
		row.ChipID = &id
	}
	return row
}
