package memory

import (
	"context"
	"sort"

	"pet-registry/internal/domain/errs"
	"pet-registry/internal/domain/microchips"
)

type microchipRepo struct {
	s *Store
}

func NewMicrochipRepo(s *Store) microchips.Repository {
	return &microchipRepo{s: s}
}

func (r *microchipRepo) Create(ctx context.Context, m microchips.Microchip) (int64, error) {
	defer r.s.writeGate(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextChipID++
	m.ID = r.s.nextChipID
	m.Deleted = false
	r.s.chips[m.ID] = m
	return m.ID, nil
}

func (r *microchipRepo) Update(ctx context.Context, m microchips.Microchip) error {
	defer r.s.writeGate(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.chips[m.ID]
	if !ok || cur.Deleted {
		return errs.NotFound("microchip %d not found", m.ID)
	}
	m.Deleted = cur.Deleted
	r.s.chips[m.ID] = m
	return nil
}

func (r *microchipRepo) SoftDelete(ctx context.Context, id int64) error {
	defer r.s.writeGate(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.chips[id]
	if !ok {
		return errs.NotFound("microchip %d not found", id)
	}
	m.Deleted = true
	r.s.chips[id] = m
	return nil
}

func (r *microchipRepo) GetByID(ctx context.Context, id int64) (*microchips.Microchip, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.chips[id]
	if !ok || m.Deleted {
		return nil, nil
	}
	return &m, nil
}

func (r *microchipRepo) List(ctx context.Context) ([]microchips.Microchip, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]microchips.Microchip, 0)
	for _, m := range r.s.chips {
		if !m.Deleted {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
