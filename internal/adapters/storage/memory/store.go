package memory

import (
	"context"
	"sync"

	"pet-registry/internal/domain/microchips"
)

// Store guarda ambas tablas bajo un mismo lock para poder resolver
// el microchip de cada mascota (equivalente al LEFT JOIN) y hacer snapshot/rollback.
type Store struct {
	mu sync.RWMutex

	// txMu serializa transacciones y escrituras fuera de ellas: un rollback
	// nunca pisa una escritura ajena ya confirmada.
	txMu sync.Mutex

	nextPetID  int64
	nextChipID int64

	pets  map[int64]petRow
	chips map[int64]microchips.Microchip
}

// petRow es la fila tal cual se guarda: el microchip solo como ID (FK nullable).
type petRow struct {
	ID      int64
	Name    string
	Species string
	TagCode string
	ChipID  *int64
	Deleted bool
}

func NewStore() *Store {
	return &Store{
		pets:  make(map[int64]petRow),
		chips: make(map[int64]microchips.Microchip),
	}
}

type txKey struct{}

// WithinTx toma un snapshot y lo restaura si fn falla.
// Mientras fn corre, las escrituras fuera de la transacción esperan.
// Las lecturas no esperan: pueden ver cambios aún no confirmados.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snap := s.snapshot()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.restore(snap)
		s.mu.Unlock()
		return err
	}
	return nil
}

// writeGate bloquea una escritura suelta hasta que termine la transacción en curso.
// Dentro de una transacción no bloquea (ya tiene el turno).
func (s *Store) writeGate(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.txMu.Lock()
	return s.txMu.Unlock
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

type snapshot struct {
	nextPetID  int64
	nextChipID int64
	pets       map[int64]petRow
	chips      map[int64]microchips.Microchip
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		nextPetID:  s.nextPetID,
		nextChipID: s.nextChipID,
		pets:       make(map[int64]petRow, len(s.pets)),
		chips:      make(map[int64]microchips.Microchip, len(s.chips)),
	}
	for k, v := range s.pets {
		snap.pets[k] = v
	}
	for k, v := range s.chips {
		snap.chips[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.nextPetID = snap.nextPetID
	s.nextChipID = snap.nextChipID
	s.pets = snap.pets
	s.chips = snap.chips
}
