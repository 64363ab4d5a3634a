package microchips

import "context"

// Repository es el gateway de persistencia de microchips.
// Todas las lecturas excluyen filas con deleted = true.
type Repository interface {
	// Create inserta y devuelve el ID generado por el store.
	Create(ctx context.Context, m Microchip) (int64, error)
	// Update devuelve errs.ErrNotFound si no afectó filas.
	Update(ctx context.Context, m Microchip) error
	// SoftDelete marca deleted = true. errs.ErrNotFound si el ID no existe.
	SoftDelete(ctx context.Context, id int64) error
	// GetByID devuelve nil (sin error) si no existe o está borrado.
	GetByID(ctx context.Context, id int64) (*Microchip, error)
	List(ctx context.Context) ([]Microchip, error)
}
