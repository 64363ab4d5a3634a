package pets

import "context"

// Repository es el gateway de persistencia de mascotas.
// Las lecturas excluyen borradas y resuelven el microchip en la misma consulta.
type Repository interface {
	// Create inserta y devuelve el ID generado. Guarda el ID del microchip o NULL.
	Create(ctx context.Context, p Pet) (int64, error)
	Update(ctx context.Context, p Pet) error
	SoftDelete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*Pet, error)
	List(ctx context.Context) ([]Pet, error)
	// SearchByNameOrSpecies: substring case-insensitive sobre nombre o especie.
	SearchByNameOrSpecies(ctx context.Context, filter string) ([]Pet, error)
	FindByExactTag(ctx context.Context, tag string) (*Pet, error)
}
