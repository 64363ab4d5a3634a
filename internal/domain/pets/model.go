package pets

import (
	"errors"
	"strings"

	"pet-registry/internal/domain/base"
	"pet-registry/internal/domain/microchips"
)

// ErrDuplicateTag es la causa de los errores de validación por tag repetido
// (lo devuelve tanto el chequeo del servicio como el constraint del store).
var ErrDuplicateTag = errors.New("duplicate tag code")

// Pet representa una mascota registrada.
// TagCode es el identificador externo estable (tipo "licencia"), único entre mascotas no borradas.
type Pet struct {
	base.Record

	Name    string `field:"name" validate:"required"`
	Species string `field:"species" validate:"required"`
	TagCode string `field:"tag_code" validate:"required"`

	// Microchip asociado (opcional). nil = sin microchip.
	// Se carga eager en todas las lecturas. Lo valida el servicio de microchips.
	Microchip *microchips.Microchip `validate:"-"`
}

// SameTag compara por clave de negocio (tag), sin importar el ID.
func (p Pet) SameTag(o Pet) bool {
	return p.TagCode != "" && p.TagCode == o.TagCode
}

// MicrochipID devuelve el ID del microchip referenciado, si hay.
func (p Pet) MicrochipID() (int64, bool) {
	if p.Microchip == nil || p.Microchip.ID <= 0 {
		return 0, false
	}
	return p.Microchip.ID, true
}

func normalize(p Pet) Pet {
	p.Name = strings.TrimSpace(p.Name)
	p.Species = strings.TrimSpace(p.Species)
	p.TagCode = strings.TrimSpace(p.TagCode)
	return p
}
