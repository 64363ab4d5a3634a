package microchips

import (
	"strings"

	"pet-registry/internal/domain/base"
)

// Microchip representa un chip de identificación emitido por un fabricante.
// No sabe nada de mascotas: la relación vive del lado de Pet.
type Microchip struct {
	base.Record

	Code  string `field:"code" validate:"required"`  // código del fabricante
	Brand string `field:"brand" validate:"required"` // marca
}

// SameCode compara por clave de negocio (código de chip), no por ID.
// Sirve para detectar el mismo código cargado en filas distintas.
func (m Microchip) SameCode(o Microchip) bool {
	return m.Code != "" && m.Code == o.Code
}

func normalize(m Microchip) Microchip {
	m.Code = strings.TrimSpace(m.Code)
	m.Brand = strings.TrimSpace(m.Brand)
	return m
}
