package base

// Record agrupa identidad + estado de borrado lógico.
// Se embebe en cada entidad (Pet, Microchip) en lugar de heredar.
type Record struct {
	// ID lo asigna el store al crear. 0 = todavía no persistido.
	ID int64

	// Deleted nunca se revierte: las filas no se borran físicamente.
	Deleted bool
}

// IsNew indica si el registro todavía no tiene ID asignado.
func (r Record) IsNew() bool {
	return r.ID == 0
}

// SameRecord compara identidad (ID), no clave de negocio.
// Dos registros sin persistir nunca son el mismo registro.
func (r Record) SameRecord(o Record) bool {
	return r.ID != 0 && r.ID == o.ID
}
