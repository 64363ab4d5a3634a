package tx

import "context"

// Transactor ejecuta fn dentro de una transacción del store.
// Los repos toman la transacción del ctx que recibe fn.
// Si fn devuelve error se hace rollback y se devuelve ese error.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// None ejecuta fn sin transacción (pasos independientes, sin atomicidad).
type None struct{}

func (None) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
