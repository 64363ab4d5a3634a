package microchips

import (
	"context"

	"go.opentelemetry.io/otel"

	"pet-registry/internal/domain/errs"
	"pet-registry/internal/platform/logger"
	"pet-registry/internal/platform/tracing"
	"pet-registry/internal/platform/validation"
)

var tracer = otel.Tracer("pet-registry/internal/domain/microchips")

// Service valida y persiste microchips en forma aislada.
type Service struct {
	repo     Repository
	validate *validation.Validator
	log      logger.Logger
}

type Option func(*Service)

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		validate: validation.New(),
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(map[string]any{"component": "microchips"})
	return s
}

// Create valida e inserta; el ID lo asigna el store.
func (s *Service) Create(ctx context.Context, m Microchip) (_ Microchip, err error) {
	ctx, span := tracer.Start(ctx, "microchips.Create")
	defer func() { tracing.Finish(span, err) }()

	m = normalize(m)
	if err := s.validate.Struct(m); err != nil {
		return Microchip{}, err
	}

	id, err := s.repo.Create(ctx, m)
	if err != nil {
		return Microchip{}, errs.Storage("create microchip", err)
	}
	m.ID = id
	m.Deleted = false

	s.log.Info("microchip created", map[string]any{"microchip_id": id, "code": m.Code})
	return m, nil
}

func (s *Service) Update(ctx context.Context, m Microchip) (_ Microchip, err error) {
	ctx, span := tracer.Start(ctx, "microchips.Update")
	defer func() { tracing.Finish(span, err) }()

	m = normalize(m)
	if err := s.validate.Struct(m); err != nil {
		return Microchip{}, err
	}
	if m.ID <= 0 {
		return Microchip{}, errs.Validation("microchip id must be greater than 0 to update")
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return Microchip{}, errs.Storage("update microchip", err)
	}
	return m, nil
}

// Delete hace el borrado lógico SIN verificar si hay mascotas que lo referencian.
// Para desasociar y borrar sin dejar referencias usar pets.Service.SafelyRemoveMicrochip.
func (s *Service) Delete(ctx context.Context, id int64) (err error) {
	ctx, span := tracer.Start(ctx, "microchips.Delete")
	defer func() { tracing.Finish(span, err) }()

	if id <= 0 {
		return errs.Validation("microchip id must be greater than 0")
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return errs.Storage("delete microchip", err)
	}

	s.log.Warn("microchip soft-deleted without reference check", map[string]any{"microchip_id": id})
	return nil
}

// GetByID devuelve nil si no existe (o está borrado).
func (s *Service) GetByID(ctx context.Context, id int64) (_ *Microchip, err error) {
	ctx, span := tracer.Start(ctx, "microchips.GetByID")
	defer func() { tracing.Finish(span, err) }()

	if id <= 0 {
		return nil, errs.Validation("microchip id must be greater than 0")
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Storage("get microchip", err)
	}
	return m, nil
}

func (s *Service) List(ctx context.Context) (_ []Microchip, err error) {
	ctx, span := tracer.Start(ctx, "microchips.List")
	defer func() { tracing.Finish(span, err) }()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, errs.Storage("list microchips", err)
	}
	if items == nil {
		items = []Microchip{}
	}
	return items, nil
}
