package pets

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"

	"pet-registry/internal/domain/errs"
	"pet-registry/internal/domain/microchips"
	"pet-registry/internal/platform/logger"
	"pet-registry/internal/platform/tracing"
	"pet-registry/internal/platform/validation"
	"pet-registry/internal/ports/tx"
)

var tracer = otel.Tracer("pet-registry/internal/domain/pets")

// MicrochipCoordinator es lo que este servicio necesita del servicio de microchips.
type MicrochipCoordinator interface {
	Create(ctx context.Context, m microchips.Microchip) (microchips.Microchip, error)
	Update(ctx context.Context, m microchips.Microchip) (microchips.Microchip, error)
	Delete(ctx context.Context, id int64) error
}

// Service valida mascotas, garantiza unicidad del tag y coordina
// el ciclo de vida del microchip asociado.
type Service struct {
	repo     Repository
	chips    MicrochipCoordinator
	tx       tx.Transactor
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

// WithTransactor hace atómicos los flujos de varios pasos (create/update/safe remove).
// Sin transactor los pasos se ejecutan uno tras otro sin atomicidad.
func WithTransactor(t tx.Transactor) Option {
	return func(s *Service) {
		if t != nil {
			s.tx = t
		}
	}
}

func NewService(repo Repository, chips MicrochipCoordinator, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		chips:    chips,
		tx:       tx.None{},
		validate: validation.New(),
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(map[string]any{"component": "pets"})
	return s
}

// Create inserta la mascota. Si trae microchip nuevo (ID 0) se inserta primero para
// obtener su ID; si trae uno existente se actualizan sus datos.
func (s *Service) Create(ctx context.Context, p Pet) (_ Pet, err error) {
	ctx, span := tracer.Start(ctx, "pets.Create")
	defer func() { tracing.Finish(span, err) }()

	p = normalize(p)
	if err := s.validate.Struct(p); err != nil {
		return Pet{}, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.ensureUniqueTag(ctx, p.TagCode, 0); err != nil {
			return err
		}
		if err := s.syncMicrochip(ctx, &p, true); err != nil {
			return err
		}

		id, err := s.repo.Create(ctx, p)
		if err != nil {
			return errs.Storage("create pet", err)
		}
		p.ID = id
		return nil
	})
	if err != nil {
		return Pet{}, err
	}
	p.Deleted = false

	chipID, _ := p.MicrochipID()
	s.log.Info("pet created", map[string]any{"pet_id": p.ID, "tag_code": p.TagCode, "microchip_id": chipID})
	return p, nil
}

// Update persiste la mascota. El chequeo de unicidad excluye su propio ID
// (puede conservar el tag que ya tenía).
func (s *Service) Update(ctx context.Context, p Pet) (_ Pet, err error) {
	ctx, span := tracer.Start(ctx, "pets.Update")
	defer func() { tracing.Finish(span, err) }()

	p = normalize(p)
	if err := s.validate.Struct(p); err != nil {
		return Pet{}, err
	}
	if p.ID <= 0 {
		return Pet{}, errs.Validation("pet id must be greater than 0 to update")
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.ensureUniqueTag(ctx, p.TagCode, p.ID); err != nil {
			return err
		}
		// un microchip nuevo se crea antes para no persistir una referencia a ID 0
		if err := s.syncMicrochip(ctx, &p, false); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, p); err != nil {
			return errs.Storage("update pet", err)
		}
		return nil
	})
	if err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Delete es borrado lógico de la mascota únicamente.
// El microchip queda intacto (puede estar compartido o guardarse como historial).
func (s *Service) Delete(ctx context.Context, id int64) (err error) {
	ctx, span := tracer.Start(ctx, "pets.Delete")
	defer func() { tracing.Finish(span, err) }()

	if id <= 0 {
		return errs.Validation("pet id must be greater than 0")
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return errs.Storage("delete pet", err)
	}

	s.log.Info("pet soft-deleted", map[string]any{"pet_id": id})
	return nil
}

// GetByID devuelve nil si no existe.
func (s *Service) GetByID(ctx context.Context, id int64) (_ *Pet, err error) {
	ctx, span := tracer.Start(ctx, "pets.GetByID")
	defer func() { tracing.Finish(span, err) }()

	if id <= 0 {
		return nil, errs.Validation("pet id must be greater than 0")
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Storage("get pet", err)
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) (_ []Pet, err error) {
	ctx, span := tracer.Start(ctx, "pets.List")
	defer func() { tracing.Finish(span, err) }()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, errs.Storage("list pets", err)
	}
	return nonNil(items), nil
}

func (s *Service) SearchByNameOrSpecies(ctx context.Context, filter string) (_ []Pet, err error) {
	ctx, span := tracer.Start(ctx, "pets.SearchByNameOrSpecies")
	defer func() { tracing.Finish(span, err) }()

	filter = strings.TrimSpace(filter)
	if filter == "" {
		return nil, errs.Validation("search filter must not be empty")
	}

	items, err := s.repo.SearchByNameOrSpecies(ctx, filter)
	if err != nil {
		return nil, errs.Storage("search pets", err)
	}
	return nonNil(items), nil
}

// FindByExactTag devuelve nil si ninguna mascota activa tiene ese tag.
func (s *Service) FindByExactTag(ctx context.Context, tag string) (_ *Pet, err error) {
	ctx, span := tracer.Start(ctx, "pets.FindByExactTag")
	defer func() { tracing.Finish(span, err) }()

	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, errs.Validation("tag code must not be empty")
	}

	p, err := s.repo.FindByExactTag(ctx, tag)
	if err != nil {
		return nil, errs.Storage("find pet by tag", err)
	}
	return p, nil
}

// SafelyRemoveMicrochip desasocia el microchip de la mascota y recién después lo borra.
// El orden importa: nunca puede quedar una mascota apuntando a un microchip borrado.
func (s *Service) SafelyRemoveMicrochip(ctx context.Context, petID, microchipID int64) (err error) {
	ctx, span := tracer.Start(ctx, "pets.SafelyRemoveMicrochip")
	defer func() { tracing.Finish(span, err) }()

	if petID <= 0 || microchipID <= 0 {
		return errs.Validation("pet id and microchip id must be greater than 0")
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetByID(ctx, petID)
		if err != nil {
			return errs.Storage("get pet", err)
		}
		if p == nil {
			return errs.Validation("pet %d not found", petID)
		}

		current, ok := p.MicrochipID()
		if !ok || current != microchipID {
			return errs.Integrity("microchip %d does not belong to pet %d", microchipID, petID)
		}

		// 1) desasociar
		p.Microchip = nil
		if err := s.repo.Update(ctx, *p); err != nil {
			return errs.Storage("detach microchip", err)
		}

		// 2) borrar el microchip (ya no lo referencia esta mascota)
		return s.chips.Delete(ctx, microchipID)
	})
	if err != nil {
		return err
	}

	s.log.Info("microchip detached and deleted", map[string]any{"pet_id": petID, "microchip_id": microchipID})
	return nil
}

func (s *Service) ensureUniqueTag(ctx context.Context, tag string, excludeID int64) error {
	existing, err := s.repo.FindByExactTag(ctx, tag)
	if err != nil {
		return errs.Storage("check tag uniqueness", err)
	}
	if existing != nil && (excludeID == 0 || existing.ID != excludeID) {
		return errs.ValidationCause(ErrDuplicateTag, "tag %q already in use by pet %d", tag, existing.ID)
	}
	return nil
}

// syncMicrochip crea el microchip si es nuevo. Si ya existe y updateExisting,
// actualiza sus datos. Deja en p el microchip con su ID definitivo.
func (s *Service) syncMicrochip(ctx context.Context, p *Pet, updateExisting bool) error {
	if p.Microchip == nil {
		return nil
	}

	var (
		m   microchips.Microchip
		err error
	)
	switch {
	case p.Microchip.IsNew():
		m, err = s.chips.Create(ctx, *p.Microchip)
	case updateExisting:
		m, err = s.chips.Update(ctx, *p.Microchip)
	default:
		return nil
	}
	if err != nil {
		return err
	}

	p.Microchip = &m
	return nil
}

func nonNil(items []Pet) []Pet {
	if items == nil {
		return []Pet{}
	}
	return items
}
