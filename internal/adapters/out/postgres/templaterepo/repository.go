package templaterepo

import (
	"context"
	"errors"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/core/domain/model/workflow"
	"transtrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTemplateRepository implements TemplateRepository using GORM.
type GormTemplateRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTemplateRepository creates a new GORM template repository.
func NewGormTemplateRepository(db *gorm.DB, tracker aggregateTracker) *GormTemplateRepository {
	return &GormTemplateRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new template to the database.
func (r *GormTemplateRepository) Add(ctx context.Context, aggregate *workflow.Template) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing template to the database. Select("*") forces
// zero-valued columns through, so demoting the default flag sticks.
func (r *GormTemplateRepository) Update(ctx context.Context, aggregate *workflow.Template) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&TemplateDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a template by ID.
func (r *GormTemplateRepository) Get(ctx context.Context, id kernel.UUID) (*workflow.Template, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TemplateDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("template", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every template in creation order. Template selection
// depends on this ordering being stable.
func (r *GormTemplateRepository) GetAll(ctx context.Context) ([]*workflow.Template, error) {
	var dtos []TemplateDTO
	if err := r.db.WithContext(ctx).Order("created_at, name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	templates := make([]*workflow.Template, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}

	return templates, nil
}

// GetDefault retrieves the current default template.
func (r *GormTemplateRepository) GetDefault(ctx context.Context) (*workflow.Template, error) {
	var dto TemplateDTO
	if err := r.db.WithContext(ctx).First(&dto, "is_default").Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("template", "default")
		}
		return nil, err
	}

	return toDomain(dto)
}

// Remove deletes a template row. The default/active deletion rules are
// enforced by the caller, not here.
func (r *GormTemplateRepository) Remove(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&TemplateDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("template", id.String())
	}

	return nil
}
