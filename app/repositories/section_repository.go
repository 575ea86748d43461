package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/menumanagerpro/menumanager/app/models"
	"github.com/menumanagerpro/menumanager/pkg/database"
)

type SectionPatch struct {
	Name Field[string]
}

// SectionRepository handles database operations for Section. A section
// referenced by any dish cannot be deleted (REFERENCED).
type SectionRepository struct {
	base
}

func NewSectionRepository(store *database.Store) *SectionRepository {
	return &SectionRepository{base: newBase(store, "section", "name")}
}

func (r *SectionRepository) Create(ctx context.Context, name string) (_ *models.Section, err error) {
	defer r.observe("create", time.Now(), &err)

	section := models.Section{Name: name}
	if err := r.store.Write(ctx, func(tx *gorm.DB) error {
		return tx.Create(&section).Error
	}); err != nil {
		return nil, r.classify(err, "create")
	}

	r.changed("created", section.ID)
	return &section, nil
}

func (r *SectionRepository) List(ctx context.Context) (_ []models.Section, err error) {
	defer r.observe("list", time.Now(), &err)

	sections := []models.Section{}
	if err := r.store.DB(ctx).Order("id").Find(&sections).Error; err != nil {
		return nil, r.classify(err, "list")
	}
	return sections, nil
}

func (r *SectionRepository) Find(ctx context.Context, id uint) (_ *models.Section, err error) {
	defer r.observe("find", time.Now(), &err)

	var section models.Section
	if err := r.find(ctx, &section, id); err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *SectionRepository) Update(ctx context.Context, id uint, patch SectionPatch) (err error) {
	defer r.observe("update", time.Now(), &err)

	u := updates{}
	addField(u, "name", patch.Name)
	return r.update(ctx, &models.Section{}, id, u)
}

func (r *SectionRepository) Delete(ctx context.Context, id uint) (err error) {
	defer r.observe("delete", time.Now(), &err)
	return r.delete(ctx, &models.Section{}, id)
}
