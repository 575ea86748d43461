package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/menumanagerpro/menumanager/app/models"
	"github.com/menumanagerpro/menumanager/pkg/database"
)

// MenuHistoryRepository records the documents generated for menus.
type MenuHistoryRepository struct {
	base
}

func NewMenuHistoryRepository(store *database.Store) *MenuHistoryRepository {
	return &MenuHistoryRepository{base: newBase(store, "menu_history", "id")}
}

// Create appends a history row. An unknown menu id fails with REFERENCED.
func (r *MenuHistoryRepository) Create(ctx context.Context, menuID uint, pdfPath string) (_ *models.MenuHistory, err error) {
	defer r.observe("create", time.Now(), &err)

	entry := models.MenuHistory{MenuID: menuID, PDFPath: pdfPath}
	if err := r.store.Write(ctx, func(tx *gorm.DB) error {
		return tx.Omit("Menu").Create(&entry).Error
	}); err != nil {
		return nil, r.classify(err, "create")
	}

	r.changed("created", entry.ID)
	return &entry, nil
}

func (r *MenuHistoryRepository) List(ctx context.Context) (_ []models.MenuHistory, err error) {
	defer r.observe("list", time.Now(), &err)

	entries := []models.MenuHistory{}
	if err := r.store.DB(ctx).Order("id").Find(&entries).Error; err != nil {
		return nil, r.classify(err, "list")
	}
	return entries, nil
}

func (r *MenuHistoryRepository) ListByMenu(ctx context.Context, menuID uint) (_ []models.MenuHistory, err error) {
	defer r.observe("list_by_menu", time.Now(), &err)

	entries := []models.MenuHistory{}
	if err := r.store.DB(ctx).Where("menu_id = ?", menuID).Order("id").Find(&entries).Error; err != nil {
		return nil, r.classify(err, "list")
	}
	return entries, nil
}

func (r *MenuHistoryRepository) Find(ctx context.Context, id uint) (_ *models.MenuHistory, err error) {
	defer r.observe("find", time.Now(), &err)

	var entry models.MenuHistory
	if err := r.find(ctx, &entry, id); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *MenuHistoryRepository) Delete(ctx context.Context, id uint) (err error) {
	defer r.observe("delete", time.Now(), &err)
	return r.delete(ctx, &models.MenuHistory{}, id)
}
