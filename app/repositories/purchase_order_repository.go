package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/menumanagerpro/menumanager/app/models"
	"github.com/menumanagerpro/menumanager/pkg/database"
)

type NewPurchaseOrder struct {
	Date        string
	Ingredients models.Quantities
	PDFPath     string
}

// PurchaseOrderPatch replaces Ingredients wholesale when present.
type PurchaseOrderPatch struct {
	Date        Field[string]
	Ingredients Field[models.Quantities]
	PDFPath     Field[string]
}

// PurchaseOrderRepository handles database operations for PurchaseOrder.
type PurchaseOrderRepository struct {
	base
}

func NewPurchaseOrderRepository(store *database.Store) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{base: newBase(store, "purchase_order", "id")}
}

func (r *PurchaseOrderRepository) Create(ctx context.Context, in NewPurchaseOrder) (_ *models.PurchaseOrder, err error) {
	defer r.observe("create", time.Now(), &err)

	order := models.PurchaseOrder{Date: in.Date, Ingredients: in.Ingredients, PDFPath: in.PDFPath}
	if order.Ingredients == nil {
		order.Ingredients = models.Quantities{}
	}
	if err := r.store.Write(ctx, func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	}); err != nil {
		return nil, r.classify(err, "create")
	}

	r.changed("created", order.ID)
	return &order, nil
}

func (r *PurchaseOrderRepository) List(ctx context.Context) (_ []models.PurchaseOrder, err error) {
	defer r.observe("list", time.Now(), &err)

	orders := []models.PurchaseOrder{}
	if err := r.store.DB(ctx).Order("id").Find(&orders).Error; err != nil {
		return nil, r.classify(err, "list")
	}
	return orders, nil
}

func (r *PurchaseOrderRepository) Find(ctx context.Context, id uint) (_ *models.PurchaseOrder, err error) {
	defer r.observe("find", time.Now(), &err)

	var order models.PurchaseOrder
	if err := r.find(ctx, &order, id); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *PurchaseOrderRepository) Update(ctx context.Context, id uint, patch PurchaseOrderPatch) (err error) {
	defer r.observe("update", time.Now(), &err)

	u := updates{}
	addField(u, "date", patch.Date)
	addField(u, "pdf_path", patch.PDFPath)
	if ingredients, ok := patch.Ingredients.Get(); ok {
		if ingredients == nil {
			ingredients = models.Quantities{}
		}
		u["ingredients"] = ingredients
	}
	return r.update(ctx, &models.PurchaseOrder{}, id, u)
}

func (r *PurchaseOrderRepository) Delete(ctx context.Context, id uint) (err error) {
	defer r.observe("delete", time.Now(), &err)
	return r.delete(ctx, &models.PurchaseOrder{}, id)
}
