package services

import (
	"context"
	"fmt"
	"time"

	"github.com/menumanagerpro/menumanager/app/models"
	"github.com/menumanagerpro/menumanager/app/repositories"
	"github.com/menumanagerpro/menumanager/pkg/document"
	apperr "github.com/menumanagerpro/menumanager/pkg/errors"
	"github.com/menumanagerpro/menumanager/pkg/logger"
	"github.com/menumanagerpro/menumanager/pkg/metrics"
	"github.com/menumanagerpro/menumanager/pkg/storage"
)

// DocumentService renders menus and purchase orders to PDF, keeps the files
// on disk and records their paths.
type DocumentService struct {
	menus    *repositories.MenuRepository
	history  *repositories.MenuHistoryRepository
	orders   *repositories.PurchaseOrderRepository
	disk     storage.Disk
	renderer *document.Renderer

	now func() time.Time
}

func NewDocumentService(
	menus *repositories.MenuRepository,
	history *repositories.MenuHistoryRepository,
	orders *repositories.PurchaseOrderRepository,
	disk storage.Disk,
	renderer *document.Renderer,
) *DocumentService {
	return &DocumentService{
		menus:    menus,
		history:  history,
		orders:   orders,
		disk:     disk,
		renderer: renderer,
		now:      time.Now,
	}
}

// PublishMenu renders menu menuID and appends a history row pointing at the
// stored file.
func (s *DocumentService) PublishMenu(ctx context.Context, menuID uint) (*models.MenuHistory, error) {
	menu, err := s.menus.Find(ctx, menuID)
	if err != nil {
		return nil, err
	}

	toppings := make(map[string]string, len(menu.Toppings))
	for name, qty := range menu.Toppings {
		toppings[name] = string(qty)
	}
	pdf, err := s.renderer.Menu(document.Menu{
		Date:     menu.Date,
		Sections: menu.Dishes,
		Toppings: toppings,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeStorage, err, "render menu")
	}

	key := fmt.Sprintf("menus/menu_%d_%d.pdf", menu.ID, s.now().UnixNano())
	if err := s.disk.Put(key, pdf); err != nil {
		return nil, apperr.Wrap(apperr.CodeStorage, err, "store menu document")
	}

	entry, err := s.history.Create(ctx, menu.ID, s.disk.Path(key))
	if err != nil {
		s.discard(key)
		return nil, err
	}

	metrics.DocumentsGenerated.WithLabelValues("menu").Inc()
	logger.Info("menu published", "menu_id", menu.ID, "path", entry.PDFPath)
	return entry, nil
}

// IssuePurchaseOrder renders the order, stores it and creates the
// purchase order row. The file is removed again if the row is not written.
func (s *DocumentService) IssuePurchaseOrder(ctx context.Context, date string, ingredients models.Quantities) (*models.PurchaseOrder, error) {
	rows := make(map[string]string, len(ingredients))
	for name, qty := range ingredients {
		rows[name] = string(qty)
	}
	pdf, err := s.renderer.PurchaseOrder(document.PurchaseOrder{Date: date, Ingredients: rows})
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeStorage, err, "render purchase order")
	}

	key := fmt.Sprintf("orders/order_%s_%d.pdf", date, s.now().UnixNano())
	if err := s.disk.Put(key, pdf); err != nil {
		return nil, apperr.Wrap(apperr.CodeStorage, err, "store purchase order document")
	}

	order, err := s.orders.Create(ctx, repositories.NewPurchaseOrder{
		Date:        date,
		Ingredients: ingredients,
		PDFPath:     s.disk.Path(key),
	})
	if err != nil {
		s.discard(key)
		return nil, err
	}

	metrics.DocumentsGenerated.WithLabelValues("purchase_order").Inc()
	logger.Info("purchase order issued", "order_id", order.ID, "path", order.PDFPath)
	return order, nil
}

func (s *DocumentService) discard(key string) {
	if err := s.disk.Delete(key); err != nil {
		logger.Warn("could not remove orphaned document", "path", key, "error", err)
	}
}
