package services_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menumanagerpro/menumanager/app/models"
	"github.com/menumanagerpro/menumanager/app/repositories"
	"github.com/menumanagerpro/menumanager/app/services"
	"github.com/menumanagerpro/menumanager/pkg/database"
	"github.com/menumanagerpro/menumanager/pkg/document"
	apperr "github.com/menumanagerpro/menumanager/pkg/errors"
	"github.com/menumanagerpro/menumanager/pkg/metrics"
	"github.com/menumanagerpro/menumanager/pkg/storage"
)

type documentFixture struct {
	store   *database.Store
	disk    *storage.Local
	menus   *repositories.MenuRepository
	history *repositories.MenuHistoryRepository
	orders  *repositories.PurchaseOrderRepository
	svc     *services.DocumentService
}

func newDocumentFixture(t *testing.T) *documentFixture {
	t.Helper()
	store := newStore(t)
	disk, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	f := &documentFixture{
		store:   store,
		disk:    disk,
		menus:   repositories.NewMenuRepository(store),
		history: repositories.NewMenuHistoryRepository(store),
		orders:  repositories.NewPurchaseOrderRepository(store),
	}
	f.svc = services.NewDocumentService(f.menus, f.history, f.orders, disk, document.NewRenderer("Casa Test"))
	return f
}

func filesUnder(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestPublishMenu(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()
	counter := metrics.DocumentsGenerated.WithLabelValues("menu")
	before := testutil.ToFloat64(counter)

	menu, err := f.menus.Create(ctx, repositories.NewMenu{
		Date:     "2024-11-04",
		Dishes:   models.DishSelection{"Entradas": {"Sopa"}},
		Toppings: models.Quantities{"queso": "100g"},
	})
	require.NoError(t, err)

	entry, err := f.svc.PublishMenu(ctx, menu.ID)
	require.NoError(t, err)
	assert.Equal(t, menu.ID, entry.MenuID)
	assert.True(t, filepath.IsAbs(entry.PDFPath))

	data, err := os.ReadFile(entry.PDFPath)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(data[:5]))

	entries, err := f.history.ListByMenu(ctx, menu.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.PDFPath, entries[0].PDFPath)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestPublishMenu_UnknownMenu(t *testing.T) {
	f := newDocumentFixture(t)

	_, err := f.svc.PublishMenu(context.Background(), 404)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	assert.Empty(t, filesUnder(t, filepath.Join(f.disk.Root(), "menus")))
}

func TestIssuePurchaseOrder(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()

	order, err := f.svc.IssuePurchaseOrder(ctx, "2024-11-05", models.Quantities{"papa": "10kg"})
	require.NoError(t, err)
	assert.FileExists(t, order.PDFPath)

	stored, err := f.orders.Find(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.PDFPath, stored.PDFPath)
	assert.Equal(t, models.Quantities{"papa": "10kg"}, stored.Ingredients)
}

func TestIssuePurchaseOrder_RemovesFileWhenRowFails(t *testing.T) {
	f := newDocumentFixture(t)
	require.NoError(t, f.store.Close())

	_, err := f.svc.IssuePurchaseOrder(context.Background(), "2024-11-05", models.Quantities{"papa": "10kg"})
	assert.True(t, apperr.IsCode(err, apperr.CodeStorage), "got %v", err)
	assert.Empty(t, filesUnder(t, filepath.Join(f.disk.Root(), "orders")))
}
