package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/menumanagerpro/menumanager/app/models"
	"github.com/menumanagerpro/menumanager/pkg/database"
)

type NewMenu struct {
	Date     string
	Dishes   models.DishSelection
	Toppings models.Quantities
}

// MenuPatch replaces Dishes and Toppings wholesale when present.
type MenuPatch struct {
	Date     Field[string]
	Dishes   Field[models.DishSelection]
	Toppings Field[models.Quantities]
}

// MenuRepository handles database operations for Menu. Deleting a menu also
// deletes its history rows.
type MenuRepository struct {
	base
}

func NewMenuRepository(store *database.Store) *MenuRepository {
	return &MenuRepository{base: newBase(store, "menu", "id")}
}

func (r *MenuRepository) Create(ctx context.Context, in NewMenu) (_ *models.Menu, err error) {
	defer r.observe("create", time.Now(), &err)

	menu := models.Menu{Date: in.Date, Dishes: in.Dishes, Toppings: in.Toppings}
	if menu.Dishes == nil {
		menu.Dishes = models.DishSelection{}
	}
	if menu.Toppings == nil {
		menu.Toppings = models.Quantities{}
	}
	if err := r.store.Write(ctx, func(tx *gorm.DB) error {
		return tx.Create(&menu).Error
	}); err != nil {
		return nil, r.classify(err, "create")
	}

	r.changed("created", menu.ID)
	return &menu, nil
}

func (r *MenuRepository) List(ctx context.Context) (_ []models.Menu, err error) {
	defer r.observe("list", time.Now(), &err)

	menus := []models.Menu{}
	if err := r.store.DB(ctx).Order("id").Find(&menus).Error; err != nil {
		return nil, r.classify(err, "list")
	}
	return menus, nil
}

// ListByDate returns the menus composed for one date.
func (r *MenuRepository) ListByDate(ctx context.Context, date string) (_ []models.Menu, err error) {
	defer r.observe("list_by_date", time.Now(), &err)

	menus := []models.Menu{}
	if err := r.store.DB(ctx).Where("date = ?", date).Order("id").Find(&menus).Error; err != nil {
		return nil, r.classify(err, "list")
	}
	return menus, nil
}

func (r *MenuRepository) Find(ctx context.Context, id uint) (_ *models.Menu, err error) {
	defer r.observe("find", time.Now(), &err)

	var menu models.Menu
	if err := r.find(ctx, &menu, id); err != nil {
		return nil, err
	}
	return &menu, nil
}

func (r *MenuRepository) Update(ctx context.Context, id uint, patch MenuPatch) (err error) {
	defer r.observe("update", time.Now(), &err)

	u := updates{}
	addField(u, "date", patch.Date)
	if dishes, ok := patch.Dishes.Get(); ok {
		if dishes == nil {
			dishes = models.DishSelection{}
		}
		u["dishes"] = dishes
	}
	if toppings, ok := patch.Toppings.Get(); ok {
		if toppings == nil {
			toppings = models.Quantities{}
		}
		u["toppings"] = toppings
	}
	return r.update(ctx, &models.Menu{}, id, u)
}

func (r *MenuRepository) Delete(ctx context.Context, id uint) (err error) {
	defer r.observe("delete", time.Now(), &err)
	return r.delete(ctx, &models.Menu{}, id)
}
