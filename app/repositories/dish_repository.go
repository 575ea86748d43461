package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/menumanagerpro/menumanager/app/models"
	"github.com/menumanagerpro/menumanager/pkg/database"
)

type NewDish struct {
	Name        string
	SectionID   uint
	Ingredients models.IngredientList
}

// DishPatch replaces Ingredients wholesale when present.
type DishPatch struct {
	Name        Field[string]
	SectionID   Field[uint]
	Ingredients Field[models.IngredientList]
}

// DishRecord is a dish with its section name resolved.
type DishRecord struct {
	ID          uint                  `json:"id"`
	Name        string                `json:"name"`
	SectionID   uint                  `json:"section_id"`
	Section     string                `json:"section"`
	Ingredients models.IngredientList `json:"ingredients"`
}

// DishRepository handles database operations for Dish. Creating or moving
// a dish into a section that does not exist fails with REFERENCED.
type DishRepository struct {
	base
}

func NewDishRepository(store *database.Store) *DishRepository {
	return &DishRepository{base: newBase(store, "dish", "name")}
}

func (r *DishRepository) Create(ctx context.Context, in NewDish) (_ *models.Dish, err error) {
	defer r.observe("create", time.Now(), &err)

	dish := models.Dish{Name: in.Name, SectionID: in.SectionID, Ingredients: in.Ingredients}
	if dish.Ingredients == nil {
		dish.Ingredients = models.IngredientList{}
	}
	if err := r.store.Write(ctx, func(tx *gorm.DB) error {
		return tx.Omit("Section").Create(&dish).Error
	}); err != nil {
		return nil, r.classify(err, "create")
	}

	r.changed("created", dish.ID)
	return &dish, nil
}

func (r *DishRepository) joined(ctx context.Context) *gorm.DB {
	return r.store.DB(ctx).
		Table("dishes AS d").
		Select("d.id, d.name, d.section_id, s.name AS section, d.ingredients").
		Joins("JOIN sections AS s ON s.id = d.section_id")
}

// List returns every dish with its section name, in storage order.
func (r *DishRepository) List(ctx context.Context) (_ []DishRecord, err error) {
	defer r.observe("list", time.Now(), &err)

	dishes := []DishRecord{}
	if err := r.joined(ctx).Order("d.id").Scan(&dishes).Error; err != nil {
		return nil, r.classify(err, "list")
	}
	return dishes, nil
}

// ListBySection returns the dishes of one section.
func (r *DishRepository) ListBySection(ctx context.Context, sectionID uint) (_ []DishRecord, err error) {
	defer r.observe("list_by_section", time.Now(), &err)

	dishes := []DishRecord{}
	if err := r.joined(ctx).Where("d.section_id = ?", sectionID).Order("d.id").Scan(&dishes).Error; err != nil {
		return nil, r.classify(err, "list")
	}
	return dishes, nil
}

func (r *DishRepository) Find(ctx context.Context, id uint) (_ *DishRecord, err error) {
	defer r.observe("find", time.Now(), &err)

	var dish DishRecord
	res := r.joined(ctx).Where("d.id = ?", id).Limit(1).Scan(&dish)
	if res.Error != nil && !errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, r.classify(res.Error, "find")
	}
	if res.RowsAffected == 0 {
		return nil, r.notFound(id)
	}
	return &dish, nil
}

func (r *DishRepository) Update(ctx context.Context, id uint, patch DishPatch) (err error) {
	defer r.observe("update", time.Now(), &err)

	u := updates{}
	addField(u, "name", patch.Name)
	addField(u, "section_id", patch.SectionID)
	if ingredients, ok := patch.Ingredients.Get(); ok {
		if ingredients == nil {
			ingredients = models.IngredientList{}
		}
		u["ingredients"] = ingredients
	}
	return r.update(ctx, &models.Dish{}, id, u)
}

// Delete removes the dish. Menus keep their copies of its name.
func (r *DishRepository) Delete(ctx context.Context, id uint) (err error) {
	defer r.observe("delete", time.Now(), &err)
	return r.delete(ctx, &models.Dish{}, id)
}
