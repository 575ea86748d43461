package requests

// DateLayout is the calendar date format menus and orders use.
const DateLayout = "2006-01-02"

type Login struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateUser struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,min=4"`
	Role     string `json:"role" validate:"required,oneof=admin user"`
}

// UpdateUser fields are nil when not being changed.
type UpdateUser struct {
	Username *string `json:"username" validate:"omitnil,min=1,max=64"`
	Password *string `json:"password" validate:"omitnil,min=4"`
	Role     *string `json:"role" validate:"omitnil,oneof=admin user"`
}

type CreateSection struct {
	Name string `json:"name" validate:"required,max=64"`
}

type UpdateSection struct {
	Name *string `json:"name" validate:"omitnil,max=64"`
}

type Ingredient struct {
	Name string `json:"name" validate:"required"`
	Qty  string `json:"qty"`
}

type CreateDish struct {
	Name        string       `json:"name" validate:"required,max=128"`
	SectionID   uint         `json:"section_id" validate:"gt=0"`
	Ingredients []Ingredient `json:"ingredients" validate:"dive"`
}

type UpdateDish struct {
	Name        *string       `json:"name" validate:"omitnil,max=128"`
	SectionID   *uint         `json:"section_id" validate:"omitnil,gt=0"`
	Ingredients *[]Ingredient `json:"ingredients" validate:"omitnil"`
}

type CreateMenu struct {
	Date     string              `json:"date" validate:"required,datetime=2006-01-02"`
	Dishes   map[string][]string `json:"dishes"`
	Toppings map[string]string   `json:"toppings"`
}

type UpdateMenu struct {
	Date     *string              `json:"date" validate:"omitnil,datetime=2006-01-02"`
	Dishes   *map[string][]string `json:"dishes"`
	Toppings *map[string]string   `json:"toppings"`
}

type IssuePurchaseOrder struct {
	Date        string            `json:"date" validate:"required,datetime=2006-01-02"`
	Ingredients map[string]string `json:"ingredients" validate:"required,min=1,dive,keys,required,endkeys"`
}

type UpdatePurchaseOrder struct {
	Date        *string            `json:"date" validate:"omitnil,datetime=2006-01-02"`
	Ingredients *map[string]string `json:"ingredients"`
}
