package models

// Menu is a composed daily menu. Dishes and toppings are copies of names,
// not references, so editing or deleting a dish never rewrites old menus.
type Menu struct {
	ID       uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	Date     string        `gorm:"not null" json:"date"`
	Dishes   DishSelection `gorm:"type:text" json:"dishes"`
	Toppings Quantities    `gorm:"type:text" json:"toppings"`
}

// MenuHistory records a document generated for a menu.
type MenuHistory struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	MenuID  uint   `gorm:"not null;index" json:"menu_id"`
	Menu    *Menu  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	PDFPath string `gorm:"column:pdf_path;not null" json:"pdf_path"`
}

func (MenuHistory) TableName() string { return "menu_history" }

// PurchaseOrder is a list of ingredients to buy plus the generated document.
type PurchaseOrder struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Date        string     `gorm:"not null" json:"date"`
	Ingredients Quantities `gorm:"type:text" json:"ingredients"`
	PDFPath     string     `gorm:"column:pdf_path;not null" json:"pdf_path"`
}
