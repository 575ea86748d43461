package models

// Section groups dishes on a menu ("Entradas", "Postres").
type Section struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex:idx_sections_name;not null" json:"name"`
}

// Dish belongs to exactly one section. A section cannot be deleted while a
// dish still points at it.
type Dish struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"uniqueIndex:idx_dishes_name;not null" json:"name"`
	SectionID   uint           `gorm:"not null;index" json:"section_id"`
	Section     *Section       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Ingredients IngredientList `gorm:"type:text" json:"ingredients"`
}
