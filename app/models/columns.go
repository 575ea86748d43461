package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
)

// Quantity is an amount as the user typed it ("2kg", "1"). It decodes from
// a JSON string or a JSON number so older rows holding bare numbers still load.
type Quantity string

func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*q = Quantity(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*q = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("quantity: %w", err)
	}
	if f, err := n.Float64(); err == nil {
		*q = Quantity(strconv.FormatFloat(f, 'f', -1, 64))
		return nil
	}
	*q = Quantity(n.String())
	return nil
}

// Ingredient is one line of a dish recipe.
type Ingredient struct {
	Name string   `json:"name"`
	Qty  Quantity `json:"qty"`
}

// IngredientList is the ordered recipe of a dish, stored as a JSON array.
type IngredientList []Ingredient

func (l IngredientList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return marshalText(l)
}

func (l *IngredientList) Scan(value interface{}) error {
	result := IngredientList{}
	if err := unmarshalColumn("ingredients", value, &result); err != nil {
		return err
	}
	*l = result
	return nil
}

// DishSelection maps a section name to the dishes chosen from it.
type DishSelection map[string][]string

func (d DishSelection) Value() (driver.Value, error) {
	if d == nil {
		return "{}", nil
	}
	return marshalText(d)
}

func (d *DishSelection) Scan(value interface{}) error {
	result := DishSelection{}
	if err := unmarshalColumn("dishes", value, &result); err != nil {
		return err
	}
	*d = result
	return nil
}

// Quantities maps a name (topping, ingredient) to its amount.
type Quantities map[string]Quantity

func (q Quantities) Value() (driver.Value, error) {
	if q == nil {
		return "{}", nil
	}
	return marshalText(q)
}

func (q *Quantities) Scan(value interface{}) error {
	result := Quantities{}
	if err := unmarshalColumn("quantities", value, &result); err != nil {
		return err
	}
	*q = result
	return nil
}

// marshalText returns a string so the column is written as TEXT on every
// dialect, never as a blob.
func marshalText(v any) (driver.Value, error) {
	buf, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(buf), nil
}

// unmarshalColumn leaves dest untouched for NULL and empty columns.
func unmarshalColumn(name string, value interface{}, dest any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("%s: unsupported scan type %T", name, value)
	}

	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("%s: decode: %w", name, err)
	}
	return nil
}
