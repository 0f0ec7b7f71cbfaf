package marquee

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance.
var validate = validator.New()

// Validator is implemented by payload types with custom validation logic.
// It runs after struct tag validation.
type Validator interface {
	Validate() error
}

// validateItems checks every item's struct tags and, when implemented,
// its Validate method.
func validateItems[T any](items []T) error {
	for i := range items {
		item := any(items[i])
		if v := reflect.Indirect(reflect.ValueOf(item)); v.IsValid() && v.Kind() == reflect.Struct {
			if err := validate.Struct(item); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
		if v, ok := item.(Validator); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
	}
	return nil
}
