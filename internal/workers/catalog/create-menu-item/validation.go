// internal/workers/catalog/create-menu-item/validation.go
package createmenuitem

import (
	"strings"

	"menu-workers/internal/common/errors"
)

func validateInput(input *Input) error {
	if strings.TrimSpace(input.Name) == "" {
		return errors.NewInvalidInputError("name is required")
	}
	if strings.TrimSpace(input.Category) == "" {
		return errors.NewInvalidInputError("category is required")
	}
	if input.Price < 0 {
		return errors.NewInvalidInputError("price must not be negative")
	}
	if input.BasePrice != nil && *input.BasePrice < 0 {
		return errors.NewInvalidInputError("basePrice must not be negative")
	}
	return nil
}
