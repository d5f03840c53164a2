package dto

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"bnin/internal/microservices/http-api/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the catalog's custom binding tags to gin's validator.
// Safe to call more than once.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		if err = v.RegisterValidation("ingredient_category", validIngredientCategory); err != nil {
			return
		}
		err = v.RegisterValidation("difficulty", validDifficulty)
	})
	return err
}

func validIngredientCategory(fl validator.FieldLevel) bool {
	return IsIngredientCategory(fl.Field().String())
}

func validDifficulty(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
		return true
	}
	return false
}

var idValidate = validator.New()

// IsID reports whether id has the shape of a stored key. Anything else can
// never match a row and is refused before it reaches the database.
func IsID(id string) bool {
	return idValidate.Var(id, "required,uuid") == nil
}

// IsIngredientCategory reports whether category is one the catalog accepts.
func IsIngredientCategory(category string) bool {
	for _, c := range models.IngredientCategories {
		if c == category {
			return true
		}
	}
	return false
}

var messageTemplates = map[string]string{
	"required":            "%s is required",
	"ingredient_category": "%s must be one of: " + strings.Join(models.IngredientCategories, ", "),
	"difficulty":          "%s must be one of: Easy, Medium, Hard",
	"uuid":                "%s must be a valid id",
}

var paramTemplates = map[string]string{
	"min":     "%s must be at least %s",
	"max":     "%s must be at most %s",
	"oneof":   "%s must be one of: %s",
	"nefield": "%s must differ from %s",
}

// ValidationMessage turns a binding error into a short human-readable message.
// Errors that are not validation failures (bad JSON, wrong types) pass through.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	if tmpl, ok := messageTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, field)
	}
	if tmpl, ok := paramTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, field, fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
