package service

import "errors"

var (
	ErrRecipeNotFound      = errors.New("recipe not found")
	ErrIngredientNotFound  = errors.New("ingredient not found")
	ErrMoodNotFound        = errors.New("mood not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrCompatibilityExists = errors.New("compatibility already exists")
	ErrInvalidCategory     = errors.New("invalid ingredient category")
)
