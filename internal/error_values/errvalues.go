package errorvalues

import "errors"

var (
	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrWrongCredentials = errors.New("wrong email or password")
	ErrInvalidToken     = errors.New("invalid token")

	ErrHabitNotFound = errors.New("habit doesn't exist")
	ErrOwnerNotFound = errors.New("habit owner doesn't exist")

	ErrTaskNotFound     = errors.New("task doesn't exist")
	ErrTaskExists       = errors.New("habit task already materialized for this date")
	ErrSectionNotFound  = errors.New("section doesn't exist")
	ErrSectionInUse     = errors.New("section is referenced by active items")
	ErrItemNotFound     = errors.New("shopping item doesn't exist")
	ErrCategoryNotFound = errors.New("shopping category doesn't exist")
	ErrCategoryExists   = errors.New("shopping category already exists")
	ErrCategoryInUse    = errors.New("shopping category is referenced by active items")
	ErrRuleNotFound     = errors.New("memory rule doesn't exist")

	ErrDateRequired = errors.New("date is required")
)
