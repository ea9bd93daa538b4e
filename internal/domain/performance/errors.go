package performance

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrRaterNotFound     = errors.New("rater not found")
	ErrEmptySession      = errors.New("no employees rated")
	ErrSelfRating        = errors.New("employees cannot rate themselves")
	ErrDuplicateTarget   = errors.New("employee rated twice in one session")
	ErrIncompleteRatings = errors.New("please rate all categories before proceeding")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrInvalidRating     = errors.New("invalid rating value")
	ErrAdminReport       = errors.New("admin sessions cannot report tasks or violations")
	ErrTaskNotFound      = errors.New("task not found")
	ErrRuleNotFound      = errors.New("rule not found")
	ErrCategoryRequired  = errors.New("category name required")
	ErrCategoryExists    = errors.New("category already exists")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrSelfReport        = errors.New("employees cannot report themselves")
)
