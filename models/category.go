package models

// Category is a node in the user-defined category tree. ParentID is empty
// for top-level categories. The tree must not contain cycles.
type Category struct {
	ID       string `validate:"required"`
	Name     string `validate:"required"`
	ParentID string
}
