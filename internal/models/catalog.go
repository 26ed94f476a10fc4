// internal/models/catalog.go
package models

// Category is a stored registry entry. Products also carry a free-form
// category field; the registry and the distinct product values are merged
// when listing, with the stored label winning on a name collision.
type Category struct {
	BaseModel
	Name  string `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Label string `json:"label" gorm:"size:100"`
}

type Brand struct {
	BaseModel
	Name  string `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Label string `json:"label" gorm:"size:100"`
}

// CatalogLabel is the wire shape for a category or brand entry.
type CatalogLabel struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}
