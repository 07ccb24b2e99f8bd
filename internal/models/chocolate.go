package models

// Chocolate represents a catalog item. The catalog is read-only for
// the order flows; rows come from seeding or external administration.
type Chocolate struct {
	ChocID uint    `json:"choc_id" gorm:"column:choc_id;primaryKey;autoIncrement"`
	Type   string  `json:"type" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Price  float64 `json:"price" validate:"gte=0"`
}
