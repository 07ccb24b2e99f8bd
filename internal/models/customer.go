package models

// Customer represents a shop customer record.
type Customer struct {
	CustID  uint   `json:"cust_id" gorm:"column:cust_id;primaryKey;autoIncrement"`
	Name    string `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Email   string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Phone   string `json:"phone" gorm:"type:varchar(30)" validate:"omitempty,max=30"`
	Address string `json:"address" gorm:"type:varchar(255)" validate:"omitempty,max=255"`
	ZipCode string `json:"zip_code" gorm:"type:varchar(10)" validate:"omitempty,max=10"`
}
