package model

// Buyer is a contact-form message. Write-only: created once, never updated
// or displayed back.
type Buyer struct {
	ID      uint   `json:"id" gorm:"primarykey"`
	Name    string `json:"name" gorm:"type:varchar(100);not null"`
	Phone   string `json:"phone" gorm:"type:varchar(12);not null"`
	Message string `json:"message" gorm:"type:text;not null"`
}
