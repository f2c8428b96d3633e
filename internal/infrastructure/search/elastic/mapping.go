package elastic

import (
	"time"

	"userinfo-service/internal/domain/userinfo"
)

const indexMapping = `{
  "mappings": {
    "properties": {
      "id":           { "type": "long" },
      "userId":       { "type": "text" },
      "firstname":    { "type": "text" },
      "lastname":     { "type": "text" },
      "alias":        { "type": "text" },
      "gender":       { "type": "keyword" },
      "email":        { "type": "text" },
      "phone":        { "type": "text" },
      "addressLine1": { "type": "text" },
      "addressLine2": { "type": "text" },
      "city":         { "type": "text" },
      "country":      { "type": "text" },
      "createdAt":    { "type": "date" },
      "updatedAt":    { "type": "date" }
    }
  }
}`

// document is the indexed shape of a user info, field-for-field with the table.
type document struct {
	ID           int64      `json:"id"`
	UserID       string     `json:"userId"`
	Firstname    string     `json:"firstname"`
	Lastname     string     `json:"lastname"`
	Alias        string     `json:"alias"`
	Gender       string     `json:"gender"`
	Email        string     `json:"email"`
	Phone        *string    `json:"phone"`
	AddressLine1 *string    `json:"addressLine1"`
	AddressLine2 *string    `json:"addressLine2"`
	City         *string    `json:"city"`
	Country      *string    `json:"country"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt"`
}

func toDocument(u *userinfo.UserInfo) document {
	return document{
		ID:           u.ID,
		UserID:       u.UserID,
		Firstname:    u.Firstname,
		Lastname:     u.Lastname,
		Alias:        u.Alias,
		Gender:       string(u.Gender),
		Email:        u.Email,
		Phone:        u.Phone,
		AddressLine1: u.AddressLine1,
		AddressLine2: u.AddressLine2,
		City:         u.City,
		Country:      u.Country,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (d document) toDomain() *userinfo.UserInfo {
	return &userinfo.UserInfo{
		ID:           d.ID,
		UserID:       d.UserID,
		Firstname:    d.Firstname,
		Lastname:     d.Lastname,
		Alias:        d.Alias,
		Gender:       userinfo.Gender(d.Gender),
		Email:        d.Email,
		Phone:        d.Phone,
		AddressLine1: d.AddressLine1,
		AddressLine2: d.AddressLine2,
		City:         d.City,
		Country:      d.Country,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
