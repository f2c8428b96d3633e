package userinfo

import "time"

type (
	UserInfo struct {
		ID        int64  `json:"id"`
		UserID    string `json:"userId"`
		Firstname string `json:"firstname"`
		Lastname  string `json:"lastname"`
		Alias     string `json:"alias"`
		Gender    string `json:"gender"`
		Email     string `json:"email"`

		Phone        *string `json:"phone"`
		AddressLine1 *string `json:"addressLine1"`
		AddressLine2 *string `json:"addressLine2"`
		City         *string `json:"city"`
		Country      *string `json:"country"`

		CreatedAt time.Time  `json:"createdAt"`
		UpdatedAt *time.Time `json:"updatedAt"`
	}
	UserInfos []UserInfo
)
