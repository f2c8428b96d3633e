package userinfo

import (
	"time"
)

type (
	UserInfo struct {
		ID        int64
		UserID    string
		Firstname string
		Lastname  string
		Alias     string
		Gender    string
		Email     string

		Phone        *string
		AddressLine1 *string
		AddressLine2 *string
		City         *string
		Country      *string

		CreatedAt time.Time
		UpdatedAt *time.Time
	}
	UserInfos []*UserInfo
)

func (u *UserInfo) scanTargets() []any {
	return []any{
		&u.ID,
		&u.UserID,
		&u.Firstname,
		&u.Lastname,
		&u.Alias,
		&u.Gender,
		&u.Email,

		&u.Phone,
		&u.AddressLine1,
		&u.AddressLine2,
		&u.City,
		&u.Country,

		&u.CreatedAt,
		&u.UpdatedAt,
	}
}
