package userinfo

import (
	"time"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

type (
	// ID is assigned by the store on first insert; zero means "not assigned yet".
	ID       = int64
	UserInfo struct {
		ID        ID
		UserID    string
		Firstname string
		Lastname  string
		Alias     string
		Gender    Gender
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

// Equal reports entity identity: two records are the same entity when they
// share a non-zero id. A record without id is only equal to itself.
func (u *UserInfo) Equal(o *UserInfo) bool {
	if u == o {
		return true
	}
	if u == nil || o == nil {
		return false
	}
	return u.ID != 0 && u.ID == o.ID
}

func (u *UserInfo) HasID() bool { return u != nil && u.ID != 0 }
