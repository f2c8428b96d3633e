package userinfo

import (
	"golang.org/x/text/unicode/norm"

	"userinfo-service/internal/domain/userinfo"
)

func ToResponseUserInfo(u userinfo.UserInfo) UserInfo {
	return UserInfo{
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

func ToResponseUserInfos(us userinfo.UserInfos) UserInfos {
	out := make(UserInfos, len(us))
	for idx, u := range us {
		out[idx] = ToResponseUserInfo(*u)
	}

	return out
}

// ToDomainUserInfo reverses ToResponseUserInfo; mirror events carry the
// response representation.
func ToDomainUserInfo(r UserInfo) *userinfo.UserInfo {
	return &userinfo.UserInfo{
		ID:           r.ID,
		UserID:       r.UserID,
		Firstname:    r.Firstname,
		Lastname:     r.Lastname,
		Alias:        r.Alias,
		Gender:       userinfo.Gender(r.Gender),
		Email:        r.Email,
		Phone:        r.Phone,
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		City:         r.City,
		Country:      r.Country,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// Normalize returns r with every text field in NFC, so that the store and the
// index see one canonical form. NFC can change the rune count, so length
// limits must be checked on the normalized request.
func Normalize(r Request) Request {
	r.UserID = nfc(r.UserID)
	r.Firstname = nfc(r.Firstname)
	r.Lastname = nfc(r.Lastname)
	r.Alias = nfc(r.Alias)
	r.Gender = nfc(r.Gender)
	r.Email = nfc(r.Email)
	r.Phone = nfc(r.Phone)
	r.AddressLine1 = nfc(r.AddressLine1)
	r.AddressLine2 = nfc(r.AddressLine2)
	r.City = nfc(r.City)
	r.Country = nfc(r.Country)

	return r
}

// FromRequest maps a normalized, validated request.
func FromRequest(r Request) userinfo.UserInfo {
	u := userinfo.UserInfo{
		UserID:       value(r.UserID),
		Firstname:    value(r.Firstname),
		Lastname:     value(r.Lastname),
		Alias:        value(r.Alias),
		Gender:       userinfo.Gender(value(r.Gender)),
		Email:        value(r.Email),
		Phone:        r.Phone,
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		City:         r.City,
		Country:      r.Country,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.ID != nil {
		u.ID = *r.ID
	}
	if r.CreatedAt != nil {
		u.CreatedAt = *r.CreatedAt
	}

	return u
}

func ToPatch(r Request) userinfo.Patch {
	p := userinfo.Patch{
		UserID:       r.UserID,
		Firstname:    r.Firstname,
		Lastname:     r.Lastname,
		Alias:        r.Alias,
		Email:        r.Email,
		Phone:        r.Phone,
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		City:         r.City,
		Country:      r.Country,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.ID != nil {
		p.ID = *r.ID
	}
	if r.Gender != nil {
		g := userinfo.Gender(*r.Gender)
		p.Gender = &g
	}

	return p
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nfc(s *string) *string {
	if s == nil {
		return nil
	}
	v := norm.NFC.String(*s)
	return &v
}
