package userinfo

import "time"

// Patch carries a merge-patch: nil fields leave the stored value untouched,
// so clearing a field through a patch is impossible by construction.
type Patch struct {
	ID ID

	UserID    *string
	Firstname *string
	Lastname  *string
	Alias     *string
	Gender    *Gender
	Email     *string

	Phone        *string
	AddressLine1 *string
	AddressLine2 *string
	City         *string
	Country      *string

	CreatedAt *time.Time
	UpdatedAt *time.Time
}

// ApplyTo overwrites fields of u with every non-nil field of the patch.
func (p Patch) ApplyTo(u *UserInfo) {
	if p.UserID != nil {
		u.UserID = *p.UserID
	}
	if p.Firstname != nil {
		u.Firstname = *p.Firstname
	}
	if p.Lastname != nil {
		u.Lastname = *p.Lastname
	}
	if p.Alias != nil {
		u.Alias = *p.Alias
	}
	if p.Gender != nil {
		u.Gender = *p.Gender
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Phone != nil {
		u.Phone = copyString(p.Phone)
	}
	if p.AddressLine1 != nil {
		u.AddressLine1 = copyString(p.AddressLine1)
	}
	if p.AddressLine2 != nil {
		u.AddressLine2 = copyString(p.AddressLine2)
	}
	if p.City != nil {
		u.City = copyString(p.City)
	}
	if p.Country != nil {
		u.Country = copyString(p.Country)
	}
	if p.CreatedAt != nil {
		u.CreatedAt = *p.CreatedAt
	}
	if p.UpdatedAt != nil {
		t := *p.UpdatedAt
		u.UpdatedAt = &t
	}
}

func copyString(s *string) *string {
	v := *s
	return &v
}
