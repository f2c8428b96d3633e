package userinfo

import (
	domain "userinfo-service/internal/domain/userinfo"
)

func fromDBModel(model *UserInfo) *domain.UserInfo {
	var u = &domain.UserInfo{
		ID:        model.ID,
		UserID:    model.UserID,
		Firstname: model.Firstname,
		Lastname:  model.Lastname,
		Alias:     model.Alias,
		Gender:    domain.Gender(model.Gender),
		Email:     model.Email,

		Phone:        model.Phone,
		AddressLine1: model.AddressLine1,
		AddressLine2: model.AddressLine2,
		City:         model.City,
		Country:      model.Country,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	return u
}

func fromDBModels(models UserInfos) domain.UserInfos {
	us := make(domain.UserInfos, len(models))
	for idx, u := range models {
		us[idx] = fromDBModel(u)
	}

	return us
}

// writeArgs lists the mutable columns in the order used by InsertUserInfo and UpdateUserInfoByID.
func writeArgs(u domain.UserInfo) []any {
	return []any{
		u.UserID,
		u.Firstname,
		u.Lastname,
		u.Alias,
		string(u.Gender),
		u.Email,
		u.Phone,
		u.AddressLine1,
		u.AddressLine2,
		u.City,
		u.Country,
		u.CreatedAt,
		u.UpdatedAt,
	}
}
