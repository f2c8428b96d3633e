package ports

import (
	"context"

	"userinfo-service/internal/domain/userinfo"
)

type UserInfoService interface {
	Create(ctx context.Context, u userinfo.UserInfo) (*userinfo.UserInfo, error)
	Update(ctx context.Context, u userinfo.UserInfo) (*userinfo.UserInfo, error)
	PartialUpdate(ctx context.Context, patch userinfo.Patch) (*userinfo.UserInfo, error)
	FindAll(ctx context.Context, p userinfo.Pageable) (userinfo.Page, error)
	FindOne(ctx context.Context, id userinfo.ID) (*userinfo.UserInfo, error)
	Exists(ctx context.Context, id userinfo.ID) (bool, error)
	Delete(ctx context.Context, id userinfo.ID) error
	Search(ctx context.Context, query string, p userinfo.Pageable) (userinfo.Page, error)
	Count(ctx context.Context) (int64, error)
	SearchCount(ctx context.Context) (int64, error)
}
