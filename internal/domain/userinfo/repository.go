package userinfo

import (
	"context"
)

// Repository is the primary store; it is the source of truth for every record.
type Repository interface {
	Save(ctx context.Context, u UserInfo) (*UserInfo, error)
	FindByID(ctx context.Context, id ID) (*UserInfo, error)
	FindAll(ctx context.Context, p Pageable) (UserInfos, error)
	ExistsByID(ctx context.Context, id ID) (bool, error)
	DeleteByID(ctx context.Context, id ID) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// SearchIndex is the denormalized, search-optimized mirror of the store.
type SearchIndex interface {
	Index(ctx context.Context, u *UserInfo) error
	DeleteByID(ctx context.Context, id ID) error
	Search(ctx context.Context, query string, p Pageable) (Page, error)
	Count(ctx context.Context) (int64, error)
}
