package ports

import (
	"context"

	"userinfo-service/internal/domain/userinfo"
)

// SearchSync mirrors store writes into the search index. Calls are
// fire-and-forget: failures are logged by the implementation and never
// reach the caller, and Pending reports writes not yet applied.
type SearchSync interface {
	Index(ctx context.Context, u *userinfo.UserInfo)
	Remove(ctx context.Context, id userinfo.ID)
	Pending() int64
}
