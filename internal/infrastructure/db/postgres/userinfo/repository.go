package userinfo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"userinfo-service/internal/domain/userinfo"
	"userinfo-service/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.Querier
}

func NewRepository(db postgres.Querier) userinfo.Repository {
	return &Repository{db: db}
}

// Save inserts u when it has no id yet and replaces the stored row otherwise.
func (r *Repository) Save(ctx context.Context, u userinfo.UserInfo) (*userinfo.UserInfo, error) {
	if !u.HasID() {
		return r.insert(ctx, u)
	}
	return r.update(ctx, u)
}

func (r *Repository) insert(ctx context.Context, req userinfo.UserInfo) (*userinfo.UserInfo, error) {
	m := new(UserInfo)
	if err := r.db.QueryRow(ctx, InsertUserInfo, writeArgs(req)...).Scan(m.scanTargets()...); err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, fmt.Errorf("insert user info: %w", postgres.ErrUniqueViolation)
		}
		return nil, fmt.Errorf("insert user info: %w", err)
	}

	return fromDBModel(m), nil
}

func (r *Repository) update(ctx context.Context, req userinfo.UserInfo) (*userinfo.UserInfo, error) {
	m := new(UserInfo)
	args := append(writeArgs(req), req.ID)
	if err := r.db.QueryRow(ctx, UpdateUserInfoByID, args...).Scan(m.scanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, userinfo.ErrNotFound
		}
		if postgres.IsPgUniqueViolation(err) {
			return nil, fmt.Errorf("update user info %d: %w", req.ID, postgres.ErrUniqueViolation)
		}
		return nil, fmt.Errorf("update user info %d: %w", req.ID, err)
	}

	return fromDBModel(m), nil
}

func (r *Repository) FindByID(ctx context.Context, id userinfo.ID) (*userinfo.UserInfo, error) {
	m := new(UserInfo)
	if err := r.db.QueryRow(ctx, SelectUserInfoByID, id).Scan(m.scanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, userinfo.ErrNotFound
		}
		return nil, fmt.Errorf("select user info %d: %w", id, err)
	}

	return fromDBModel(m), nil
}

func (r *Repository) FindAll(ctx context.Context, p userinfo.Pageable) (userinfo.UserInfos, error) {
	orderBy, err := orderClause(p.Sort)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, fmt.Sprintf(SelectUserInfos, orderBy), p.Size, p.Offset())
	if err != nil {
		return nil, fmt.Errorf("select user infos: %w", err)
	}
	defer rows.Close()

	us := make(UserInfos, 0, p.Size)
	for rows.Next() {
		m := new(UserInfo)
		if err = rows.Scan(m.scanTargets()...); err != nil {
			return nil, fmt.Errorf("scan user info: %w", err)
		}
		us = append(us, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("select user infos: %w", err)
	}

	return fromDBModels(us), nil
}

func (r *Repository) ExistsByID(ctx context.Context, id userinfo.ID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, ExistsUserInfoByID, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists user info %d: %w", id, err)
	}

	return exists, nil
}

// DeleteByID reports whether a row was removed; deleting an absent id is not an error.
func (r *Repository) DeleteByID(ctx context.Context, id userinfo.ID) (bool, error) {
	tag, err := r.db.Exec(ctx, DeleteUserInfoByID, id)
	if err != nil {
		return false, fmt.Errorf("delete user info %d: %w", id, err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, CountUserInfos).Scan(&n); err != nil {
		return 0, fmt.Errorf("count user infos: %w", err)
	}

	return n, nil
}

// orderClause renders whitelisted sort orders; id is appended as a tie-breaker
// so that pages are stable.
func orderClause(orders []userinfo.Order) (string, error) {
	parts := make([]string, 0, len(orders)+1)
	byID := false
	for _, o := range orders {
		col, ok := sortColumns[o.Property]
		if !ok {
			return "", fmt.Errorf("%w: %q", userinfo.ErrInvalidSort, o.Property)
		}
		dir := "ASC"
		if o.Direction == userinfo.Desc {
			dir = "DESC"
		}
		if col == "id" {
			byID = true
		}
		parts = append(parts, col+" "+dir)
	}
	if !byID {
		parts = append(parts, "id ASC")
	}

	return strings.Join(parts, ", "), nil
}
