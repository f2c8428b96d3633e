package userinfo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userinfo-service/internal/domain/userinfo"
	"userinfo-service/internal/infrastructure/db/postgres"
)

var resultColumns = []string{
	"id", "user_id", "firstname", "lastname", "alias", "gender", "email",
	"phone", "address_line_1", "address_line_2", "city", "country",
	"created_at", "updated_at",
}

var createdAt = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

func newMock(t *testing.T) (pgxmock.PgxPoolIface, *Repository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, &Repository{db: mock}
}

func sampleDomain() userinfo.UserInfo {
	city := "Busan"
	return userinfo.UserInfo{
		UserID:    "u1",
		Firstname: "A",
		Lastname:  "B",
		Alias:     "al",
		Gender:    userinfo.GenderMale,
		Email:     "a@b.co",
		City:      &city,
		CreatedAt: createdAt,
	}
}

func sampleRow(id int64) []any {
	city := "Busan"
	return []any{
		id, "u1", "A", "B", "al", "MALE", "a@b.co",
		nil, nil, nil, &city, nil,
		createdAt, nil,
	}
}

func TestRepository_Save_Insert(t *testing.T) {
	mock, repo := newMock(t)
	u := sampleDomain()

	mock.ExpectQuery(regexp.QuoteMeta(InsertUserInfo)).
		WithArgs(writeArgs(u)...).
		WillReturnRows(pgxmock.NewRows(resultColumns).AddRow(sampleRow(42)...))

	got, err := repo.Save(context.Background(), u)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, userinfo.GenderMale, got.Gender)
	require.NotNil(t, got.City)
	assert.Equal(t, "Busan", *got.City)
	assert.Nil(t, got.Phone)
	assert.Nil(t, got.UpdatedAt)
	assert.Equal(t, createdAt, got.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Save_InsertUniqueViolation(t *testing.T) {
	mock, repo := newMock(t)
	u := sampleDomain()

	mock.ExpectQuery(regexp.QuoteMeta(InsertUserInfo)).
		WithArgs(writeArgs(u)...).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Save(context.Background(), u)
	require.Error(t, err)
	assert.ErrorIs(t, err, postgres.ErrUniqueViolation)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Save_Update(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface, args []any)
		wantErr error
	}{
		{
			name: "updated",
			setup: func(mock pgxmock.PgxPoolIface, args []any) {
				mock.ExpectQuery(regexp.QuoteMeta(UpdateUserInfoByID)).
					WithArgs(args...).
					WillReturnRows(pgxmock.NewRows(resultColumns).AddRow(sampleRow(5)...))
			},
		},
		{
			name: "row vanished",
			setup: func(mock pgxmock.PgxPoolIface, args []any) {
				mock.ExpectQuery(regexp.QuoteMeta(UpdateUserInfoByID)).
					WithArgs(args...).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: userinfo.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, repo := newMock(t)
			u := sampleDomain()
			u.ID = 5
			tt.setup(mock, append(writeArgs(u), u.ID))

			got, err := repo.Save(context.Background(), u)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(5), got.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindByID(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
		wantAny bool
	}{
		{
			name: "found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(SelectUserInfoByID)).
					WithArgs(int64(9)).
					WillReturnRows(pgxmock.NewRows(resultColumns).AddRow(sampleRow(9)...))
			},
		},
		{
			name: "not found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(SelectUserInfoByID)).
					WithArgs(int64(9)).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: userinfo.ErrNotFound,
		},
		{
			name: "driver error",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(SelectUserInfoByID)).
					WithArgs(int64(9)).
					WillReturnError(errors.New("connection reset"))
			},
			wantAny: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, repo := newMock(t)
			tt.setup(mock)

			got, err := repo.FindByID(context.Background(), 9)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantAny:
				require.Error(t, err)
				assert.NotErrorIs(t, err, userinfo.ErrNotFound)
			default:
				require.NoError(t, err)
				assert.Equal(t, int64(9), got.ID)
				assert.Equal(t, "al", got.Alias)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindAll(t *testing.T) {
	mock, repo := newMock(t)

	p := userinfo.Pageable{
		Page: 1,
		Size: 2,
		Sort: []userinfo.Order{{Property: "lastname", Direction: userinfo.Desc}},
	}
	mock.ExpectQuery(regexp.QuoteMeta(fmt.Sprintf(SelectUserInfos, "lastname DESC, id ASC"))).
		WithArgs(2, 2).
		WillReturnRows(pgxmock.NewRows(resultColumns).
			AddRow(sampleRow(3)...).
			AddRow(sampleRow(4)...))

	got, err := repo.FindAll(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, int64(4), got[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindAll_InvalidSort(t *testing.T) {
	mock, repo := newMock(t)

	_, err := repo.FindAll(context.Background(), userinfo.Pageable{
		Size: 20,
		Sort: []userinfo.Order{{Property: "password; DROP TABLE user_info", Direction: userinfo.Asc}},
	})
	assert.ErrorIs(t, err, userinfo.ErrInvalidSort)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ExistsByID(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(ExistsUserInfoByID)).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.ExistsByID(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteByID(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{"deleted", 1, true},
		{"absent id is a no-op", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, repo := newMock(t)
			mock.ExpectExec(regexp.QuoteMeta(DeleteUserInfoByID)).
				WithArgs(int64(3)).
				WillReturnResult(pgxmock.NewResult("DELETE", tt.affected))

			deleted, err := repo.DeleteByID(context.Background(), 3)
			require.NoError(t, err)
			assert.Equal(t, tt.want, deleted)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Count(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(CountUserInfos)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(17)))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(17), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderClause(t *testing.T) {
	got, err := orderClause(nil)
	require.NoError(t, err)
	assert.Equal(t, "id ASC", got)

	got, err = orderClause([]userinfo.Order{{Property: "id", Direction: userinfo.Desc}})
	require.NoError(t, err)
	assert.Equal(t, "id DESC", got)

	got, err = orderClause([]userinfo.Order{
		{Property: "createdAt", Direction: userinfo.Desc},
		{Property: "addressLine1", Direction: userinfo.Asc},
	})
	require.NoError(t, err)
	assert.Equal(t, "created_at DESC, address_line_1 ASC, id ASC", got)
}
