package validator

import (
	"math"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userinfo-service/internal/domain/userinfo"
	dto "userinfo-service/internal/interface/api/rest/dto/userinfo"
)

func ptr[T any](v T) *T { return &v }

func validRequest() dto.Request {
	return dto.Request{
		UserID:    ptr("u1"),
		Firstname: ptr("A"),
		Lastname:  ptr("B"),
		Alias:     ptr("al"),
		Gender:    ptr("MALE"),
		Email:     ptr("a@b.co"),
		CreatedAt: ptr(time.Unix(0, 0).UTC()),
	}
}

func TestValidateUserInfo(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *dto.Request)
		wantKey string
	}{
		{"valid", func(r *dto.Request) {}, ""},
		{"missing userId", func(r *dto.Request) { r.UserID = nil }, "userId"},
		{"missing firstname", func(r *dto.Request) { r.Firstname = nil }, "firstname"},
		{"missing lastname", func(r *dto.Request) { r.Lastname = nil }, "lastname"},
		{"missing alias", func(r *dto.Request) { r.Alias = nil }, "alias"},
		{"missing gender", func(r *dto.Request) { r.Gender = nil }, "gender"},
		{"missing email", func(r *dto.Request) { r.Email = nil }, "email"},
		{"missing createdAt", func(r *dto.Request) { r.CreatedAt = nil }, "createdAt"},
		{"bad gender", func(r *dto.Request) { r.Gender = ptr("male") }, "gender"},
		{"email without at", func(r *dto.Request) { r.Email = ptr("ab.co") }, "email"},
		{"email without tld", func(r *dto.Request) { r.Email = ptr("a@b") }, "email"},
		{"email with space", func(r *dto.Request) { r.Email = ptr("a b@c.de") }, "email"},
		{"alias too long", func(r *dto.Request) { r.Alias = ptr(strings.Repeat("x", 101)) }, "alias"},
		{"phone too long", func(r *dto.Request) { r.Phone = ptr(strings.Repeat("1", 16)) }, "phone"},
		{"address too long", func(r *dto.Request) { r.AddressLine2 = ptr(strings.Repeat("x", 256)) }, "addressLine2"},
		{"multibyte at limit", func(r *dto.Request) { r.City = ptr(strings.Repeat("é", 100)) }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRequest()
			tt.mutate(&r)

			errs := ValidateUserInfo(r)
			if tt.wantKey == "" {
				assert.Nil(t, errs)
				return
			}
			require.NotNil(t, errs)
			assert.Contains(t, errs, tt.wantKey)
		})
	}
}

func TestValidateUserInfo_LimitsApplyAfterNormalization(t *testing.T) {
	// U+0958 decomposes under NFC, so 100 of them become 200 runes
	r := validRequest()
	r.Alias = ptr(strings.Repeat("\u0958", 100))
	require.Nil(t, ValidateUserInfo(r))

	errs := ValidateUserInfo(dto.Normalize(r))
	assert.Contains(t, errs, "alias")

	p := dto.Normalize(dto.Request{ID: ptr(int64(1)), City: ptr(strings.Repeat("\u0958", 60))})
	assert.Contains(t, ValidatePatch(p), "city")
}

func TestValidatePatch(t *testing.T) {
	assert.Nil(t, ValidatePatch(dto.Request{ID: ptr(int64(1)), Alias: ptr("X")}))
	assert.Nil(t, ValidatePatch(dto.Request{}))

	errs := ValidatePatch(dto.Request{Email: ptr("nope"), Gender: ptr("x")})
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "gender")
}

func TestParseID(t *testing.T) {
	id, ok := ParseID("42")
	assert.True(t, ok)
	assert.Equal(t, userinfo.ID(42), id)

	for _, s := range []string{"", "0", "-1", "abc", "1.5"} {
		_, ok = ParseID(s)
		assert.False(t, ok, s)
	}
}

func TestParsePageable(t *testing.T) {
	tests := []struct {
		name    string
		page    string
		size    string
		sorts   []string
		want    userinfo.Pageable
		wantErr error
	}{
		{
			name: "defaults",
			want: userinfo.Pageable{Page: 0, Size: userinfo.DefaultPageSize},
		},
		{
			name: "explicit",
			page: "2", size: "5",
			sorts: []string{"alias,desc", "id"},
			want: userinfo.Pageable{Page: 2, Size: 5, Sort: []userinfo.Order{
				{Property: "alias", Direction: userinfo.Desc},
				{Property: "id", Direction: userinfo.Asc},
			}},
		},
		{
			name: "size capped",
			size: "100000",
			want: userinfo.Pageable{Size: userinfo.MaxPageSize},
		},
		{name: "negative page", page: "-1", wantErr: ErrInvalidPage},
		{name: "offset overflow", page: "4611686018427387904", size: "20", wantErr: ErrInvalidPage},
		{name: "max page with zero size", page: strconv.Itoa(math.MaxInt), size: "0", wantErr: ErrInvalidPage},
		{
			name: "large page that fits",
			page: "1000000", size: "2000",
			want: userinfo.Pageable{Page: 1000000, Size: 2000},
		},
		{name: "bad size", size: "ten", wantErr: ErrInvalidSize},
		{name: "bad direction", sorts: []string{"alias,up"}, wantErr: ErrInvalidSort},
		{name: "empty property", sorts: []string{",asc"}, wantErr: ErrInvalidSort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePageable(tt.page, tt.size, tt.sorts)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
