package validator

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"userinfo-service/internal/domain/userinfo"
	dto "userinfo-service/internal/interface/api/rest/dto/userinfo"
)

const (
	maxNameLen    = 100
	maxPhoneLen   = 15
	maxAddressLen = 255
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var (
	ErrInvalidPage = errors.New("page must be a non-negative integer")
	ErrInvalidSize = errors.New("size must be a non-negative integer")
	ErrInvalidSort = errors.New("sort must be property[,asc|desc]")
)

func ParseID(s string) (userinfo.ID, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ParsePageable reads the zero-based "page", "size" and repeated "sort"
// query parameters. Size is capped at userinfo.MaxPageSize.
func ParsePageable(page, size string, sorts []string) (userinfo.Pageable, error) {
	p := userinfo.Pageable{Size: userinfo.DefaultPageSize}

	if page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 0 {
			return p, ErrInvalidPage
		}
		p.Page = n
	}
	if size != "" {
		n, err := strconv.Atoi(size)
		if err != nil || n < 0 {
			return p, ErrInvalidSize
		}
		p.Size = min(n, userinfo.MaxPageSize)
	}
	// (page+1)*size must fit in an int for offsets and next-page links
	if p.Page >= (math.MaxInt-p.Size)/max(p.Size, 1) {
		return p, ErrInvalidPage
	}

	for _, s := range sorts {
		prop, dir, _ := strings.Cut(s, ",")
		prop = strings.TrimSpace(prop)
		if prop == "" {
			return p, ErrInvalidSort
		}
		o := userinfo.Order{Property: prop, Direction: userinfo.Asc}
		switch strings.ToLower(strings.TrimSpace(dir)) {
		case "", "asc":
		case "desc":
			o.Direction = userinfo.Desc
		default:
			return p, ErrInvalidSort
		}
		p.Sort = append(p.Sort, o)
	}

	return p, nil
}

// ValidateUserInfo checks a full record for POST and PUT.
func ValidateUserInfo(r dto.Request) map[string]string {
	errs := make(map[string]string)

	required(errs, "userId", r.UserID)
	required(errs, "firstname", r.Firstname)
	required(errs, "lastname", r.Lastname)
	required(errs, "alias", r.Alias)
	required(errs, "gender", r.Gender)
	required(errs, "email", r.Email)
	if r.CreatedAt == nil {
		errs["createdAt"] = "createdAt is required"
	}

	fields(errs, r)

	if len(errs) == 0 {
		return nil
	}

	return errs
}

// ValidatePatch checks only the fields a merge-patch supplies.
func ValidatePatch(r dto.Request) map[string]string {
	errs := make(map[string]string)

	fields(errs, r)

	if len(errs) == 0 {
		return nil
	}

	return errs
}

func required(errs map[string]string, name string, v *string) {
	if v == nil {
		errs[name] = name + " is required"
	}
}

func fields(errs map[string]string, r dto.Request) {
	maxLen(errs, "userId", r.UserID, maxNameLen)
	maxLen(errs, "firstname", r.Firstname, maxNameLen)
	maxLen(errs, "lastname", r.Lastname, maxNameLen)
	maxLen(errs, "alias", r.Alias, maxNameLen)
	maxLen(errs, "email", r.Email, maxNameLen)
	maxLen(errs, "phone", r.Phone, maxPhoneLen)
	maxLen(errs, "addressLine1", r.AddressLine1, maxAddressLen)
	maxLen(errs, "addressLine2", r.AddressLine2, maxAddressLen)
	maxLen(errs, "city", r.City, maxNameLen)
	maxLen(errs, "country", r.Country, maxNameLen)

	if r.Email != nil && errs["email"] == "" && !emailRe.MatchString(*r.Email) {
		errs["email"] = "invalid email format"
	}
	if r.Gender != nil && !userinfo.Gender(*r.Gender).Valid() {
		errs["gender"] = "must be one of MALE, FEMALE, OTHER"
	}
}

func maxLen(errs map[string]string, name string, v *string, n int) {
	if v != nil && utf8.RuneCountInString(*v) > n {
		errs[name] = fmt.Sprintf("%s length must be at most %d characters", name, n)
	}
}
