package userinfo

const (
	DefaultPageSize = 20
	MaxPageSize     = 2000
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Order is one "sort=property,direction" term; Property is the JSON field name.
type Order struct {
	Property  string
	Direction Direction
}

// Pageable is a zero-based page request.
type Pageable struct {
	Page int
	Size int
	Sort []Order
}

func (p Pageable) Offset() int { return p.Page * p.Size }

type Page struct {
	Items    UserInfos
	Total    int64
	Pageable Pageable
}

func (p Page) TotalPages() int {
	if p.Pageable.Size <= 0 {
		return 1
	}
	n := int((p.Total + int64(p.Pageable.Size) - 1) / int64(p.Pageable.Size))
	if n == 0 {
		return 1
	}
	return n
}

func (p Page) HasNext() bool { return p.Pageable.Page+1 < p.TotalPages() }
func (p Page) HasPrev() bool { return p.Pageable.Page > 0 }
