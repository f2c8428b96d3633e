package rest

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"userinfo-service/internal/domain/userinfo"
)

const (
	HeaderTotalCount = "X-Total-Count"
	HeaderLink       = "Link"
	HeaderAlert      = "X-userinfo-alert"
	HeaderParams     = "X-userinfo-params"

	alertPrefix = "userinfo.userInfo."
)

func setAlert(c *gin.Context, action string, id userinfo.ID) {
	c.Header(HeaderAlert, alertPrefix+action)
	c.Header(HeaderParams, strconv.FormatInt(id, 10))
}

// setPaginationHeaders writes X-Total-Count and an RFC 5988 Link header whose
// URLs keep every query parameter of the request except page and size.
func setPaginationHeaders(c *gin.Context, page userinfo.Page) {
	c.Header(HeaderTotalCount, strconv.FormatInt(page.Total, 10))

	p := page.Pageable
	last := page.TotalPages() - 1

	links := make([]string, 0, 4)
	if page.HasNext() {
		links = append(links, pageLink(c.Request.URL, p.Page+1, p.Size, "next"))
	}
	if page.HasPrev() {
		links = append(links, pageLink(c.Request.URL, p.Page-1, p.Size, "prev"))
	}
	links = append(links,
		pageLink(c.Request.URL, last, p.Size, "last"),
		pageLink(c.Request.URL, 0, p.Size, "first"),
	)

	c.Header(HeaderLink, strings.Join(links, ","))
}

func pageLink(u *url.URL, page, size int, rel string) string {
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	target := url.URL{Path: u.Path, RawQuery: q.Encode()}

	return fmt.Sprintf(`<%s>; rel="%s"`, target.String(), rel)
}
