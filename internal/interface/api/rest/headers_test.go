package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"userinfo-service/internal/domain/userinfo"
)

func TestSetPaginationHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		target   string
		page     userinfo.Page
		wantLink string
	}{
		{
			name:   "first of three",
			target: "/api/user-infos?page=0&size=2&sort=alias,desc",
			page:   userinfo.Page{Total: 5, Pageable: userinfo.Pageable{Page: 0, Size: 2}},
			wantLink: `</api/user-infos?page=1&size=2&sort=alias%2Cdesc>; rel="next",` +
				`</api/user-infos?page=2&size=2&sort=alias%2Cdesc>; rel="last",` +
				`</api/user-infos?page=0&size=2&sort=alias%2Cdesc>; rel="first"`,
		},
		{
			name:   "middle",
			target: "/api/user-infos/_search?query=a&page=1&size=2",
			page:   userinfo.Page{Total: 5, Pageable: userinfo.Pageable{Page: 1, Size: 2}},
			wantLink: `</api/user-infos/_search?page=2&query=a&size=2>; rel="next",` +
				`</api/user-infos/_search?page=0&query=a&size=2>; rel="prev",` +
				`</api/user-infos/_search?page=2&query=a&size=2>; rel="last",` +
				`</api/user-infos/_search?page=0&query=a&size=2>; rel="first"`,
		},
		{
			name:   "empty",
			target: "/api/user-infos",
			page:   userinfo.Page{Total: 0, Pageable: userinfo.Pageable{Page: 0, Size: 20}},
			wantLink: `</api/user-infos?page=0&size=20>; rel="last",` +
				`</api/user-infos?page=0&size=20>; rel="first"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rr)
			c.Request = httptest.NewRequest(http.MethodGet, tt.target, nil)

			setPaginationHeaders(c, tt.page)

			assert.Equal(t, tt.wantLink, rr.Header().Get(HeaderLink))
		})
	}
}

func TestSetAlert(t *testing.T) {
	rr := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rr)

	setAlert(c, "created", 12)

	assert.Equal(t, "userinfo.userInfo.created", rr.Header().Get(HeaderAlert))
	assert.Equal(t, "12", rr.Header().Get(HeaderParams))
}
