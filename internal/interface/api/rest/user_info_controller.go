package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"userinfo-service/internal/application/ports"
	"userinfo-service/internal/domain/userinfo"
	"userinfo-service/internal/infrastructure/jwt"
	"userinfo-service/internal/infrastructure/search/elastic"
	dto "userinfo-service/internal/interface/api/rest/dto/userinfo"
	"userinfo-service/internal/interface/api/rest/middleware"
	"userinfo-service/internal/interface/api/rest/validator"
)

const (
	ContentTypeJSON       = "application/json"
	ContentTypeMergePatch = "application/merge-patch+json"
)

type UserInfoController struct {
	userInfoService ports.UserInfoService
	logger          *zap.Logger
}

func NewUserInfoController(
	r *gin.Engine,
	userInfoService ports.UserInfoService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *UserInfoController {
	uc := &UserInfoController{
		userInfoService: userInfoService,
		logger:          logger,
	}

	auth := middleware.AuthMiddleware(jwtService)

	r.GET(RouteUserInfos, auth, uc.GetUserInfosHandler)
	r.GET(RouteUserInfoSearch, auth, uc.SearchUserInfosHandler)
	r.GET(RouteUserInfo, auth, uc.GetUserInfoHandler)
	r.POST(RouteUserInfos, auth, uc.CreateUserInfoHandler)
	r.PUT(RouteUserInfo, auth, uc.UpdateUserInfoHandler)
	r.PATCH(RouteUserInfo, auth, uc.PatchUserInfoHandler)
	r.DELETE(RouteUserInfo, auth, uc.DeleteUserInfoHandler)

	return uc
}

func (uc *UserInfoController) GetUserInfosHandler(c *gin.Context) {
	p, err := validator.ParsePageable(c.Query("page"), c.Query("size"), c.QueryArray("sort"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := uc.userInfoService.FindAll(c.Request.Context(), p)
	if err != nil {
		if errors.Is(err, userinfo.ErrInvalidSort) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get user infos"},
		)
		uc.logger.Error("FindAll() error", zap.Error(err))
		return
	}

	setPaginationHeaders(c, page)
	c.JSON(http.StatusOK, dto.ToResponseUserInfos(page.Items))
}

func (uc *UserInfoController) GetUserInfoHandler(c *gin.Context) {
	id, ok := validator.ParseID(c.Param("id"))
	if !ok {
		badID(c, "idinvalid")
		return
	}

	u, err := uc.userInfoService.FindOne(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, userinfo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user info not found"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a user info"},
		)
		uc.logger.Error("FindOne() error", zap.Int64("id", id), zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, dto.ToResponseUserInfo(*u))
}

func (uc *UserInfoController) CreateUserInfoHandler(c *gin.Context) {
	var req dto.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if req.ID != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "a new user info cannot already have an id",
			"details": "idexists",
		})
		return
	}
	req = dto.Normalize(req)
	if errs := validator.ValidateUserInfo(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	u, err := uc.userInfoService.Create(c.Request.Context(), dto.FromRequest(req))
	if err != nil {
		if errors.Is(err, userinfo.ErrIDExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "details": "idexists"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to create a user info"},
		)
		uc.logger.Error("Create() error", zap.Error(err))
		return
	}

	c.Header("Location", RouteUserInfos+"/"+strconv.FormatInt(u.ID, 10))
	setAlert(c, "created", u.ID)
	c.JSON(http.StatusCreated, dto.ToResponseUserInfo(*u))
}

func (uc *UserInfoController) UpdateUserInfoHandler(c *gin.Context) {
	req, id, ok := uc.bindWithID(c)
	if !ok {
		return
	}
	if errs := validator.ValidateUserInfo(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}
	if !uc.exists(c, id) {
		return
	}

	u, err := uc.userInfoService.Update(c.Request.Context(), dto.FromRequest(req))
	if err != nil {
		if errors.Is(err, userinfo.ErrNotFound) {
			badID(c, "idnotfound")
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to update a user info"},
		)
		uc.logger.Error("Update() error", zap.Int64("id", id), zap.Error(err))
		return
	}

	setAlert(c, "updated", u.ID)
	c.JSON(http.StatusOK, dto.ToResponseUserInfo(*u))
}

func (uc *UserInfoController) PatchUserInfoHandler(c *gin.Context) {
	switch c.ContentType() {
	case ContentTypeJSON, ContentTypeMergePatch:
	default:
		c.JSON(http.StatusUnsupportedMediaType, gin.H{
			"error": "content type must be " + ContentTypeMergePatch + " or " + ContentTypeJSON,
		})
		return
	}

	req, id, ok := uc.bindWithID(c)
	if !ok {
		return
	}
	if errs := validator.ValidatePatch(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}
	if !uc.exists(c, id) {
		return
	}

	u, err := uc.userInfoService.PartialUpdate(c.Request.Context(), dto.ToPatch(req))
	if err != nil {
		if errors.Is(err, userinfo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user info not found"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to update a user info"},
		)
		uc.logger.Error("PartialUpdate() error", zap.Int64("id", id), zap.Error(err))
		return
	}

	setAlert(c, "updated", u.ID)
	c.JSON(http.StatusOK, dto.ToResponseUserInfo(*u))
}

func (uc *UserInfoController) DeleteUserInfoHandler(c *gin.Context) {
	id, ok := validator.ParseID(c.Param("id"))
	if !ok {
		badID(c, "idinvalid")
		return
	}

	if err := uc.userInfoService.Delete(c.Request.Context(), id); err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to delete a user info"},
		)
		uc.logger.Error("Delete() error", zap.Int64("id", id), zap.Error(err))
		return
	}

	setAlert(c, "deleted", id)
	c.Status(http.StatusNoContent)
}

func (uc *UserInfoController) SearchUserInfosHandler(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}
	p, err := validator.ParsePageable(c.Query("page"), c.Query("size"), nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := uc.userInfoService.Search(c.Request.Context(), query, p)
	if err != nil {
		if errors.Is(err, elastic.ErrBadQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid search query"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to search user infos"},
		)
		uc.logger.Error("Search() error", zap.String("query", query), zap.Error(err))
		return
	}

	setPaginationHeaders(c, page)
	c.JSON(http.StatusOK, dto.ToResponseUserInfos(page.Items))
}

// bindWithID decodes the body of PUT and PATCH, checks it against the path id
// and returns it normalized. It writes the error response itself.
func (uc *UserInfoController) bindWithID(c *gin.Context) (dto.Request, userinfo.ID, bool) {
	var req dto.Request

	id, ok := validator.ParseID(c.Param("id"))
	if !ok {
		badID(c, "idinvalid")
		return req, 0, false
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return req, 0, false
	}
	if req.ID == nil {
		badID(c, "idnull")
		return req, 0, false
	}
	if *req.ID != id {
		badID(c, "idinvalid")
		return req, 0, false
	}

	return dto.Normalize(req), id, true
}

func (uc *UserInfoController) exists(c *gin.Context, id userinfo.ID) bool {
	ok, err := uc.userInfoService.Exists(c.Request.Context(), id)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a user info"},
		)
		uc.logger.Error("Exists() error", zap.Int64("id", id), zap.Error(err))
		return false
	}
	if !ok {
		badID(c, "idnotfound")
		return false
	}

	return true
}

func badID(c *gin.Context, key string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "invalid id",
		"details": key,
	})
}
