package rest

const (
	// api
	RouteApi = "/api"

	RouteUserInfos      = RouteApi + "/user-infos"
	RouteUserInfo       = RouteUserInfos + "/:id"
	RouteUserInfoSearch = RouteUserInfos + "/_search"

	// ops
	RouteManagement = "/management"
	RouteHealth     = RouteManagement + "/health"
	RouteMetrics    = RouteManagement + "/metrics"
	RouteSearchSync = RouteManagement + "/search-sync"
)
