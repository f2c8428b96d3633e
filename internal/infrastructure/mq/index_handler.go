package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"userinfo-service/internal/domain/userinfo"
	dto "userinfo-service/internal/interface/api/rest/dto/userinfo"
	"userinfo-service/pkg/rmqconsumer"
)

// NewIndexHandler applies mirror events to the search index. Events that can
// never succeed are wrapped with rmqconsumer.ErrReject.
func NewIndexHandler(ix userinfo.SearchIndex) rmqconsumer.Handler {
	return func(ctx context.Context, routingKey string, body []byte) error {
		var e Event
		if err := json.Unmarshal(body, &e); err != nil {
			return fmt.Errorf("%w: decode event: %v", rmqconsumer.ErrReject, err)
		}
		if e.EntityID <= 0 {
			return fmt.Errorf("%w: event %s has no entity id", rmqconsumer.ErrReject, e.Id)
		}

		method := e.Method
		if method == "" {
			method = routingKey
		}

		switch method {
		case http.MethodPut:
			if e.Payload == nil {
				return fmt.Errorf("%w: upsert event %s has no payload", rmqconsumer.ErrReject, e.Id)
			}
			u := dto.ToDomainUserInfo(*e.Payload)
			u.ID = e.EntityID
			return ix.Index(ctx, u)
		case http.MethodDelete:
			return ix.DeleteByID(ctx, e.EntityID)
		default:
			return fmt.Errorf("%w: unknown event action %q", rmqconsumer.ErrReject, method)
		}
	}
}
