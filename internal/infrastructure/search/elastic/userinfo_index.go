package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"userinfo-service/internal/domain/userinfo"
)

var (
	// ErrIndex wraps every failure reported by the search backend.
	ErrIndex = errors.New("search index error")
	// ErrBadQuery is returned when the backend rejects the query string.
	ErrBadQuery = errors.New("invalid search query")
)

type UserInfoIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewUserInfoIndex(es *elasticsearch.Client, index string) *UserInfoIndex {
	return &UserInfoIndex{es: es, index: index}
}

// EnsureIndex creates the index with its explicit mapping when it does not exist yet.
func (ix *UserInfoIndex) EnsureIndex(ctx context.Context) error {
	res, err := ix.es.Indices.Exists([]string{ix.index}, ix.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%w: exists %s: %v", ErrIndex, ix.index, err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("%w: exists %s: %s", ErrIndex, ix.index, res.Status())
	}

	res, err = ix.es.Indices.Create(
		ix.index,
		ix.es.Indices.Create.WithContext(ctx),
		ix.es.Indices.Create.WithBody(strings.NewReader(indexMapping)),
	)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrIndex, ix.index, err)
	}
	defer res.Body.Close()
	// another replica may have created it concurrently
	if res.IsError() && !strings.Contains(readBody(res.Body), "resource_already_exists_exception") {
		return fmt.Errorf("%w: create %s: %s", ErrIndex, ix.index, res.Status())
	}

	return nil
}

func (ix *UserInfoIndex) Index(ctx context.Context, u *userinfo.UserInfo) error {
	if !u.HasID() {
		return userinfo.ErrIDRequired
	}
	b, err := json.Marshal(toDocument(u))
	if err != nil {
		return err
	}

	res, err := ix.es.Index(
		ix.index,
		bytes.NewReader(b),
		ix.es.Index.WithContext(ctx),
		ix.es.Index.WithDocumentID(strconv.FormatInt(u.ID, 10)),
	)
	if err != nil {
		return fmt.Errorf("%w: index %d: %v", ErrIndex, u.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("index", res)
	}

	return nil
}

// DeleteByID removes the document; a missing document is not an error.
func (ix *UserInfoIndex) DeleteByID(ctx context.Context, id userinfo.ID) error {
	res, err := ix.es.Delete(
		ix.index,
		strconv.FormatInt(id, 10),
		ix.es.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("%w: delete %d: %v", ErrIndex, id, err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("delete", res)
	}

	return nil
}

type searchRequest struct {
	Query struct {
		QueryString struct {
			Query string `json:"query"`
		} `json:"query_string"`
	} `json:"query"`
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source document `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search runs a query_string query; hits come back in relevance order.
func (ix *UserInfoIndex) Search(ctx context.Context, query string, p userinfo.Pageable) (userinfo.Page, error) {
	page := userinfo.Page{Pageable: p, Items: userinfo.UserInfos{}}

	var req searchRequest
	req.Query.QueryString.Query = query
	b, err := json.Marshal(req)
	if err != nil {
		return page, err
	}

	res, err := ix.es.Search(
		ix.es.Search.WithContext(ctx),
		ix.es.Search.WithIndex(ix.index),
		ix.es.Search.WithBody(bytes.NewReader(b)),
		ix.es.Search.WithFrom(p.Offset()),
		ix.es.Search.WithSize(p.Size),
		ix.es.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return page, fmt.Errorf("%w: search: %v", ErrIndex, err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return page, nil
	}
	if res.IsError() {
		return page, responseError("search", res)
	}

	var sr searchResponse
	if err = json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return page, fmt.Errorf("%w: decode search response: %v", ErrIndex, err)
	}

	page.Total = sr.Hits.Total.Value
	for _, h := range sr.Hits.Hits {
		page.Items = append(page.Items, h.Source.toDomain())
	}

	return page, nil
}

func (ix *UserInfoIndex) Count(ctx context.Context) (int64, error) {
	res, err := ix.es.Count(
		ix.es.Count.WithContext(ctx),
		ix.es.Count.WithIndex(ix.index),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: count: %v", ErrIndex, err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return 0, nil
	}
	if res.IsError() {
		return 0, responseError("count", res)
	}

	var cr struct {
		Count int64 `json:"count"`
	}
	if err = json.NewDecoder(res.Body).Decode(&cr); err != nil {
		return 0, fmt.Errorf("%w: decode count response: %v", ErrIndex, err)
	}

	return cr.Count, nil
}

func responseError(op string, res *esapi.Response) error {
	var e struct {
		Error struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	}
	_ = json.NewDecoder(res.Body).Decode(&e)

	if res.StatusCode == http.StatusBadRequest && op == "search" {
		return fmt.Errorf("%w: %s", ErrBadQuery, e.Error.Reason)
	}

	return fmt.Errorf("%w: %s: %s %s: %s", ErrIndex, op, res.Status(), e.Error.Type, e.Error.Reason)
}

func readBody(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 4<<10))
	return string(b)
}
