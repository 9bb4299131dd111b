package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/dverenev/priceadmin/internal/client/models"
	"github.com/dverenev/priceadmin/internal/client/transport"
)

const epPriceLists = "/price-lists"

// PriceListAPI talks to the /price-lists endpoints.
type PriceListAPI struct {
	t *transport.Client
}

func NewPriceListAPI(t *transport.Client) *PriceListAPI {
	return &PriceListAPI{t: t}
}

// List fetches a page of price lists. The returned count is the total number
// of matching records, not the page size.
func (a *PriceListAPI) List(ctx context.Context, q models.ListQuery) ([]models.PriceList, int, error) {
	params := url.Values{}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.SortBy != "" {
		params.Set("sort_field", string(q.SortBy))
		dir := q.Direction
		if dir == "" {
			dir = models.SortAsc
		}
		params.Set("sort_direction", string(dir))
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if !q.DateFrom.IsZero() {
		params.Set("date_from", q.DateFrom.Format(time.RFC3339))
	}
	if !q.DateTo.IsZero() {
		params.Set("date_to", q.DateTo.Format(time.RFC3339))
	}

	var out []models.PriceList
	env, err := a.t.Get(ctx, epPriceLists, &out, &transport.CallOptions{Query: params})
	if err != nil {
		return nil, 0, err
	}
	count := env.Count
	if count == 0 {
		count = len(out)
	}
	return out, count, nil
}

// Get fetches a single price list by id.
func (a *PriceListAPI) Get(ctx context.Context, id int64) (*models.PriceList, error) {
	var out models.PriceList
	if _, err := a.t.Get(ctx, fmt.Sprintf("%s/%d", epPriceLists, id), &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create creates a price list and returns the server-confirmed record.
func (a *PriceListAPI) Create(ctx context.Context, req models.CreatePriceListRequest) (*models.PriceList, error) {
	var out models.PriceList
	if _, err := a.t.Post(ctx, epPriceLists, req, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces the mutable fields of a price list.
func (a *PriceListAPI) Update(ctx context.Context, id int64, req models.UpdatePriceListRequest) (*models.PriceList, error) {
	var out models.PriceList
	if _, err := a.t.Put(ctx, fmt.Sprintf("%s/%d", epPriceLists, id), req, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a price list.
func (a *PriceListAPI) Delete(ctx context.Context, id int64) error {
	_, err := a.t.Delete(ctx, fmt.Sprintf("%s/%d", epPriceLists, id), nil, nil)
	return err
}

type checkNameResponse struct {
	Available bool `json:"available"`
}

// CheckName reports whether name is free. excludeID (>0) skips a record,
// for rename checks during editing.
func (a *PriceListAPI) CheckName(ctx context.Context, name string, excludeID int64) (bool, error) {
	params := url.Values{}
	params.Set("name", name)
	if excludeID > 0 {
		params.Set("exclude_id", strconv.FormatInt(excludeID, 10))
	}

	var out checkNameResponse
	if _, err := a.t.Get(ctx, epPriceLists+"/check-name", &out, &transport.CallOptions{Query: params}); err != nil {
		return false, err
	}
	return out.Available, nil
}
