package handlers

import (
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/ghuser/storecatalog/services/catalog/domain/models"
	"github.com/ghuser/storecatalog/services/catalog/domain/repositories"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pageRequest is the parsed form of ?page=&size=. A nil result means neither
// parameter was given and the caller wants every item.
type pageRequest struct {
	Page int
	Size int
}

func (p pageRequest) queryOpts() *repositories.QueryOpts {
	return &repositories.QueryOpts{Limit: p.Size, Offset: p.Page * p.Size}
}

func parsePage(q url.Values) (*pageRequest, error) {
	rawPage, rawSize := q.Get("page"), q.Get("size")
	if rawPage == "" && rawSize == "" {
		return nil, nil
	}

	p := pageRequest{Page: 0, Size: defaultPageSize}
	if rawPage != "" {
		n, err := strconv.Atoi(rawPage)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("page must be a non-negative integer")
		}
		p.Page = n
	}
	if rawSize != "" {
		n, err := strconv.Atoi(rawSize)
		if err != nil || n < 1 || n > maxPageSize {
			return nil, fmt.Errorf("size must be an integer between 1 and %d", maxPageSize)
		}
		p.Size = n
	}
	// Offsets are 32-bit in the query layer.
	if p.Page > math.MaxInt32/p.Size {
		return nil, fmt.Errorf("page is out of range for size %d", p.Size)
	}
	return &p, nil
}

// parseSearchFilter reads name, minPrice and maxPrice. An absent parameter
// stays nil; a present but empty name counts as given.
func parseSearchFilter(q url.Values) (models.SearchFilter, error) {
	var f models.SearchFilter
	if q.Has("name") {
		name := q.Get("name")
		f.Name = &name
	}

	var err error
	if f.MinPrice, err = optionalDecimal(q, "minPrice"); err != nil {
		return models.SearchFilter{}, err
	}
	if f.MaxPrice, err = optionalDecimal(q, "maxPrice"); err != nil {
		return models.SearchFilter{}, err
	}
	return f, nil
}

func optionalDecimal(q url.Values, key string) (*decimal.Decimal, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be a decimal number", key)
	}
	return &d, nil
}
