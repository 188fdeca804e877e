package feed

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// Config is supplier feed endpoint configuration.
type Config struct {
	BaseURL         string
	PriceList       string
	Token           string
	DaysBack        int
	PageSize        int
	Variations      bool
	VariationImages bool
}

// PageURL returns url of feed page starting at offset.
func (c Config) PageURL(offset int, now time.Time) (string, error) {
	u, query, err := c.base()
	if err != nil {
		return "", err
	}

	if c.PriceList != "" {
		query.Set("listino", c.PriceList)
	}
	query.Set("limit", strconv.Itoa(c.PageSize))
	query.Set("offset", strconv.Itoa(offset))

	if c.DaysBack > 0 {
		query.Set("dal", now.AddDate(0, 0, -c.DaysBack).Format(dateLayout))
		query.Set("al", now.Format(dateLayout))
	}
	if c.Variations {
		query.Set("varianti", "1")
		if c.VariationImages {
			query.Set("img_varianti", "1")
		}
	}

	u.RawQuery = query.Encode()

	return u.String(), nil
}

// SKUsURL returns url of sku-only feed batch starting at offset.
func (c Config) SKUsURL(offset, limit int) (string, error) {
	u, query, err := c.base()
	if err != nil {
		return "", err
	}

	if c.PriceList != "" {
		query.Set("listino", c.PriceList)
	}
	query.Set("solo_codici", "1")
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	u.RawQuery = query.Encode()

	return u.String(), nil
}

func (c Config) base() (*url.URL, url.Values, error) {
	if c.BaseURL == "" {
		return nil, nil, ErrNoBaseURL
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("can't parse feed base url: %w", err)
	}

	query := u.Query()
	if c.Token != "" {
		query.Set("token", c.Token)
	}

	return u, query, nil
}
