// Package openfoodfacts talks to the public Open Food Facts HTTP API.
package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the French mirror the data set is sampled from.
const DefaultBaseURL = "https://fr.openfoodfacts.org"

// CategoryTag is one entry of the category taxonomy listing.
type CategoryTag struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Products int    `json:"products"`
	ID       string `json:"id"`
}

type categoriesResponse struct {
	Tags []CategoryTag `json:"tags"`
}

// ProductPayload is one raw product record from the search endpoint. The
// required text fields are pointers so that an absent key is distinguishable
// from an empty value.
type ProductPayload struct {
	ProductName     *string `json:"product_name"`
	Brands          *string `json:"brands"`
	Code            *string `json:"code"`
	IngredientsText *string `json:"ingredients_text"`
	ImageURL        *string `json:"image_url"`
	NutritionGrades *string `json:"nutrition_grades"`
	Categories      string  `json:"categories"`
}

type searchResponse struct {
	Products []ProductPayload `json:"products"`
}

// Client calls the Open Food Facts API with a bounded retry policy. The
// upstream offers no availability contract, so transient network errors and
// 5xx responses are retried with doubling backoff before giving up.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		maxRetries: 3,
		backoff:    500 * time.Millisecond,
	}
}

// Categories fetches the category taxonomy listing.
func (c *Client) Categories(ctx context.Context) ([]CategoryTag, error) {
	var decoded categoriesResponse
	if err := c.getJSON(ctx, c.baseURL+"/categories.json", &decoded); err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	return decoded.Tags, nil
}

// SearchByCategory fetches up to pageSize products tagged with the given
// category id.
func (c *Client) SearchByCategory(ctx context.Context, categoryID string, pageSize int) ([]ProductPayload, error) {
	params := url.Values{
		"action":         {"process"},
		"tagtype_0":      {"categories"},
		"tag_contains_0": {"contains"},
		"tag_0":          {categoryID},
		"page_size":      {strconv.Itoa(pageSize)},
		"json":           {"1"},
	}

	var decoded searchResponse
	if err := c.getJSON(ctx, c.baseURL+"/cgi/search.pl?"+params.Encode(), &decoded); err != nil {
		return nil, fmt.Errorf("search category %q: %w", categoryID, err)
	}
	return decoded.Products, nil
}

// ProductURL builds the public product page link for an item code.
func (c *Client) ProductURL(code string) string {
	return c.baseURL + "/produit/" + code
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	var lastErr error
	backoff := c.backoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
			backoff *= 2
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("upstream returned status %d", resp.StatusCode)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return fmt.Errorf("upstream returned status %d", resp.StatusCode)
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	return fmt.Errorf("giving up after %d attempts: %w", c.maxRetries+1, lastErr)
}
