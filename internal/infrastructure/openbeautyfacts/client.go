package openbeautyfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/skinsight/backend/internal/domain"
	"golang.org/x/time/rate"
)

// searchFields limits the search payload to the fields the mapper consumes
const searchFields = "code,product_name,brands,image_url,image_small_url," +
	"image_front_url,ingredients_text,ingredients_text_en,quantity," +
	"categories_tags,labels_tags,allergens_tags,traces_tags,additives_tags," +
	"nutrition_grades,nova_group,ecoscore_grade,last_modified_t,created_t"

const maxErrorBodyBytes = 4096

// Client handles communication with the Open Beauty Facts API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new Open Beauty Facts API client
func NewClient(baseURL, userAgent string) *Client {
	// Open Beauty Facts asks unauthenticated clients to stay well under
	// 100 search requests per minute
	limiter := rate.NewLimiter(rate.Limit(1.5), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		userAgent:   userAgent,
		rateLimiter: limiter,
	}
}

// SetDebug enables or disables verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

func (c *Client) debugLog(format string, args ...interface{}) {
	if c.debug {
		log.Printf("[OBF] "+format, args...)
	}
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
	}

	return resp, nil
}

// Search runs a free-text search against the catalog and returns the raw
// records of the requested page. An empty or whitespace-only query
// short-circuits to an empty result without a network call.
func (c *Client) Search(ctx context.Context, query string, page, pageSize int) ([]domain.RawProductRecord, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	endpoint := fmt.Sprintf("%s/cgi/search.pl", c.baseURL)
	params := url.Values{}
	params.Add("search_terms", query)
	params.Add("search_simple", "1")
	params.Add("action", "process")
	params.Add("json", "1")
	params.Add("page", strconv.Itoa(page))
	params.Add("page_size", strconv.Itoa(pageSize))
	params.Add("fields", searchFields)

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())
	c.debugLog("Search %q page=%d page_size=%d", query, page, pageSize)

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := readLimitedBody(resp.Body, maxErrorBodyBytes)
		log.Printf("[OBF] Search error - Status: %d, Body: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("%w: status %d", domain.ErrInvalidResponse, resp.StatusCode)
	}

	var envelope domain.SearchEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrInvalidResponse, err)
	}

	// Decode record-by-record so one malformed product does not fail the batch
	records := make([]domain.RawProductRecord, 0, len(envelope.Products))
	for _, raw := range envelope.Products {
		var record domain.RawProductRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			c.debugLog("dropping undecodable record: %v", err)
			continue
		}
		records = append(records, record)
	}

	c.debugLog("Search %q returned %d records", query, len(records))
	return records, nil
}

// FetchByCode looks a product up by barcode. Both a 404 response and a
// status!=1 envelope are valid "not found" outcomes and return (nil, nil).
func (c *Client) FetchByCode(ctx context.Context, barcode string) (*domain.RawProductRecord, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, nil
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	reqURL := fmt.Sprintf("%s/api/v2/product/%s.json", c.baseURL, url.PathEscape(barcode))
	c.debugLog("FetchByCode %q", barcode)

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := readLimitedBody(resp.Body, maxErrorBodyBytes)
		log.Printf("[OBF] FetchByCode error - Status: %d, Body: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("%w: status %d", domain.ErrInvalidResponse, resp.StatusCode)
	}

	var envelope domain.LookupEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrInvalidResponse, err)
	}

	if envelope.Status != 1 || len(envelope.Product) == 0 {
		return nil, nil
	}

	var record domain.RawProductRecord
	if err := json.Unmarshal(envelope.Product, &record); err != nil {
		return nil, fmt.Errorf("%w: failed to decode product: %v", domain.ErrInvalidResponse, err)
	}

	return &record, nil
}

// readLimitedBody reads at most limit bytes from a response body
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}
