package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/su-gabriel/ScreenlistApp/internal/apperrors"
	"github.com/su-gabriel/ScreenlistApp/internal/models"
)

const (
	defaultBaseURL  = "https://api.themoviedb.org/3"
	defaultTimeout  = 15 * time.Second
	maxRetries      = 3
	retryDelay      = 2 * time.Second
	maxResponseSize = 5 * 1024 * 1024

	detailsCachePrefix = "catalog:details:"
	searchCachePrefix  = "catalog:search:"
	listCachePrefix    = "catalog:list:"
	genresCacheKey     = "catalog:genres:tv"

	detailsCacheTTL = 24 * time.Hour
	searchCacheTTL  = 4 * time.Hour
	listCacheTTL    = 30 * time.Minute
	genresCacheTTL  = 24 * time.Hour
)

// Client wraps the TMDb HTTP API. An empty API key is allowed: every call
// then fails with an external-service error instead of crashing the process.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
	redis      *redis.Client
}

type ClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// RateLimit caps outgoing requests per second; zero means no limit.
	RateLimit float64
	Logger    *logrus.Logger
	Redis     *redis.Client
}

func NewClient(config *ClientConfig) *Client {
	if config.Logger == nil {
		config.Logger = logrus.New()
	}
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}

	var limiter *rate.Limiter
	if config.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), 1)
	}

	return &Client{
		baseURL: config.BaseURL,
		apiKey:  config.APIKey,
		httpClient: &http.Client{
			Timeout: config.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: limiter,
		logger:  config.Logger,
		redis:   config.Redis,
	}
}

// ShowDetails fetches a TV show with credits, videos, similar shows and watch
// providers appended.
func (c *Client) ShowDetails(ctx context.Context, tmdbID int) (*models.TMDBTVShowDetails, error) {
	cacheKey := detailsCachePrefix + strconv.Itoa(tmdbID)

	var details models.TMDBTVShowDetails
	if c.readCache(ctx, cacheKey, &details) {
		return &details, nil
	}

	body, err := c.fetch(ctx, fmt.Sprintf("/tv/%d", tmdbID), url.Values{
		"append_to_response": {"credits,videos,recommendations,similar,watch/providers"},
	})
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, fmt.Errorf("failed to decode show details: %w", err)
	}

	c.writeCache(ctx, cacheKey, &details, detailsCacheTTL)
	return &details, nil
}

// SearchShows searches TV shows by free-text query.
func (c *Client) SearchShows(ctx context.Context, query string, page int) (*models.TMDBPaginatedTVShows, error) {
	cacheKey := searchCachePrefix + strconv.Itoa(page) + ":" + query

	var result models.TMDBPaginatedTVShows
	if c.readCache(ctx, cacheKey, &result) {
		return &result, nil
	}

	body, err := c.fetch(ctx, "/search/tv", url.Values{
		"query": {query},
		"page":  {strconv.Itoa(page)},
	})
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	c.writeCache(ctx, cacheKey, &result, searchCacheTTL)
	return &result, nil
}

// DiscoverByGenre lists popular TV shows carrying the given genre.
func (c *Client) DiscoverByGenre(ctx context.Context, genreID, page int) (*models.TMDBPaginatedTVShows, error) {
	return c.fetchShowList(ctx, "/discover/tv", url.Values{
		"with_genres": {strconv.Itoa(genreID)},
		"sort_by":     {"popularity.desc"},
		"page":        {strconv.Itoa(page)},
	})
}

// TrendingShows lists this week's trending TV shows.
func (c *Client) TrendingShows(ctx context.Context) (*models.TMDBPaginatedTVShows, error) {
	return c.fetchShowList(ctx, "/trending/tv/week", nil)
}

// TopRatedShows lists the top-rated TV shows.
func (c *Client) TopRatedShows(ctx context.Context) (*models.TMDBPaginatedTVShows, error) {
	return c.fetchShowList(ctx, "/tv/top_rated", nil)
}

// PopularShows lists currently popular TV shows.
func (c *Client) PopularShows(ctx context.Context) (*models.TMDBPaginatedTVShows, error) {
	return c.fetchShowList(ctx, "/tv/popular", nil)
}

// TVGenres returns the catalog's TV genre reference list.
func (c *Client) TVGenres(ctx context.Context) ([]models.TMDBGenre, error) {
	var list models.TMDBGenreList
	if c.readCache(ctx, genresCacheKey, &list) {
		return list.Genres, nil
	}

	body, err := c.fetch(ctx, "/genre/tv/list", nil)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("failed to decode genre list: %w", err)
	}

	c.writeCache(ctx, genresCacheKey, &list, genresCacheTTL)
	return list.Genres, nil
}

func (c *Client) fetchShowList(ctx context.Context, endpoint string, params url.Values) (*models.TMDBPaginatedTVShows, error) {
	cacheKey := listCachePrefix + endpoint
	if params != nil {
		cacheKey += "?" + params.Encode()
	}

	var result models.TMDBPaginatedTVShows
	if c.readCache(ctx, cacheKey, &result) {
		return &result, nil
	}

	body, err := c.fetch(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode show list: %w", err)
	}

	c.writeCache(ctx, cacheKey, &result, listCacheTTL)
	return &result, nil
}

func (c *Client) fetch(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: catalog API key is not configured", apperrors.ErrExternalService)
	}

	query := url.Values{}
	for key, values := range params {
		query[key] = values
	}
	query.Set("api_key", c.apiKey)
	query.Set("language", "en-US")

	requestURL := c.baseURL + endpoint + "?" + query.Encode()

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("%w: %v", apperrors.ErrExternalService, err)
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			c.retryLogger(attempt, endpoint, err)
			c.waitForRetry(ctx, attempt)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
			resp.Body.Close()
			lastErr = fmt.Errorf("catalog API returned status %d", resp.StatusCode)
			c.retryLogger(attempt, endpoint, lastErr)
			c.waitForRetry(ctx, attempt)
			continue
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response body: %w", err)
			c.retryLogger(attempt, endpoint, err)
			c.waitForRetry(ctx, attempt)
			continue
		}
		if len(body) > maxResponseSize {
			return nil, fmt.Errorf("%w: response too large", apperrors.ErrExternalService)
		}

		c.logger.WithFields(logrus.Fields{
			"endpoint":      endpoint,
			"attempt":       attempt,
			"response_size": len(body),
		}).Debug("Catalog request successful")

		return body, nil
	}

	return nil, fmt.Errorf("%w: %d attempts to %s failed: %v", apperrors.ErrExternalService, maxRetries, endpoint, lastErr)
}

func (c *Client) retryLogger(attempt int, endpoint string, err error) {
	c.logger.WithFields(logrus.Fields{
		"attempt":  attempt + 1,
		"endpoint": endpoint,
		"error":    err.Error(),
	}).Warn("Catalog request failed, retrying...")
}

func (c *Client) waitForRetry(ctx context.Context, attempt int) {
	if attempt >= maxRetries-1 {
		return
	}
	delay := time.Duration(attempt+1) * retryDelay
	select {
	case <-time.After(delay):
	case <-ctx.Done():
	}
}

func (c *Client) readCache(ctx context.Context, key string, out any) bool {
	if c.redis == nil {
		return false
	}
	cached, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.WithError(err).Warn("Failed to read from Redis")
		}
		return false
	}
	if err := json.Unmarshal([]byte(cached), out); err != nil {
		c.logger.WithError(err).Warn("Failed to unmarshal cached catalog response")
		return false
	}
	return true
}

func (c *Client) writeCache(ctx context.Context, key string, value any, ttl time.Duration) {
	if c.redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.WithError(err).Warn("Failed to marshal catalog response for caching")
		return
	}
	if err := c.redis.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.WithError(err).Warn("Failed to write catalog response to cache")
	}
}
