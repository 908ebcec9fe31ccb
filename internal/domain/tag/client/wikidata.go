package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"catalog_api/internal/pkg/config"
	"catalog_api/pkg/apperr"
	"catalog_api/pkg/logger"
	"catalog_api/pkg/metrics"

	"go.uber.org/zap"
)

// Suggestion 外部实体候选标签
type Suggestion struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	WikidataURL string `json:"wikidata_url"`
}

// TagLookup 外部标签查询
type TagLookup interface {
	Search(ctx context.Context, query string) ([]Suggestion, error)
}

// WikidataClient 调用 wbsearchentities 接口
type WikidataClient struct {
	httpClient *http.Client
	endpoint   string
	language   string
	limit      int
	userAgent  string
	metrics    *metrics.MetricsCollector
}

func NewWikidataClient(cfg config.TagLookupConfig, m *metrics.MetricsCollector) *WikidataClient {
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &WikidataClient{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   cfg.Endpoint,
		language:   cfg.Language,
		limit:      cfg.Limit,
		userAgent:  cfg.UserAgent,
		metrics:    m,
	}
}

type searchResponse struct {
	Search []struct {
		ID          string `json:"id"`
		Label       string `json:"label"`
		Description string `json:"description"`
		ConceptURI  string `json:"concepturi"`
	} `json:"search"`
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

// Search 空白关键字直接返回空列表，不发起请求
func (c *WikidataClient) Search(ctx context.Context, query string) (result []Suggestion, err error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Suggestion{}, nil
	}

	start := time.Now()
	defer func() {
		c.metrics.ObserveTagLookup(time.Since(start), err)
		if err != nil {
			logger.Log.Warn("tag lookup failed", zap.String("query", query), zap.Error(err))
		}
	}()

	params := url.Values{}
	params.Set("action", "wbsearchentities")
	params.Set("search", query)
	params.Set("language", c.language)
	params.Set("uselang", c.language)
	params.Set("type", "item")
	params.Set("format", "json")
	if c.limit > 0 {
		params.Set("limit", strconv.Itoa(c.limit))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, apperr.Upstream("Failed to fetch tags", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.Upstream("Failed to fetch tags", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.Upstream("Failed to fetch tags", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, apperr.Upstream("Failed to fetch tags", err)
	}
	if body.Error != nil {
		return nil, apperr.Upstream("Failed to fetch tags", fmt.Errorf("%s: %s", body.Error.Code, body.Error.Info))
	}

	result = make([]Suggestion, 0, len(body.Search))
	for _, item := range body.Search {
		uri := item.ConceptURI
		if uri == "" && item.ID != "" {
			uri = "http://www.wikidata.org/entity/" + item.ID
		}
		result = append(result, Suggestion{
			Label:       item.Label,
			Description: item.Description,
			WikidataURL: uri,
		})
	}
	return result, nil
}
