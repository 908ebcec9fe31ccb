package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector 指标收集器
type MetricsCollector struct {
	// HTTP 指标
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpResponseSize    *prometheus.HistogramVec

	// 业务指标
	postsCreatedTotal    prometheus.Counter
	postsDeletedTotal    prometheus.Counter
	commentsTotal        prometheus.Counter
	commentVotesTotal    *prometheus.CounterVec
	interestTogglesTotal *prometheus.CounterVec
	usersRegisteredTotal prometheus.Counter
	loginsTotal          *prometheus.CounterVec

	// 外部调用
	tagLookupDuration *prometheus.HistogramVec
}

// NewMetricsCollector 创建指标收集器，指标注册到 reg；nil 收集器的记录方法为空操作
func NewMetricsCollector(reg prometheus.Registerer) *MetricsCollector {
	factory := promauto.With(reg)
	return &MetricsCollector{
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),

		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		httpResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "endpoint"},
		),

		postsCreatedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "catalog_posts_created_total",
			Help: "Total number of posts created",
		}),

		postsDeletedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "catalog_posts_deleted_total",
			Help: "Total number of posts deleted",
		}),

		commentsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "catalog_comments_created_total",
			Help: "Total number of comments created",
		}),

		commentVotesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_comment_votes_total",
				Help: "Total number of comment votes by direction",
			},
			[]string{"direction"},
		),

		interestTogglesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_interest_toggles_total",
				Help: "Total number of interest toggles by resulting state",
			},
			[]string{"state"},
		),

		usersRegisteredTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "catalog_users_registered_total",
			Help: "Total number of registered users",
		}),

		loginsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_logins_total",
				Help: "Total number of login attempts by result",
			},
			[]string{"result"},
		),

		tagLookupDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalog_tag_lookup_duration_seconds",
				Help:    "External tag lookup duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"status"},
		),
	}
}

// RecordHTTPRequest 记录 HTTP 请求指标
func (m *MetricsCollector) RecordHTTPRequest(method, endpoint string, status int, duration time.Duration, responseSize int) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, endpoint, getStatusCategory(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
	if responseSize >= 0 {
		m.httpResponseSize.WithLabelValues(method, endpoint).Observe(float64(responseSize))
	}
}

func (m *MetricsCollector) PostCreated() {
	if m != nil {
		m.postsCreatedTotal.Inc()
	}
}

func (m *MetricsCollector) PostDeleted() {
	if m != nil {
		m.postsDeletedTotal.Inc()
	}
}

func (m *MetricsCollector) CommentCreated() {
	if m != nil {
		m.commentsTotal.Inc()
	}
}

func (m *MetricsCollector) UserRegistered() {
	if m != nil {
		m.usersRegisteredTotal.Inc()
	}
}

// CommentVoted 记录投票方向
func (m *MetricsCollector) CommentVoted(isUpvote bool) {
	if m == nil {
		return
	}
	direction := "down"
	if isUpvote {
		direction = "up"
	}
	m.commentVotesTotal.WithLabelValues(direction).Inc()
}

// InterestToggled 记录切换后的状态
func (m *MetricsCollector) InterestToggled(interested bool) {
	if m == nil {
		return
	}
	state := "removed"
	if interested {
		state = "added"
	}
	m.interestTogglesTotal.WithLabelValues(state).Inc()
}

// LoginAttempt 记录登录结果
func (m *MetricsCollector) LoginAttempt(success bool) {
	if m == nil {
		return
	}
	result := "failure"
	if success {
		result = "success"
	}
	m.loginsTotal.WithLabelValues(result).Inc()
}

// ObserveTagLookup 记录外部标签查询耗时
func (m *MetricsCollector) ObserveTagLookup(duration time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.tagLookupDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// getStatusCategory 获取状态分类
func getStatusCategory(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 300 && status < 400:
		return "3xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}

var (
	globalCollector *MetricsCollector
	once            sync.Once
)

// GetGlobalCollector 获取全局指标收集器（注册到默认 registry，/metrics 暴露）
func GetGlobalCollector() *MetricsCollector {
	once.Do(func() {
		globalCollector = NewMetricsCollector(prometheus.DefaultRegisterer)
	})
	return globalCollector
}
