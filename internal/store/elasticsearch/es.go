package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v7"
	"github.com/elastic/go-elasticsearch/v7/esapi"
	"github.com/goto/salt/log"
	"github.com/newrelic/go-agent/v3/integrations/nrelasticsearch-v7"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const opDurationHistogram = "ticketsearch.elasticsearch.operation.duration"

type Config struct {
	Brokers        string        `mapstructure:"brokers" yaml:"brokers" default:"http://localhost:9200"`
	APIKey         string        `mapstructure:"api_key" yaml:"api_key" default:""`
	IndexName      string        `mapstructure:"index_name" yaml:"index_name" default:"helpdesk_records"`
	TypoOne        int           `mapstructure:"typo_one" yaml:"typo_one" default:"4"`
	TypoTwo        int           `mapstructure:"typo_two" yaml:"typo_two" default:"8"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout" default:"5s"`
}

func (c Config) index() string {
	if c.IndexName == "" {
		return "helpdesk_records"
	}
	return c.IndexName
}

// fuzziness renders the AUTO fuzziness with the configured typo thresholds.
func (c Config) fuzziness() string {
	one, two := c.TypoOne, c.TypoTwo
	if one <= 0 {
		one = 4
	}
	if two <= one {
		two = one + 4
	}
	return fmt.Sprintf("AUTO:%d,%d", one, two)
}

// extract error reason from an elasticsearch response
// returns the raw message in case it fails
func errorReasonFromResponse(res *esapi.Response) string {
	_, reason := errorCodeAndReason(res)
	return reason
}

// errorCodeAndReason returns the error type and reason of a failed
// response, falling back to the raw body.
func errorCodeAndReason(res *esapi.Response) (code, reason string) {
	var (
		response struct {
			Error struct {
				Type   string `json:"type"`
				Reason string `json:"reason"`
			} `json:"error"`
		}
		copy bytes.Buffer
	)
	reader := io.TeeReader(res.Body, &copy)
	if err := json.NewDecoder(reader).Decode(&response); err != nil || response.Error.Reason == "" {
		return res.Status(), fmt.Sprintf("raw response = %s", copy.String())
	}
	return response.Error.Type, response.Error.Reason
}

// helper for decorating unsuccesful invocations of the es REST API
// (transport errors)
func elasticSearchError(err error) error {
	return fmt.Errorf("elasticsearch error: %w", err)
}

func drainBody(res *esapi.Response) {
	_, _ = io.Copy(io.Discard, res.Body)
	_ = res.Body.Close()
}

type Client struct {
	client *elasticsearch.Client
	config Config
	logger log.Logger

	opDuration metric.Float64Histogram
}

type ClientOption func(*Client)

// WithClient uses cli instead of a client built from the config brokers.
func WithClient(cli *elasticsearch.Client) ClientOption {
	return func(c *Client) {
		c.client = cli
	}
}

func NewClient(logger log.Logger, config Config, opts ...ClientOption) (*Client, error) {
	c := &Client{
		config: config,
		logger: logger,
	}

	opDuration, err := otel.Meter("github.com/goto/ticketsearch/internal/store/elasticsearch").
		Float64Histogram(opDurationHistogram)
	if err != nil {
		otel.Handle(err)
	}
	c.opDuration = opDuration

	for _, opt := range opts {
		opt(c)
	}

	if c.client != nil {
		return c, nil
	}

	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: strings.Split(config.Brokers, ","),
		APIKey:    config.APIKey,
		Transport: nrelasticsearch.NewRoundTripper(nil),
	})
	if err != nil {
		return nil, err
	}
	c.client = esClient

	return c, nil
}

// Init returns the cluster name and version of the connected cluster.
func (c *Client) Init() (string, error) {
	res, err := c.client.Info()
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.IsError() {
		return "", errors.New(res.Status())
	}
	var info = struct {
		ClusterName string `json:"cluster_name"`
		Version     struct {
			Number string `json:"number"`
		} `json:"version"`
	}{}

	err = json.NewDecoder(res.Body).Decode(&info)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%q (server version %s)", info.ClusterName, info.Version.Number), nil
}

// Ping reports whether the cluster answers within the request timeout.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	res, err := c.client.Ping(c.client.Ping.WithContext(ctx))
	if err != nil {
		return elasticSearchError(err)
	}
	defer drainBody(res)
	if res.IsError() {
		return fmt.Errorf("ping: %s", res.Status())
	}
	return nil
}

// CreateIdx creates the record index with its mapping.
func (c *Client) CreateIdx(ctx context.Context) error {
	res, err := c.client.Indices.Create(
		c.config.index(),
		c.client.Indices.Create.WithBody(strings.NewReader(recordIndexSettings)),
		c.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return elasticSearchError(err)
	}
	defer drainBody(res)
	if res.IsError() {
		return fmt.Errorf("error creating index %q: %s", c.config.index(), errorReasonFromResponse(res))
	}
	return nil
}

// DeleteIdx drops the record index. A missing index is not an error.
func (c *Client) DeleteIdx(ctx context.Context) error {
	res, err := c.client.Indices.Delete(
		[]string{c.config.index()},
		c.client.Indices.Delete.WithContext(ctx),
		c.client.Indices.Delete.WithIgnoreUnavailable(true),
	)
	if err != nil {
		return elasticSearchError(err)
	}
	defer drainBody(res)
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("error deleting index %q: %s", c.config.index(), errorReasonFromResponse(res))
	}
	return nil
}

// checks for the existence of an index
func (c *Client) indexExists(ctx context.Context) (bool, error) {
	res, err := c.client.Indices.Exists(
		[]string{c.config.index()},
		c.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return false, fmt.Errorf("indexExists: %w", elasticSearchError(err))
	}
	defer drainBody(res)
	return res.StatusCode == http.StatusOK, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.config.RequestTimeout)
}

type instrumentParams struct {
	op    string
	start time.Time
	err   error
}

func (c *Client) instrumentOp(ctx context.Context, params instrumentParams) {
	if c.opDuration == nil {
		return
	}
	ms := (float64)(time.Since(params.start)) / (float64)(time.Millisecond)
	c.opDuration.Record(ctx, ms, metric.WithAttributes(
		attribute.String("es.operation", params.op),
		attribute.String("es.index", c.config.index()),
		attribute.Bool("operation.success", params.err == nil),
	))
}
