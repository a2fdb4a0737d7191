package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/pkg/errors"
)

// DefaultTTL is the lifetime of a cached feed body in seconds.
const DefaultTTL = 300

// FeedCache stores feed bodies in dynamodb keyed by the sha256 of the feed url.
type FeedCache struct {
	Region string
	Table  string
	TTL    int64

	nowFunc func() time.Time
	svcFunc func(client.ConfigProvider) dynamodbiface.DynamoDBAPI

	once   sync.Once
	client dynamodbiface.DynamoDBAPI
	err    error
}

// NewFeedCache returns a cache for table in region. A zero ttl uses DefaultTTL.
func NewFeedCache(region, table string, ttl int64) (*FeedCache, error) {
	if region == "" {
		return nil, errors.New("region is required")
	}

	if table == "" {
		return nil, errors.New("table is required")
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &FeedCache{Region: region, Table: table, TTL: ttl}, nil
}

// now is used internally to assist stubs on time.Now() for testing
func (c *FeedCache) now() time.Time {
	if c.nowFunc != nil {
		return c.nowFunc()
	}

	return time.Now()
}

// svc lazily builds the dynamodb client once per cache.
func (c *FeedCache) svc() (dynamodbiface.DynamoDBAPI, error) {
	c.once.Do(func() {
		s, err := session.NewSession(&aws.Config{Region: aws.String(c.Region)})
		if err != nil {
			c.err = errors.Wrap(err, "failed getting session")
			return
		}

		if c.svcFunc != nil {
			c.client = c.svcFunc(s)
			return
		}

		c.client = dynamodb.New(s)
	})

	return c.client, c.err
}

// Key returns the item id used for url.
func Key(url string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(url)))
}

// expires returns the current time + ttl in Epoch format as a string
func (c *FeedCache) expires() string {
	return strconv.FormatInt(c.now().Add(time.Duration(c.TTL)*time.Second).Unix(), 10)
}

func (c *FeedCache) getItemInput(id string) *dynamodb.GetItemInput {
	return &dynamodb.GetItemInput{
		TableName: aws.String(c.Table),
		Key: map[string]*dynamodb.AttributeValue{
			"id": {S: aws.String(id)},
		},
		ProjectionExpression: aws.String("body, expire"),
	}
}

func (c *FeedCache) putItemInput(id, url, body string) *dynamodb.PutItemInput {
	return &dynamodb.PutItemInput{
		TableName: aws.String(c.Table),
		Item: map[string]*dynamodb.AttributeValue{
			"id":     {S: aws.String(id)},
			"url":    {S: aws.String(url)},
			"body":   {S: aws.String(body)},
			"expire": {N: aws.String(c.expires())},
		},
	}
}

// Get returns the cached body for url. Missing and stale items are a miss.
func (c *FeedCache) Get(ctx context.Context, url string) (string, bool, error) {
	svc, err := c.svc()
	if err != nil {
		return "", false, err
	}

	out, err := svc.GetItemWithContext(ctx, c.getItemInput(Key(url)))
	if err != nil {
		return "", false, errors.Wrapf(err, "failed get %v from %v", Key(url), c.Table)
	}

	if out == nil || len(out.Item) == 0 {
		return "", false, nil
	}

	body, expire := out.Item["body"], out.Item["expire"]
	if body == nil || body.S == nil || expire == nil || expire.N == nil {
		return "", false, nil
	}

	at, err := strconv.ParseInt(*expire.N, 10, 64)
	if err != nil || at <= c.now().Unix() {
		return "", false, nil
	}

	return *body.S, true, nil
}

// Put stores body for url for TTL seconds, replacing any previous item.
func (c *FeedCache) Put(ctx context.Context, url, body string) error {
	svc, err := c.svc()
	if err != nil {
		return err
	}

	id := Key(url)
	if _, err := svc.PutItemWithContext(ctx, c.putItemInput(id, url, body)); err != nil {
		return errors.Wrapf(err, "failed put %v to %v", id, c.Table)
	}

	return nil
}
