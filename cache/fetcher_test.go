package cache

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	body  string
	err   error
	calls int
}

func (s *stubFetcher) Fetch(ctx context.Context, url string, headers map[string]string) (string, error) {
	s.calls++
	return s.body, s.err
}

type memoryStore struct {
	items  map[string]string
	getErr error
	putErr error
	puts   int
}

func (m *memoryStore) Get(ctx context.Context, url string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}

	body, ok := m.items[url]
	return body, ok, nil
}

func (m *memoryStore) Put(ctx context.Context, url, body string) error {
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}

	m.items[url] = body
	return nil
}

func TestFetcher_Fetch_missThenHit(t *testing.T) {
	next := &stubFetcher{body: "<feed><entry/></feed>"}
	store := &memoryStore{items: map[string]string{}}
	f := NewFetcher(next, store)

	for i := 0; i < 3; i++ {
		body, err := f.Fetch(context.Background(), feedURL, nil)
		require.NoError(t, err)
		assert.Equal(t, "<feed><entry/></feed>", body)
	}

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, 1, store.puts)
}

func TestFetcher_Fetch_nonFeedNotStored(t *testing.T) {
	next := &stubFetcher{body: "<html>maintenance</html>"}
	store := &memoryStore{items: map[string]string{}}

	body, err := NewFetcher(next, store).Fetch(context.Background(), feedURL, nil)

	require.NoError(t, err)
	assert.Equal(t, "<html>maintenance</html>", body)
	assert.Equal(t, 0, store.puts)
}

func TestFetcher_Fetch_upstreamError(t *testing.T) {
	boom := errors.New("boom")
	store := &memoryStore{items: map[string]string{}}

	_, err := NewFetcher(&stubFetcher{err: boom}, store).Fetch(context.Background(), feedURL, nil)

	assert.Equal(t, boom, err)
	assert.Equal(t, 0, store.puts)
}

func TestFetcher_Fetch_storeFailuresIgnored(t *testing.T) {
	next := &stubFetcher{body: "<feed></feed>"}
	store := &memoryStore{items: map[string]string{}, getErr: errors.New("get"), putErr: errors.New("put")}

	body, err := NewFetcher(next, store).Fetch(context.Background(), feedURL, nil)

	require.NoError(t, err)
	assert.Equal(t, "<feed></feed>", body)
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, 1, store.puts)
}
