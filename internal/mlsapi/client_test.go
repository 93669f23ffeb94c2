package mlsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"mls-sync/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string, chunkSize int) *Client {
	cfg := config.MLSApiConfig{
		BaseURL:     baseURL,
		AccessToken: "test-token",
		PageSize:    200,
		MaxRetries:  3,
	}
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewClient(cfg, chunkSize, logger)
}

func makeRecords(start, count int) []RawRecord {
	records := make([]RawRecord, count)
	for i := 0; i < count; i++ {
		records[i] = RawRecord{"ListingKey": fmt.Sprintf("L%04d", start+i)}
	}
	return records
}

func pagedServer(t *testing.T, pages [][]RawRecord) *httptest.Server {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		page := 0
		if p := r.URL.Query().Get("page"); p != "" {
			fmt.Sscanf(p, "%d", &page)
		}
		require.Less(t, page, len(pages))

		env := map[string]interface{}{"value": pages[page]}
		if page < len(pages)-1 {
			env["@odata.nextLink"] = fmt.Sprintf("%s/Property?page=%d", server.URL, page+1)
		}
		json.NewEncoder(w).Encode(env)
	}))
	return server
}

func TestFetchListingsFollowsPagination(t *testing.T) {
	pages := [][]RawRecord{
		makeRecords(0, 200),
		makeRecords(200, 200),
		makeRecords(400, 50),
	}
	server := pagedServer(t, pages)
	defer server.Close()

	client := testClient(server.URL, 50)

	var seen []RawRecord
	total, err := client.FetchListings(context.Background(), "StandardStatus eq 'Active'", func(batch []RawRecord, totalSoFar int) (bool, error) {
		seen = append(seen, batch...)
		return false, nil
	}, 0)

	require.NoError(t, err)
	assert.Equal(t, 450, total)
	require.Len(t, seen, 450)
	assert.Equal(t, "L0000", seen[0]["ListingKey"])
	assert.Equal(t, "L0449", seen[449]["ListingKey"])
}

func TestFetchListingsStopsAtSessionLimit(t *testing.T) {
	pages := [][]RawRecord{
		makeRecords(0, 200),
		makeRecords(200, 200),
		makeRecords(400, 200),
	}
	server := pagedServer(t, pages)
	defer server.Close()

	client := testClient(server.URL, 50)

	batches := 0
	total, err := client.FetchListings(context.Background(), "f", func(batch []RawRecord, totalSoFar int) (bool, error) {
		batches++
		return false, nil
	}, 400)

	require.NoError(t, err)
	assert.Equal(t, 400, total)
	assert.Equal(t, 2, batches)
}

func TestFetchListingsStopsWhenBatchSignals(t *testing.T) {
	pages := [][]RawRecord{
		makeRecords(0, 200),
		makeRecords(200, 200),
	}
	server := pagedServer(t, pages)
	defer server.Close()

	client := testClient(server.URL, 50)

	total, err := client.FetchListings(context.Background(), "f", func(batch []RawRecord, totalSoFar int) (bool, error) {
		return true, nil
	}, 0)

	require.NoError(t, err)
	assert.Equal(t, 200, total)
}

func TestFetchListingsRetriesOnThrottle(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"value": makeRecords(0, 5)})
	}))
	defer server.Close()

	client := testClient(server.URL, 50)

	total, err := client.FetchListings(context.Background(), "f", func(batch []RawRecord, totalSoFar int) (bool, error) {
		return false, nil
	}, 0)

	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Equal(t, 3, requests)
}

func TestFetchListingsExhaustedRetriesBecomePermanent(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := testClient(server.URL, 50)

	_, err := client.FetchListings(context.Background(), "f", func(batch []RawRecord, totalSoFar int) (bool, error) {
		return false, nil
	}, 0)

	require.Error(t, err)
	var perm *PermanentError
	require.ErrorAs(t, err, &perm)
	assert.Equal(t, 4, requests)
}

func TestFetchListingsClientErrorIsNotRetried(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := testClient(server.URL, 50)

	_, err := client.FetchListings(context.Background(), "f", func(batch []RawRecord, totalSoFar int) (bool, error) {
		return false, nil
	}, 0)

	require.Error(t, err)
	var perm *PermanentError
	require.ErrorAs(t, err, &perm)
	assert.Equal(t, http.StatusBadRequest, perm.StatusCode)
	assert.Equal(t, 1, requests)
}

func TestFetchListingsMalformedBodyIsPermanent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := testClient(server.URL, 50)

	_, err := client.FetchListings(context.Background(), "f", func(batch []RawRecord, totalSoFar int) (bool, error) {
		return false, nil
	}, 0)

	require.Error(t, err)
	var perm *PermanentError
	assert.ErrorAs(t, err, &perm)
}

func TestFetchRelatedDedupesAndChunks(t *testing.T) {
	var filters []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Member", r.URL.Path)
		filters = append(filters, r.URL.Query().Get("$filter"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"value": []RawRecord{{"MemberKey": "stub"}},
		})
	}))
	defer server.Close()

	client := testClient(server.URL, 2)

	records, err := client.FetchRelated(context.Background(), "Member", "MemberKey",
		[]string{"A1", "A2", "A1", "", "A3"})

	require.NoError(t, err)
	assert.Len(t, records, 2)
	require.Len(t, filters, 2)
	assert.Equal(t, "MemberKey eq 'A1' or MemberKey eq 'A2'", filters[0])
	assert.Equal(t, "MemberKey eq 'A3'", filters[1])
}

func TestFetchRelatedEmptyKeys(t *testing.T) {
	client := testClient("http://unused", 2)

	records, err := client.FetchRelated(context.Background(), "Member", "MemberKey", nil)
	require.NoError(t, err)
	assert.Nil(t, records)
}
