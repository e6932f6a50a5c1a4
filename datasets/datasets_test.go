package datasets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/deepnoodle-ai/brightdata/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Extract(t *testing.T) {
	var polls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/trigger":
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, "gd_l7q7dkf244hwjntr0", r.URL.Query().Get("dataset_id"))
			assert.Equal(t, "true", r.URL.Query().Get("include_errors"))
			assert.Equal(t, "Bearer test-api-token", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var payloads []map[string]any
			err := json.NewDecoder(r.Body).Decode(&payloads)
			assert.NoError(t, err)
			require.Len(t, payloads, 1)
			assert.Equal(t, "https://www.amazon.com/dp/B08N5WRWNW", payloads[0]["url"])

			fmt.Fprint(w, `{"snapshot_id": "snap_123"}`)
		case "/snapshot/snap_123":
			assert.Equal(t, "GET", r.Method)
			assert.Equal(t, "json", r.URL.Query().Get("format"))
			assert.Equal(t, "Bearer test-api-token", r.Header.Get("Authorization"))

			if polls.Add(1) == 1 {
				fmt.Fprint(w, `{"status": "running"}`)
				return
			}
			fmt.Fprint(w, `[{"title": "Echo Dot (4th Gen)", "price": 49.99}]`)
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client, err := New(
		WithAPIToken("test-api-token"),
		WithBaseURL(server.URL),
		WithPollInterval(time.Millisecond),
	)
	require.NoError(t, err)

	output, err := client.Extract(context.Background(), &web.ExtractInput{
		URL: "https://www.amazon.com/dp/B08N5WRWNW",
	})
	require.NoError(t, err)
	assert.Equal(t, "amazon_product", output.DataType)
	assert.Equal(t, "gd_l7q7dkf244hwjntr0", output.DatasetID)
	assert.Equal(t, "snap_123", output.SnapshotID)
	assert.Equal(t, 2, output.Attempts)
	assert.True(t, output.AutoDetected)
	assert.Equal(t, 175, output.Confidence)
	assert.Equal(t, map[string]any{"url": "https://www.amazon.com/dp/B08N5WRWNW"}, output.Payload)

	records, ok := output.Data.([]any)
	require.True(t, ok)
	require.Len(t, records, 1)
	record, ok := records[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Echo Dot (4th Gen)", record["title"])
}

func TestClient_Extract_ManualDataType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/trigger":
			assert.Equal(t, "gd_lk9q0ew71spt1mxywf", r.URL.Query().Get("dataset_id"))

			var payloads []map[string]any
			err := json.NewDecoder(r.Body).Decode(&payloads)
			assert.NoError(t, err)
			require.Len(t, payloads, 1)
			assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", payloads[0]["url"])
			assert.Equal(t, "25", payloads[0]["num_of_comments"])

			fmt.Fprint(w, `[{"snapshot_id": "snap_456"}]`)
		case "/snapshot/snap_456":
			fmt.Fprint(w, `{"status": "ready", "comments": []}`)
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client, err := New(
		WithAPIToken("test-api-token"),
		WithBaseURL(server.URL),
		WithPollInterval(time.Millisecond),
	)
	require.NoError(t, err)

	autoDetect := false
	output, err := client.Extract(context.Background(), &web.ExtractInput{
		URL:              "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		DataType:         "youtube_comments",
		AutoDetect:       &autoDetect,
		AdditionalParams: map[string]any{"num_of_comments": "25"},
	})
	require.NoError(t, err)
	assert.Equal(t, "youtube_comments", output.DataType)
	assert.Equal(t, "snap_456", output.SnapshotID)
	assert.Equal(t, 1, output.Attempts)
	assert.False(t, output.AutoDetected)
	assert.Zero(t, output.Confidence)

	data, ok := output.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ready", data["status"])
}

func TestClient_Extract_AppliesDatasetDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/trigger":
			var payloads []map[string]any
			err := json.NewDecoder(r.Body).Decode(&payloads)
			assert.NoError(t, err)
			require.Len(t, payloads, 1)
			assert.Equal(t, "3", payloads[0]["days_limit"])
			fmt.Fprint(w, `{"snapshot_id": "snap_789"}`)
		case "/snapshot/snap_789":
			fmt.Fprint(w, `[{"review": "great view"}]`)
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client, err := New(
		WithAPIToken("test-api-token"),
		WithBaseURL(server.URL),
		WithPollInterval(time.Millisecond),
	)
	require.NoError(t, err)

	output, err := client.Extract(context.Background(), &web.ExtractInput{
		URL:      "https://www.google.com/maps/place/Central+Park/@40.78,-73.96,17z",
		DataType: "google_maps_reviews",
	})
	require.NoError(t, err)
	assert.Equal(t, "3", output.Payload["days_limit"])
	assert.Equal(t, "https://www.google.com/maps/place/Central+Park/@40.78,-73.96,17z", output.Payload["url"])
}

func TestClient_Extract_TriggerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("zone not authorized"))
	}))
	defer server.Close()

	client, err := New(WithAPIToken("test-api-token"), WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = client.Extract(context.Background(), &web.ExtractInput{
		URL: "https://www.walmart.com/ip/Sony-WH-1000XM5/715816716",
	})
	require.Error(t, err)
	assert.Equal(t, "Failed to trigger collection: HTTP 403 - zone not authorized", err.Error())
}

func TestClient_Extract_NoSnapshotID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	client, err := New(WithAPIToken("test-api-token"), WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = client.Extract(context.Background(), &web.ExtractInput{
		URL: "https://www.walmart.com/ip/Sony-WH-1000XM5/715816716",
	})
	require.Error(t, err)
	assert.Equal(t, "No snapshot ID returned from trigger request", err.Error())
}

func TestClient_Extract_PollRetriesServerErrors(t *testing.T) {
	var polls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/trigger":
			fmt.Fprint(w, `{"snapshot_id": "snap_123"}`)
		case "/snapshot/snap_123":
			if polls.Add(1) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("temporary glitch"))
				return
			}
			fmt.Fprint(w, `[{"id": 1}]`)
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client, err := New(
		WithAPIToken("test-api-token"),
		WithBaseURL(server.URL),
		WithPollInterval(time.Millisecond),
	)
	require.NoError(t, err)

	output, err := client.Extract(context.Background(), &web.ExtractInput{
		URL: "https://www.walmart.com/ip/Sony-WH-1000XM5/715816716",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, output.Attempts)
}

func TestClient_Extract_PollAuthFailureAborts(t *testing.T) {
	var polls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/trigger":
			fmt.Fprint(w, `{"snapshot_id": "snap_123"}`)
		case "/snapshot/snap_123":
			polls.Add(1)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("invalid token"))
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client, err := New(
		WithAPIToken("test-api-token"),
		WithBaseURL(server.URL),
		WithPollInterval(time.Millisecond),
	)
	require.NoError(t, err)

	_, err = client.Extract(context.Background(), &web.ExtractInput{
		URL: "https://www.walmart.com/ip/Sony-WH-1000XM5/715816716",
	})
	require.Error(t, err)
	assert.Equal(t, "Failed to poll snapshot: HTTP 401 - invalid token", err.Error())
	assert.Equal(t, int32(1), polls.Load())
}

func TestClient_Extract_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/trigger":
			fmt.Fprint(w, `{"snapshot_id": "snap_123"}`)
		case "/snapshot/snap_123":
			fmt.Fprint(w, `{"status": "running"}`)
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client, err := New(
		WithAPIToken("test-api-token"),
		WithBaseURL(server.URL),
		WithPollInterval(time.Millisecond),
		WithMaxWait(30*time.Millisecond),
	)
	require.NoError(t, err)

	_, err = client.Extract(context.Background(), &web.ExtractInput{
		URL: "https://www.walmart.com/ip/Sony-WH-1000XM5/715816716",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Timeout after 0 seconds waiting for data")
	assert.Contains(t, err.Error(), "attempted")
}

func TestClient_Extract_TerminalStatusReturnsData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/trigger":
			fmt.Fprint(w, `{"snapshot_id": "snap_123"}`)
		case "/snapshot/snap_123":
			fmt.Fprint(w, `[{"status": "failed", "error": "crawl blocked"}]`)
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client, err := New(
		WithAPIToken("test-api-token"),
		WithBaseURL(server.URL),
		WithPollInterval(time.Millisecond),
	)
	require.NoError(t, err)

	output, err := client.Extract(context.Background(), &web.ExtractInput{
		URL: "https://www.walmart.com/ip/Sony-WH-1000XM5/715816716",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, output.Attempts)

	records, ok := output.Data.([]any)
	require.True(t, ok)
	require.Len(t, records, 1)
	record, ok := records[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "failed", record["status"])
}

func TestClient_Extract_InputValidation(t *testing.T) {
	client, err := New(WithAPIToken("test-api-token"))
	require.NoError(t, err)

	_, err = client.Extract(context.Background(), &web.ExtractInput{})
	require.Error(t, err)
	assert.Equal(t, "URL is required", err.Error())

	_, err = client.Extract(context.Background(), &web.ExtractInput{
		URL:      "https://example.com/x",
		DataType: "bogus_type",
	})
	require.Error(t, err)
	assert.Equal(t, "Unknown data type: bogus_type", err.Error())

	autoDetect := false
	_, err = client.Extract(context.Background(), &web.ExtractInput{
		URL:        "https://example.com/x",
		AutoDetect: &autoDetect,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data_type is required")

	_, err = client.Extract(context.Background(), &web.ExtractInput{URL: "https://example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Could not automatically detect website type")
}

func TestClient_New_MissingAPIToken(t *testing.T) {
	t.Setenv("BRIGHTDATA_API_TOKEN", "")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no api token provided")
}

func TestClient_New_Defaults(t *testing.T) {
	t.Setenv("BRIGHTDATA_DATASETS_API_URL", "")

	client, err := New(WithAPIToken("test-api-token"))
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
	assert.Equal(t, DefaultPollInterval, client.pollInterval)
	assert.Equal(t, DefaultMaxWait, client.maxWait)
}
