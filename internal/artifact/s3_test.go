package artifact_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"testing"

	"tracktor/internal/artifact"
)

// fakeS3 answers the Head, Put and ListObjectsV2 calls made by the s3 driver.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}
	respond := func(status int, body string, header http.Header) *http.Response {
		if header == nil {
			header = http.Header{}
		}
		return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(body)), Header: header, Request: req}
	}

	if req.Method == http.MethodGet && req.URL.Query().Get("list-type") == "2" {
		prefix := req.URL.Query().Get("prefix")
		keys := make([]string, 0, len(f.objects))
		for k := range f.objects {
			if strings.HasPrefix(k, prefix) {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		var b strings.Builder
		b.WriteString(`<?xml version="1.0"?><ListBucketResult><IsTruncated>false</IsTruncated>`)
		for _, k := range keys {
			fmt.Fprintf(&b, "<Contents><Key>%s</Key><Size>%d</Size><LastModified>2024-01-01T00:00:00Z</LastModified></Contents>", k, len(f.objects[k]))
		}
		b.WriteString("</ListBucketResult>")
		return respond(http.StatusOK, b.String(), http.Header{"Content-Type": {"application/xml"}}), nil
	}

	switch req.Method {
	case http.MethodHead:
		if key == "" {
			return respond(http.StatusOK, "", nil), nil
		}
		if body, ok := f.objects[key]; ok {
			return respond(http.StatusOK, "", http.Header{"Content-Length": {fmt.Sprint(len(body))}}), nil
		}
		return respond(http.StatusNotFound, "", nil), nil
	case http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		f.objects[key] = bytes.Clone(body)
		return respond(http.StatusOK, "", http.Header{"ETag": {`"etag"`}}), nil
	}
	return respond(http.StatusNotImplemented, "", nil), nil
}

func TestS3StoreCreateOnly(t *testing.T) {
	fake := &fakeS3{objects: make(map[string][]byte)}
	store, err := artifact.NewS3(context.Background(), artifact.S3Config{
		Bucket:          "cage-data",
		Endpoint:        "https://s3.test.local",
		PathStyle:       true,
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
		HTTPClient:      &http.Client{Transport: fake},
	})
	if err != nil {
		t.Fatalf("NewS3: %v", err)
	}
	if store.Driver() != artifact.DriverS3 {
		t.Fatalf("unexpected driver %q", store.Driver())
	}

	ctx := context.Background()
	if err := store.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
	info, err := store.Put(ctx, "day1/tracking_results_0.csv", strings.NewReader("frame\n"), "text/csv")
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Location != "https://s3.test.local/cage-data/day1/tracking_results_0.csv" {
		t.Fatalf("unexpected location %q", info.Location)
	}
	if _, err := store.Put(ctx, "day1/tracking_results_0.csv", strings.NewReader("x"), "text/csv"); !errors.Is(err, artifact.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}

	list, err := store.List(ctx, "day1/tracking_results")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Key != "day1/tracking_results_0.csv" {
		t.Fatalf("unexpected list %+v", list)
	}
	if next := artifact.NextSnapshotKey("day1", "tracking_results", list); next != "day1/tracking_results_1.csv" {
		t.Fatalf("unexpected next key %q", next)
	}
}

func TestNewS3RequiresBucket(t *testing.T) {
	if _, err := artifact.NewS3(context.Background(), artifact.S3Config{}); err == nil {
		t.Fatal("expected error without bucket")
	}
}
