package mattermost

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestChannelNotifierPostsToChannel(t *testing.T) {
	var got Post
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v4/posts" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer tok" {
			t.Errorf("authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		json.NewEncoder(w).Encode(Post{ID: "p1", ChannelID: got.ChannelID, Message: got.Message})
	}))
	defer srv.Close()

	n := NewChannelNotifier(NewClient(srv.URL+"/", "tok"), "hr-channel")
	if err := n.Notify(context.Background(), "hello"); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if got.ChannelID != "hr-channel" || got.Message != "hello" {
		t.Fatalf("posted %#v", got)
	}
}

func TestClientReportsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL, "tok").CreatePost(context.Background(), &Post{ChannelID: "c", Message: "m"}); err == nil {
		t.Fatal("expected error on 403")
	}
}
