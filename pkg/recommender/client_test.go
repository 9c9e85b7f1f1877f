package recommender

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recommend", r.URL.Path)
		assert.Equal(t, "anon:sess-1", r.URL.Query().Get("user_id"))
		assert.Equal(t, "4", r.URL.Query().Get("k"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"recommendations":[{"id":3,"name":"Gadget","price":14.99,"score":0.91},{"id":1,"name":"Widget","score":0.5}]}`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	items, err := client.Recommend(context.Background(), "anon:sess-1", 4)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, uint(3), items[0].ID)
	assert.Equal(t, "Gadget", items[0].Name)
	assert.Equal(t, 0.91, items[0].Score)
	assert.Equal(t, 0.0, items[1].Price)
}

func TestRecommend_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	_, err := client.Recommend(context.Background(), "7", 8)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestRecommend_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"recommendations": [oops`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	_, err := client.Recommend(context.Background(), "7", 8)
	require.Error(t, err)
}

func TestRecommend_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := New(srv.URL, 20*time.Millisecond)
	_, err := client.Recommend(context.Background(), "7", 8)
	require.Error(t, err)
}

func TestRecommend_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := New(srv.URL, time.Second)
	_, err := client.Recommend(context.Background(), "7", 8)
	require.Error(t, err)
}
