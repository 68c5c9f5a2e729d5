package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestEstimateCost(t *testing.T) {
	tests := []struct {
		n    int
		want float64
	}{
		{0, 0},
		{20, 0.20},
		{100, 1.00},
		{500, 1.00},
	}
	for _, tt := range tests {
		if got := EstimateCost(tt.n); got < tt.want-1e-9 || got > tt.want+1e-9 {
			t.Errorf("EstimateCost(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestApify_FindBusinesses(t *testing.T) {
	var polls int32
	var started runRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/acts/"+GoogleMapsActor+"/runs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("start method = %s, want POST", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&started); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id":"run42"}}`))
	})
	mux.HandleFunc("/acts/"+GoogleMapsActor+"/runs/run42/dataset/items", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if atomic.AddInt32(&polls, 1) < 2 {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		_, _ = w.Write([]byte(`[
			{"title":"Green Grocer","address":"1 Main St","phone":"555-0100","website":"https://gg.example","rating":4.6,"reviewsCount":120,"categoryName":"Grocery store","coordinates":{"lat":45.5,"lng":-122.6}},
			{"name":"Bike Co","location":"2 Side St","phoneNumber":"555-0101","url":"https://bike.example","stars":4.1,"reviews":8,"type":"Bicycle shop"},
			{}
		]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewApifyClient("tok", srv.URL, 5*time.Second, WithPolling(time.Millisecond, 5))
	got, err := client.FindBusinesses(context.Background(), BusinessQuery{Query: "grocery", Location: "Portland, OR", MaxResults: 10})
	if err != nil {
		t.Fatalf("FindBusinesses() failed: %v", err)
	}

	if len(started.SearchStringsArray) != 1 || started.SearchStringsArray[0] != "grocery near Portland, OR" {
		t.Errorf("searchStringsArray = %v", started.SearchStringsArray)
	}
	if started.MaxCrawledPlacesPerSearch != 10 || started.CountryCode != "US" || started.Language != "en" {
		t.Errorf("run request = %+v", started)
	}

	if len(got) != 3 {
		t.Fatalf("got %d businesses, want 3", len(got))
	}
	first := got[0]
	if first.Name != "Green Grocer" || first.ReviewCount != 120 || first.Coordinates == nil || first.Coordinates.Lat != 45.5 {
		t.Errorf("first = %+v", first)
	}
	second := got[1]
	if second.Name != "Bike Co" || second.Address != "2 Side St" || second.Phone != "555-0101" ||
		second.Website != "https://bike.example" || second.Rating != 4.1 || second.ReviewCount != 8 || second.Category != "Bicycle shop" {
		t.Errorf("second = %+v", second)
	}
	third := got[2]
	if third.Name != "Unknown Business" || third.Address != "Address not available" || third.Coordinates != nil {
		t.Errorf("third = %+v", third)
	}
}

func TestApify_Timeout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/acts/"+GoogleMapsActor+"/runs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id":"slow"}}`))
	})
	mux.HandleFunc("/acts/"+GoogleMapsActor+"/runs/slow/dataset/items", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewApifyClient("tok", srv.URL, time.Second, WithPolling(time.Millisecond, 3))
	_, err := client.FindBusinesses(context.Background(), BusinessQuery{Query: "cafe", Location: "Austin"})
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("FindBusinesses() error = %v, want ErrTimeout", err)
	}
}

func TestApify_Validation(t *testing.T) {
	if _, err := NewApifyClient("", "", time.Second).FindBusinesses(context.Background(), BusinessQuery{Query: "a", Location: "b"}); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("missing token error = %v", err)
	}
	if _, err := NewApifyClient("tok", "", time.Second).FindBusinesses(context.Background(), BusinessQuery{Query: "a"}); err == nil {
		t.Error("missing location should fail")
	}
}

func TestApify_StartError(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(http.StatusForbidden, `{"error":{"type":"forbidden"}}`, nil))
	defer srv.Close()

	_, err := NewApifyClient("tok", srv.URL, time.Second, WithPolling(time.Millisecond, 1)).
		FindBusinesses(context.Background(), BusinessQuery{Query: "a", Location: "b"})
	if err == nil {
		t.Error("FindBusinesses() expected error on rejected run")
	}
}
