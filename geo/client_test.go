package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAutocomplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("text"); got != "35 rue de la paix" {
			t.Errorf("text = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[
			{"fulltext":"35 Rue de la Paix, 75002 Paris","street":"35 Rue de la Paix","city":"Paris","zipcode":"75002","x":2.3312,"y":48.8693}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	got := c.Autocomplete(context.Background(), "35 rue de la paix")
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Latitude != 48.8693 || got[0].Longitude != 2.3312 {
		t.Errorf("coords = %g/%g", got[0].Latitude, got[0].Longitude)
	}
	if got[0].Value != "48.8693/2.3312" {
		t.Errorf("Value = %q", got[0].Value)
	}
}

func TestAutocompleteDegradesOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	if got := c.Autocomplete(context.Background(), "paris"); len(got) != 0 {
		t.Errorf("len = %d on upstream failure, want 0", len(got))
	}
}

func TestRoutePassesDocumentThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("start"); got != "2.3522,48.8566" {
			t.Errorf("start = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"distance":465.2,"duration":4.3}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	doc, routeErr := c.Route(context.Background(), "2.3522,48.8566", "4.8357,45.764")
	if routeErr != nil {
		t.Fatalf("RouteError: %+v", routeErr)
	}
	if string(doc) != `{"distance":465.2,"duration":4.3}` {
		t.Errorf("doc = %s", doc)
	}
}

func TestRouteDegradesOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	doc, routeErr := c.Route(context.Background(), "a", "b")
	if doc != nil {
		t.Error("document returned on upstream failure")
	}
	if routeErr == nil || routeErr.StatusCode != http.StatusBadGateway {
		t.Errorf("routeErr = %+v", routeErr)
	}
}
