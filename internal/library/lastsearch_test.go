// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"reflect"
	"testing"
)

func TestSaveAndLoadSearchRoundTrip(t *testing.T) {
	dir := t.TempDir()

	batch := SavedSearch{
		Query:           "widget therapy",
		TotalHits:       12345,
		TopicMultiplier: 2.0,
	}
	batch.Papers = append(batch.Papers,
		evaluatedFixture(t, "10.1/s.1", "Efficacy of widget therapy", intPtr(55), 42),
		evaluatedFixture(t, "10.1/s.2", "Fragment", nil, 1),
	)

	if err := SaveSearch(dir, batch); err != nil {
		t.Fatalf("SaveSearch: %v", err)
	}

	got, err := LoadSearch(dir)
	if err != nil {
		t.Fatalf("LoadSearch: %v", err)
	}
	if !reflect.DeepEqual(got, batch) {
		t.Errorf("round trip changed the batch:\n got %+v\nwant %+v", got, batch)
	}
}

func TestLoadSearchMissing(t *testing.T) {
	if _, err := LoadSearch(t.TempDir()); err == nil {
		t.Error("missing saved search should return an error")
	}
}
