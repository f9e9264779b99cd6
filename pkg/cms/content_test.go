package cms

import (
	"encoding/json"
	"testing"
)

func TestExtractSelectedArtworksBareArray(t *testing.T) {
	raw := json.RawMessage(`[{"gid": "g1", "title": "Sunset"}, {"gid": "g2", "title": "Dawn"}]`)
	got := ExtractSelectedArtworks(raw)
	if len(got) != 2 || got[0].Gid != "g1" {
		t.Errorf("Expected two artworks, got %v", got)
	}
}

func TestExtractSelectedArtworksWrappedObject(t *testing.T) {
	raw := json.RawMessage(`{"selectedArtworks": [{"gid": "g1"}]}`)
	got := ExtractSelectedArtworks(raw)
	if len(got) != 1 || got[0].Gid != "g1" {
		t.Errorf("Expected the wrapped artwork, got %v", got)
	}
}

func TestExtractSelectedArtworksEmptyPayloads(t *testing.T) {
	if got := ExtractSelectedArtworks(nil); got != nil {
		t.Errorf("Expected nil for an empty payload, got %v", got)
	}
	if got := ExtractSelectedArtworks(json.RawMessage(`null`)); len(got) != 0 {
		t.Errorf("Expected nothing for null, got %v", got)
	}
	if got := ExtractSelectedArtworks(json.RawMessage(`"garbage"`)); len(got) != 0 {
		t.Errorf("Expected nothing for an unexpected shape, got %v", got)
	}
}
