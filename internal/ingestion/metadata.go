package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Metadata describes one extracted page.
type Metadata struct {
	URL        string `json:"url,omitempty"`
	Kind       Kind   `json:"kind"`
	Timestamp  string `json:"timestamp"` // RFC3339 format
	Hash       string `json:"hash"`      // SHA256 hex digest of the extracted text
	Platform   string `json:"platform,omitempty"`
	Characters int    `json:"characters"`
	Rendered   bool   `json:"rendered,omitempty"` // page was rendered in a headless browser
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(content string, url string, kind Kind) *Metadata {
	return &Metadata{
		URL:        url,
		Kind:       kind,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Hash:       computeHash(content),
		Characters: runeLen(content),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
