package domain

import "math"

// Capacity state labels shown in both consoles. The product UI is Korean.
const (
	CapStateNormal       = "정상"
	CapStateSoftExceeded = "soft-cap 경고"
	CapStateHardExceeded = "hard-cap 초과"
)

// CollectionInfo is the per-collection capacity/usage snapshot returned by
// the backend's /collections endpoint.
type CollectionInfo struct {
	Key            string   `json:"key"`
	Label          string   `json:"label"`
	Name           string   `json:"name"`
	FileNames      []string `json:"file_names,omitempty"`
	Vectors        int      `json:"vectors"`
	SoftUsageRatio float64  `json:"soft_usage_ratio"`
	HardUsageRatio float64  `json:"hard_usage_ratio"`
	SoftExceeded   bool     `json:"soft_exceeded"`
	HardExceeded   bool     `json:"hard_exceeded"`
}

// CapStateLabel derives the capacity state shown in the admin table.
// Hard wins over soft.
func (c CollectionInfo) CapStateLabel() string {
	if c.HardExceeded {
		return CapStateHardExceeded
	}
	if c.SoftExceeded {
		return CapStateSoftExceeded
	}
	return CapStateNormal
}

// SoftPercent returns the soft usage ratio as a rounded percentage.
func (c CollectionInfo) SoftPercent() int {
	return int(math.Round(c.SoftUsageRatio * 100))
}

// HardPercent returns the hard usage ratio as a rounded percentage.
func (c CollectionInfo) HardPercent() int {
	return int(math.Round(c.HardUsageRatio * 100))
}

// CollectionSnapshot is the full /collections response.
type CollectionSnapshot struct {
	DefaultCollectionKey string           `json:"default_collection_key"`
	AutoApprove          bool             `json:"auto_approve"`
	Collections          []CollectionInfo `json:"collections"`
}

// Find returns the collection with the given key, if present.
func (s CollectionSnapshot) Find(key string) (CollectionInfo, bool) {
	for _, item := range s.Collections {
		if item.Key == key {
			return item, true
		}
	}
	return CollectionInfo{}, false
}
