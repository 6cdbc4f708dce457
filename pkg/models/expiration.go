package models

import "time"

// StorageLocation is where a pantry item is kept. Storage changes how
// long an item lasts.
type StorageLocation string

const (
	StorageFridge  StorageLocation = "fridge"
	StorageFreezer StorageLocation = "freezer"
	StoragePantry  StorageLocation = "pantry"
	StorageCounter StorageLocation = "counter"
)

// ValidStorageLocation reports whether s is a known storage location.
func ValidStorageLocation(s StorageLocation) bool {
	switch s {
	case StorageFridge, StorageFreezer, StoragePantry, StorageCounter:
		return true
	}
	return false
}

// PackageType is how an item is packaged at purchase time.
type PackageType string

const (
	PackageFresh    PackageType = "fresh"
	PackageFrozen   PackageType = "frozen"
	PackageCanned   PackageType = "canned"
	PackagePackaged PackageType = "packaged"
)

// ValidPackageType reports whether p is a known package type.
func ValidPackageType(p PackageType) bool {
	switch p {
	case PackageFresh, PackageFrozen, PackageCanned, PackagePackaged:
		return true
	}
	return false
}

// ExpirationUrgency classifies how soon an item needs attention.
type ExpirationUrgency string

const (
	ExpirationUrgencyExpired  ExpirationUrgency = "expired"
	ExpirationUrgencyUseSoon  ExpirationUrgency = "use_soon"
	ExpirationUrgencyModerate ExpirationUrgency = "moderate"
	ExpirationUrgencyFresh    ExpirationUrgency = "fresh"
)

// SeverityRank orders urgency tiers for sorting: expired items rank
// highest, fresh items lowest.
func (u ExpirationUrgency) SeverityRank() int {
	switch u {
	case ExpirationUrgencyExpired:
		return 3
	case ExpirationUrgencyUseSoon:
		return 2
	case ExpirationUrgencyModerate:
		return 1
	default:
		return 0
	}
}

// ExpirationPrediction estimates when a purchased item will expire.
type ExpirationPrediction struct {
	ItemName                string    `json:"item_name"`
	Category                string    `json:"category"`
	PredictedExpirationDate time.Time `json:"predicted_expiration_date"`
	// DaysRemaining is zero or negative once the item has expired.
	DaysRemaining int               `json:"days_remaining"`
	Urgency       ExpirationUrgency `json:"urgency"`
	// Confidence is in [0,1]; items with a known shelf life and a recent
	// purchase date score higher.
	Confidence float64 `json:"confidence"`
}
