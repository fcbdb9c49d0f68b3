package util

import (
	"encoding/json"
	"fmt"
	"os"

	"dealtown/models"
)

// ReadListingRecordsFromJSON loads a JSON array of listing rows from disk.
func ReadListingRecordsFromJSON(filePath string) ([]models.ListingRecord, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var records []models.ListingRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal listings in %q: %w", filePath, err)
	}
	return records, nil
}

// ReadVenueRecordsFromJSON loads a JSON array of venues from disk.
func ReadVenueRecordsFromJSON(filePath string) ([]models.VenueRecord, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var venues []models.VenueRecord
	if err := json.Unmarshal(data, &venues); err != nil {
		return nil, fmt.Errorf("failed to unmarshal venues in %q: %w", filePath, err)
	}
	return venues, nil
}
