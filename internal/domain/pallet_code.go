package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PalletCode errors
var (
	ErrInvalidPalletCount = fmt.Errorf("pallet count must be at least 1")
)

// GeneratePalletCodes mints count pallet identifiers for one production run.
// Each code is productCode_productionNumber_index_destination_timestamp_suffix
// with a 1-based index, a millisecond timestamp shared by the run, and a short
// random suffix per pallet. Two calls with identical arguments yield disjoint sets.
func GeneratePalletCodes(productCode string, productionNumber int64, count int, destination string) ([]string, error) {
	if count < 1 {
		return nil, ErrInvalidPalletCount
	}

	timestamp := time.Now().UnixMilli()

	codes := make([]string, count)
	for i := 0; i < count; i++ {
		suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
		codes[i] = fmt.Sprintf("%s_%d_%d_%s_%d_%s",
			productCode, productionNumber, i+1, destination, timestamp, suffix)
	}

	return codes, nil
}
