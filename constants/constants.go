package constants

import "os"

func GetOutDir() string {
	path := os.Getenv("OUT_PATH")
	if path != "" {
		return path
	}
	return "./out"
}

// GetMetadataEndpoint returns the DynamoDB endpoint for score metadata, or
// empty when metadata enrichment is disabled.
func GetMetadataEndpoint() string {
	return os.Getenv("METADATA_ENDPOINT")
}

// Resolution is the minimum representable duration: 1/16 of a quarter note,
// i.e. a 64th note.
const Resolution = 0.0625

// TicksPerQuarter converts quarter floats to fixed-point block keys.
const TicksPerQuarter = 16

// Tolerance absorbs floating-point drift when comparing quarter positions.
const Tolerance = 1e-6

const DefaultQPM = 60.0
const DefaultKey = 0
const DefaultNumerator = 4
const DefaultDenominator = 4
