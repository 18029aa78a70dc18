package constants

import "os"

func GetPort() string {
	port := os.Getenv("PORT")
	if port != "" {
		return ":" + port
	}
	return ":8080"
}

func GetMetadataEndpoint() string {
	endpoint := os.Getenv("METADATA_ENDPOINT")
	if endpoint != "" {
		return endpoint
	}
	return "http://localhost:8000"
}

func GetMetadataTable() string {
	table := os.Getenv("METADATA_TABLE")
	if table != "" {
		return table
	}
	return "musicxml-metadata"
}

// MIDI export resolution in ticks per quarter note.
const TicksPerQuarter = 960

const DefaultTempo = 120.0

// Divisions used when a part never declares one. MusicXML requires a
// divisions attribute before the first note, but some writers omit it.
const DefaultDivisions = 1
