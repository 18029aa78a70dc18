package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPort(t *testing.T) {
	assert := assert.New(t)

	t.Setenv("PORT", "")
	assert.Equal(":8080", GetPort())

	t.Setenv("PORT", "9999")
	assert.Equal(":9999", GetPort())
}

func TestGetMetadataEndpoint(t *testing.T) {
	assert := assert.New(t)

	t.Setenv("METADATA_ENDPOINT", "")
	assert.Equal("http://localhost:8000", GetMetadataEndpoint())

	t.Setenv("METADATA_ENDPOINT", "http://dynamo:4566")
	assert.Equal("http://dynamo:4566", GetMetadataEndpoint())
}

func TestGetMetadataTable(t *testing.T) {
	assert := assert.New(t)

	t.Setenv("METADATA_TABLE", "")
	assert.Equal("musicxml-metadata", GetMetadataTable())

	t.Setenv("METADATA_TABLE", "metadata-staging")
	assert.Equal("metadata-staging", GetMetadataTable())
}
