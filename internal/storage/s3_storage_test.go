package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFileSize(t *testing.T) {
	s := &S3Storage{}

	assert.NoError(t, s.ValidateFileSize(1024, MaxCoverSize))
	assert.NoError(t, s.ValidateFileSize(MaxCoverSize, MaxCoverSize))
	assert.Error(t, s.ValidateFileSize(MaxCoverSize+1, MaxCoverSize))
	assert.Error(t, s.ValidateFileSize(0, MaxCoverSize))
	assert.Error(t, s.ValidateFileSize(-1, MaxCoverSize))
}

func TestValidateContentType(t *testing.T) {
	s := &S3Storage{}

	assert.NoError(t, s.ValidateContentType("image/jpeg", AllowedCoverTypes))
	assert.NoError(t, s.ValidateContentType("image/png", AllowedCoverTypes))
	assert.NoError(t, s.ValidateContentType("image/webp", AllowedCoverTypes))
	assert.Error(t, s.ValidateContentType("application/pdf", AllowedCoverTypes))
	assert.Error(t, s.ValidateContentType("", AllowedCoverTypes))
}
