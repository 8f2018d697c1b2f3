package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGCSPublicURL(t *testing.T) {
	assert.Equal(t, "https://storage.googleapis.com/b/metadata/x.json", GCSPublicURL("b", "/metadata/x.json", "d"))
	assert.Equal(t, "https://storage.googleapis.com/d/x.json", GCSPublicURL(" ", "x.json", "d"))
	assert.Equal(t, "https://storage.googleapis.com/b/a%20b/c.json", GCSPublicURL("b", "a b/c.json", ""))
}

func TestJoinObjectPath(t *testing.T) {
	assert.Equal(t, "metadata/ghiblipepe.json", JoinObjectPath("/metadata/", "", "ghiblipepe.json"))
	assert.Equal(t, "x.json", JoinObjectPath("", "x.json"))
	assert.Equal(t, "", JoinObjectPath("", " / "))
}
