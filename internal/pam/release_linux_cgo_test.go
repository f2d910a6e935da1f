//go:build cgo && linux

package pam

import (
	"testing"

	"github.com/isseis/go-pam-env/internal/pamenv"
	"github.com/stretchr/testify/assert"
)

func TestDefaultReleaser_IsBulkOnLinux(t *testing.T) {
	assert.Equal(t, pamenv.BulkReleaser{}, DefaultReleaser())
}
