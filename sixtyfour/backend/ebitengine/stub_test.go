//go:build !ebiten

package ebitengine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-sixtyfour/sixtyfour/backend"
	"github.com/valerio/go-sixtyfour/sixtyfour/backend/ebitengine"
)

func TestStubImplementsBackend(t *testing.T) {
	var _ backend.Backend = (*ebitengine.Backend)(nil)
}

func TestStubInitFails(t *testing.T) {
	b := ebitengine.New(false)
	assert.ErrorIs(t, b.Init(backend.DefaultConfig()), ebitengine.ErrNotAvailable)
	assert.NoError(t, b.Cleanup())
}
