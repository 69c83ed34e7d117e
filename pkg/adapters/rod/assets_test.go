package rod

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbeddedAssets(t *testing.T) {
	assert.Contains(t, calloutCSS, "--arrow-left")
	assert.Contains(t, calloutCSS, `:host([data-theme="light"])`)
	assert.Contains(t, runtimeJS, bindingName)
	assert.Contains(t, runtimeJS, "window.__waypoint")
}
