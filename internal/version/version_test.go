package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullInfo(t *testing.T) {
	assert.True(t, strings.HasPrefix(FullInfo(), "cxxindex "+Version))
	assert.Equal(t, Version, Info())
}

func TestBuildIDIsStable(t *testing.T) {
	id := BuildID()
	assert.NotEmpty(t, id)
	assert.Equal(t, id, BuildID())
}
