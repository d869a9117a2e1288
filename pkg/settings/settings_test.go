package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCliParams(t *testing.T) {
	got := NewCliParams()

	assert.Equal(t, &Run{MinLogLevel: 0, Output: "table"}, got)
	assert.False(t, got.DebugEnabled())
}

func TestDebugEnabled(t *testing.T) {
	tests := []struct {
		name string
		run  *Run
		want bool
	}{
		{"nil settings", nil, false},
		{"info level", &Run{MinLogLevel: 0}, false},
		{"debug level", &Run{MinLogLevel: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.run.DebugEnabled())
		})
	}
}

func TestVersionInformationDefaults(t *testing.T) {
	assert.Equal(t, "gridfit", CliBinaryName)
	assert.NotEmpty(t, VersionInformation.BuildVersion)
}
