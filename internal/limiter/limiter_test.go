package limiter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		errMsg string
	}{
		{name: "zero value", cfg: Config{}},
		{name: "limit and offset", cfg: Config{Limit: 10, Offset: 5}},
		{name: "tail ignores offset", cfg: Config{Tail: 10, Offset: 5}},
		{name: "limit and tail", cfg: Config{Limit: 10, Tail: 5}, errMsg: "mutually exclusive"},
		{name: "negative limit", cfg: Config{Limit: -1}, errMsg: "--limit must be non-negative"},
		{name: "negative offset", cfg: Config{Offset: -1}, errMsg: "--offset must be non-negative"},
		{name: "negative tail", cfg: Config{Tail: -3}, errMsg: "--tail must be non-negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}

	t.Run("all problems are reported", func(t *testing.T) {
		err := Config{Limit: -1, Offset: -1}.Validate()
		assert.ErrorContains(t, err, "--limit")
		assert.ErrorContains(t, err, "--offset")
	})
}

func TestApply(t *testing.T) {
	rows := []string{"a", "b", "c", "d", "e"}

	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{"inactive keeps everything", Config{}, rows},
		{"limit", Config{Limit: 2}, []string{"a", "b"}},
		{"offset", Config{Offset: 3}, []string{"d", "e"}},
		{"offset and limit", Config{Offset: 1, Limit: 2}, []string{"b", "c"}},
		{"limit past the end", Config{Offset: 4, Limit: 10}, []string{"e"}},
		{"offset past the end", Config{Offset: 9}, []string{}},
		{"tail", Config{Tail: 2}, []string{"d", "e"}},
		{"tail longer than input", Config{Tail: 9}, rows},
		{"tail ignores offset", Config{Tail: 1, Offset: 3}, []string{"e"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(tt.cfg, rows))
		})
	}
}

func TestBounds(t *testing.T) {
	start, end := Config{Offset: 2, Limit: 2}.Bounds(3)
	assert.Equal(t, 2, start)
	assert.Equal(t, 3, end)

	start, end = Config{Tail: 2}.Bounds(0)
	assert.Zero(t, start)
	assert.Zero(t, end)
}
