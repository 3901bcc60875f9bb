package limiter

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/tabv/pkg/loader"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		errMsg  string
	}{
		{name: "valid limit only", cfg: Config{Limit: 10}},
		{name: "valid offset only", cfg: Config{Offset: 5}},
		{name: "valid limit and offset", cfg: Config{Limit: 10, Offset: 5}},
		{name: "valid tail only", cfg: Config{Tail: 10}},
		{name: "tail ignores offset (valid)", cfg: Config{Tail: 10, Offset: 5}},
		{
			name:    "limit and tail mutually exclusive",
			cfg:     Config{Limit: 10, Tail: 5},
			wantErr: true,
			errMsg:  "mutually exclusive",
		},
		{name: "negative limit invalid", cfg: Config{Limit: -1}, wantErr: true, errMsg: "--limit must be non-negative"},
		{name: "negative offset invalid", cfg: Config{Offset: -1}, wantErr: true, errMsg: "--offset must be non-negative"},
		{name: "negative tail invalid", cfg: Config{Tail: -3}, wantErr: true, errMsg: "--tail must be non-negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestIsActive(t *testing.T) {
	assert.False(t, Config{}.IsActive())
	assert.True(t, Config{Limit: 1}.IsActive())
	assert.True(t, Config{Offset: 1}.IsActive())
	assert.True(t, Config{Tail: 1}.IsActive())
}

func TestWindow(t *testing.T) {
	tests := []struct {
		cfg        Config
		n          int
		start, end int
	}{
		{Config{}, 10, 0, 10},
		{Config{Limit: 3}, 10, 0, 3},
		{Config{Offset: 4}, 10, 4, 10},
		{Config{Offset: 4, Limit: 3}, 10, 4, 7},
		{Config{Offset: 8, Limit: 5}, 10, 8, 10},
		{Config{Offset: 20}, 10, 10, 10},
		{Config{Tail: 3}, 10, 7, 10},
		{Config{Tail: 30, Offset: 2}, 10, 0, 10},
		{Config{Limit: 2}, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%+v/%d", tt.cfg, tt.n), func(t *testing.T) {
			start, end := tt.cfg.Window(tt.n)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func numbered(n int) loader.Sheet {
	s := loader.Sheet{Name: "s", Headers: []string{"n"}}
	for i := 0; i < n; i++ {
		s.Rows = append(s.Rows, []string{fmt.Sprint(i)})
	}
	return s
}

func TestApplyKeepsHeaders(t *testing.T) {
	got := Config{Offset: 1, Limit: 2}.Apply(numbered(5))
	assert.Equal(t, []string{"n"}, got.Headers)
	assert.Equal(t, [][]string{{"1"}, {"2"}}, got.Rows)
}

func TestLoader(t *testing.T) {
	base := loader.Func(func(path string) ([]loader.Sheet, error) {
		if path == "bad" {
			return nil, errors.New("boom")
		}
		return []loader.Sheet{numbered(5), numbered(1)}, nil
	})

	l := Loader(base, Config{Tail: 2}, logr.Discard())
	sheets, err := l.Load("ok")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"3"}, {"4"}}, sheets[0].Rows)
	assert.Equal(t, [][]string{{"0"}}, sheets[1].Rows)

	_, err = l.Load("bad")
	assert.EqualError(t, err, "boom")
}
