package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {

	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{input: "", want: 0},
		{input: "0", want: 0},
		{input: " 10 ", want: 10 * time.Second},
		{input: "1m30s", want: 90 * time.Second},
		{input: "250ms", want: 250 * time.Millisecond},
		{input: "-1s", wantErr: true},
		{input: "-5", wantErr: true},
		{input: "soon", wantErr: true},
		{input: "9223372036", want: 9223372036 * time.Second},
		{input: "9223372037", wantErr: true},
		{input: "9300000000", wantErr: true},
		{input: "18446744074", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {

			got, err := ParseDuration(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
