package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFreshness(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{input: "pd", want: "pd", wantOK: true},
		{input: "PW", want: "pw", wantOK: true},
		{input: " pm ", want: "pm", wantOK: true},
		{input: "py", want: "py", wantOK: true},
		{input: "2024-01-01to2024-01-31", want: "2024-01-01to2024-01-31", wantOK: true},
		{input: "2024-01-01TO2024-01-31", want: "2024-01-01to2024-01-31", wantOK: true},
		{input: "2024-02-29to2024-02-29", want: "2024-02-29to2024-02-29", wantOK: true},
		{input: "2024-13-01to2024-01-31"},
		{input: "2024-02-30to2024-03-01"},
		{input: "2023-02-29to2023-03-01"},
		{input: "2024-03-10to2024-03-01"},
		{input: "2024-1-01to2024-01-31"},
		{input: "2024-01-01"},
		{input: "past-day"},
		{input: "pdx"},
		{input: ""},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := NormalizeFreshness(tc.input)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestZhipuRecencyFilter(t *testing.T) {
	assert.Equal(t, "oneDay", zhipuRecencyFilter("pd"))
	assert.Equal(t, "oneWeek", zhipuRecencyFilter("pw"))
	assert.Equal(t, "oneMonth", zhipuRecencyFilter("pm"))
	assert.Equal(t, "oneYear", zhipuRecencyFilter("py"))
	assert.Equal(t, "noLimit", zhipuRecencyFilter(""))
	assert.Equal(t, "noLimit", zhipuRecencyFilter("2024-01-01to2024-01-31"))
}
