package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello, World!":          "hello-world",
		"Solar Water Pumps 2024": "solar-water-pumps-2024",
		"  spaced   out  ":       "spaced-out",
		"---":                    "",
	}
	for input, want := range cases {
		assert.Equal(t, want, Slugify(input), "Slugify(%q)", input)
	}
}

func TestParsePence(t *testing.T) {
	cases := map[string]int64{
		"25":    2500,
		"25.5":  2550,
		"25.50": 2550,
		"0.01":  1,
		".5":    50,
		"-3.25": -325,
	}
	for input, want := range cases {
		got, err := ParsePence(input)
		assert.NoError(t, err, "ParsePence(%q)", input)
		assert.Equal(t, want, got, "ParsePence(%q)", input)
	}
}

func TestParsePenceRejectsBadInput(t *testing.T) {
	for _, input := range []string{"", "abc", "12.345", "1.2.3"} {
		_, err := ParsePence(input)
		assert.Error(t, err, "ParsePence(%q)", input)
	}
}
