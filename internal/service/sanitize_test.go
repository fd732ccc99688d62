package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanTextStripsEncodedMarkup(t *testing.T) {
	cases := map[string]string{
		"&lt;b&gt;Ada&lt;/b&gt;":                         "Ada",
		"&amp;lt;script&amp;gt;x&amp;lt;/script&amp;gt;": "",
		"<i>Ada</i> &lt;i&gt;Lovelace&lt;/i&gt;":         "Ada Lovelace",
		"Tom & Jerry":                                    "Tom & Jerry",
		"a < b":                                          "a < b",
	}
	for input, want := range cases {
		require.Equal(t, want, cleanText(input), input)
	}
}

func TestCleanRequiredRejectsEncodedMarkupOnly(t *testing.T) {
	_, err := cleanRequired("&lt;script&gt;&lt;/script&gt;")
	require.ErrorIs(t, err, ErrInvalidText)
}
