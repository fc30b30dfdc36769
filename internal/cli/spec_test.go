package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		token string
		want  Method
	}{
		{"post", MethodPost},
		{"POST", MethodPost},
		{"Post", MethodPost},
		{"get", MethodGet},
		{"GET", MethodGet},
		{"delete", MethodGet},
		{"posts", MethodGet},
		{"", MethodGet},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseMethod(tt.token), "token %q", tt.token)
	}
}

func TestMethodString(t *testing.T) {
	assert.Equal(t, "GET", MethodGet.String())
	assert.Equal(t, "POST", MethodPost.String())
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want RequestSpec
	}{
		{
			name: "no arguments",
			args: nil,
			want: RequestSpec{Method: MethodGet, URL: DefaultURL, URLDefaulted: true},
		},
		{
			name: "method only",
			args: []string{"POST"},
			want: RequestSpec{Method: MethodPost, URL: DefaultURL, URLDefaulted: true},
		},
		{
			name: "all three",
			args: []string{"post", "http://example.test", "--print-body"},
			want: RequestSpec{Method: MethodPost, URL: "http://example.test", PrintBody: true},
		},
		{
			name: "other third token",
			args: []string{"get", "http://example.test", "ignored"},
			want: RequestSpec{Method: MethodGet, URL: "http://example.test"},
		},
		{
			name: "flag is case sensitive",
			args: []string{"get", "http://example.test", "--PRINT-BODY"},
			want: RequestSpec{Method: MethodGet, URL: "http://example.test"},
		},
		{
			name: "unknown method falls back to GET",
			args: []string{"delete", "http://example.test"},
			want: RequestSpec{Method: MethodGet, URL: "http://example.test"},
		},
		{
			name: "url is not validated",
			args: []string{"get", "not a url"},
			want: RequestSpec{Method: MethodGet, URL: "not a url"},
		},
		{
			name: "extra arguments ignored",
			args: []string{"post", "http://example.test", "--print-body", "extra", "more"},
			want: RequestSpec{Method: MethodPost, URL: "http://example.test", PrintBody: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseArgs(tt.args))
		})
	}
}
