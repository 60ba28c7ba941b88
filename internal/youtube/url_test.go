package youtube

import (
	"errors"
	"testing"
)

func TestParseVideoID(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "watch url",
			input: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
		},
		{
			name:  "watch url with extra params",
			input: "https://www.youtube.com/watch?t=42&v=dQw4w9WgXcQ&list=PL123",
			want:  "dQw4w9WgXcQ",
		},
		{
			name:  "short link",
			input: "https://youtu.be/dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
		},
		{
			name:  "short link with query",
			input: "https://youtu.be/dQw4w9WgXcQ?si=abc",
			want:  "dQw4w9WgXcQ",
		},
		{
			name:  "embed url",
			input: "https://www.youtube.com/embed/dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
		},
		{
			name:  "shorts url",
			input: "https://www.youtube.com/shorts/dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
		},
		{
			name:  "bare id",
			input: "dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "not a video",
			input:   "https://example.com/page",
			wantErr: true,
		},
		{
			name:    "too short for an id",
			input:   "abc123",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseVideoID(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidVideo) {
					t.Errorf("error = %v, expected ErrInvalidVideo", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("id = %q, expected %q", got, tc.want)
			}
		})
	}
}

func TestIsVideoURL(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input string
		want  bool
	}{
		{"https://www.youtube.com/watch?v=abc", true},
		{"https://youtu.be/abc", true},
		{"  https://YouTube.com/shorts/abc  ", true},
		{"https://vimeo.com/12345", false},
		{"buy milk", false},
		{"", false},
	}

	for _, tc := range testCases {
		if got := IsVideoURL(tc.input); got != tc.want {
			t.Errorf("IsVideoURL(%q) = %v, expected %v", tc.input, got, tc.want)
		}
	}
}

func TestWatchURL(t *testing.T) {
	t.Parallel()

	want := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	if got := WatchURL("dQw4w9WgXcQ"); got != want {
		t.Errorf("url = %q, expected %q", got, want)
	}
}
