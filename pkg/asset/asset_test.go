package asset

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		rawURL  string
		want    Asset
		wantErr bool
	}{
		{
			name:   "delivery url",
			rawURL: "https://delivery-p123-e456.adobeaemcloud.com/adobe/assets/urn:aaid:aem:1234-5678/as/clip.mp4",
			want: Asset{
				Origin: "https://delivery-p123-e456.adobeaemcloud.com",
				Path:   "/adobe/assets/urn:aaid:aem:1234-5678",
			},
		},
		{
			name:   "bare asset link",
			rawURL: "https://host/adobe/assets/urn:x:y",
			want: Asset{
				Origin: "https://host",
				Path:   "/adobe/assets/urn:x:y",
			},
		},
		{
			name:    "missing urn segment",
			rawURL:  "https://host/content/dam/video.mp4",
			wantErr: true,
		},
		{
			name:    "urn cut off by slash",
			rawURL:  "https://host/adobe/assets/",
			wantErr: true,
		},
		{
			name:    "empty url",
			rawURL:  "",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.rawURL)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedAssetURL) {
					t.Errorf("Parse() error = %v, want ErrMalformedAssetURL", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() unexpected error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDerivedURLs(t *testing.T) {
	a, err := Parse("https://host/adobe/assets/urn:x:y/as/file.ext")
	if err != nil {
		t.Fatalf("Parse() unexpected error = %v", err)
	}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"poster", a.PosterURL(), "https://host/adobe/assets/urn:x:y/as/thumbnail.jpeg?preferwebp=true"},
		{"dash", a.DashURL(), "https://host/adobe/assets/urn:x:y/manifest.mpd"},
		{"hls", a.HlsURL(), "https://host/adobe/assets/urn:x:y/manifest.m3u8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s url = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}
