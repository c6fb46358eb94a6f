package asset

import (
	"errors"
	"regexp"
)

var ErrMalformedAssetURL = errors.New("url does not contain an asset identifier path")

// asset identifier path segment, expected right after the host
var assetPathRegexp = regexp.MustCompile(`/adobe/assets/urn:[^/]+`)

// Asset is a remote media asset addressed by its delivery origin and
// identifier path. All derived URLs are pure string composition, no
// network calls are made.
type Asset struct {
	Origin string
	Path   string
}

// Parse splits an authored asset link into origin and identifier path.
// Everything before the identifier segment is treated as origin.
func Parse(rawURL string) (Asset, error) {
	loc := assetPathRegexp.FindStringIndex(rawURL)
	if loc == nil {
		return Asset{}, ErrMalformedAssetURL
	}

	return Asset{
		Origin: rawURL[:loc[0]],
		Path:   rawURL[loc[0]:loc[1]],
	}, nil
}

func (a Asset) PosterURL() string {
	return a.Origin + a.Path + "/as/thumbnail.jpeg?preferwebp=true"
}

func (a Asset) DashURL() string {
	return a.Origin + a.Path + "/manifest.mpd"
}

func (a Asset) HlsURL() string {
	return a.Origin + a.Path + "/manifest.m3u8"
}
