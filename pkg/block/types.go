package block

// Chapter is one clickable navigation point, parsed from the authored
// data-chapters JSON. It has no identity beyond its list position.
type Chapter struct {
	Label string  `json:"label"`
	Time  float64 `json:"time"`
}

type Flags struct {
	Autoplay     bool
	Loop         bool
	Muted        bool
	ShowControls bool
}

// Content is the validated configuration extracted from one authored
// block. Everything past this boundary consumes the typed structure,
// never the DOM shape.
type Content struct {
	VideoURL string
	Title    string
	Flags    Flags
	Chapters []Chapter
}

// fixed positional row schema of the authoring tool
const (
	rowVideo = iota
	rowTitle
	rowAutoplay
	rowLoop
	rowMuted
)
