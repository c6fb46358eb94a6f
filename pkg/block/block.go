package block

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
)

var ErrMissingLink = errors.New("block contains no link element")

// Parse extracts the typed content of one authored block element. The
// authoring tool emits child rows in a fixed positional order
// [video, title, autoplay, loop, muted]; data-attributes on the block
// always win over row text. Malformed chapters degrade to an empty
// list, a missing link aborts extraction.
func Parse(el *html.Node) (*Content, error) {
	link := FindFirst(el, "a")
	if link == nil {
		return nil, ErrMissingLink
	}

	videoURL, _ := GetAttr(link, "href")
	rows := ElementChildren(el)

	// controls has no authored row, only the data-attribute
	showControls := true
	if val, ok := GetAttr(el, "data-controls"); ok {
		showControls = isTrue(val)
	}

	return &Content{
		VideoURL: strings.TrimSpace(videoURL),
		Title:    rowText(rows, rowTitle),
		Flags: Flags{
			Autoplay:     resolveFlag(el, "data-autoplay", rows, rowAutoplay),
			Loop:         resolveFlag(el, "data-loop", rows, rowLoop),
			Muted:        resolveFlag(el, "data-muted", rows, rowMuted),
			ShowControls: showControls,
		},
		Chapters: parseChapters(el),
	}, nil
}

// resolveFlag reads a boolean flag from the block data-attribute first,
// then from the positional row text, defaulting to false.
func resolveFlag(el *html.Node, attr string, rows []*html.Node, index int) bool {
	if val, ok := GetAttr(el, attr); ok {
		return isTrue(val)
	}
	return isTrue(rowText(rows, index))
}

// rowText extracts the authored value of one row: a <p> descendant is
// preferred, then the first wrapper child, then the row itself.
func rowText(rows []*html.Node, index int) string {
	if index >= len(rows) {
		return ""
	}

	row := rows[index]
	if p := FindFirst(row, "p"); p != nil {
		return Text(p)
	}
	if children := ElementChildren(row); len(children) > 0 {
		return Text(children[0])
	}
	return Text(row)
}

func parseChapters(el *html.Node) []Chapter {
	raw, ok := GetAttr(el, "data-chapters")
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}

	var chapters []Chapter
	if err := json.Unmarshal([]byte(raw), &chapters); err != nil {
		// malformed chapters are non-fatal, decoration continues
		log.Warn().Err(err).Str("module", "block").Msg("malformed chapters config, ignoring")
		return nil
	}

	return chapters
}

func isTrue(val string) bool {
	return strings.EqualFold(strings.TrimSpace(val), "true")
}
