package decorate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"

	"github.com/vblock/vblock/pkg/asset"
	"github.com/vblock/vblock/pkg/block"
	"github.com/vblock/vblock/pkg/viewer"
)

var ErrNoBlockElement = errors.New("input contains no block element")

// DecoratorCtx rewrites one authored video block into player
// scaffolding: readiness gate, configuration extraction, url
// derivation, rendering, state marker. Failures never propagate past
// the decoration boundary, they are logged and encoded in the marker.
type DecoratorCtx struct {
	logger zerolog.Logger
	config Config
	gate   viewer.Manager
}

func New(gate viewer.Manager, config *Config) *DecoratorCtx {
	return &DecoratorCtx{
		logger: log.With().Str("module", "decorate").Logger(),
		config: config.withDefaultValues(),
		gate:   gate,
	}
}

// Gate returns the readiness gate the decorator was built with.
func (d *DecoratorCtx) Gate() viewer.Manager {
	return d.gate
}

// Decorate runs one decoration pass. The returned bytes are always a
// renderable block carrying the final state marker; the error only
// explains an error outcome and must not be surfaced to the page.
func (d *DecoratorCtx) Decorate(ctx context.Context, r io.Reader) ([]byte, Outcome, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, OutcomeError, fmt.Errorf("unparseable block: %w", err)
	}

	el := blockElement(doc)
	if el == nil {
		return nil, OutcomeError, ErrNoBlockElement
	}

	if err := d.gate.EnsureReady(ctx); err != nil {
		return d.fail(el, err)
	}

	content, err := block.Parse(el)
	if err != nil {
		return d.fail(el, err)
	}

	media, err := asset.Parse(content.VideoURL)
	if err != nil {
		return d.fail(el, err)
	}

	// marker protocol: loading before construction, true after
	block.SetAttr(el, StatusAttr, string(OutcomeLoading))

	if err := d.render(el, content, media); err != nil {
		return d.fail(el, fmt.Errorf("player construction: %w", err))
	}

	block.SetAttr(el, StatusAttr, string(OutcomeLoaded))

	out, err := renderBlock(el)
	if err != nil {
		return nil, OutcomeError, err
	}

	d.logger.Debug().Str("assetPath", media.Path).Msg("block decorated")
	return out, OutcomeLoaded, nil
}

// fail hides the authored content, marks the block and returns it with
// the cause for logging.
func (d *DecoratorCtx) fail(el *html.Node, cause error) ([]byte, Outcome, error) {
	d.logger.Warn().Err(cause).Msg("decoration failed")

	hideAuthoredContent(el)
	block.SetAttr(el, StatusAttr, string(OutcomeError))

	out, err := renderBlock(el)
	if err != nil {
		return nil, OutcomeError, err
	}
	return out, OutcomeError, cause
}

// blockElement returns the first element of the parsed fragment body.
func blockElement(doc *html.Node) *html.Node {
	body := block.FindFirst(doc, "body")
	if body == nil {
		return nil
	}

	children := block.ElementChildren(body)
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

func renderBlock(el *html.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, el); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
