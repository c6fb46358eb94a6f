package decorate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"text/template"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/net/html"

	"github.com/vblock/vblock/pkg/asset"
	"github.com/vblock/vblock/pkg/block"
)

// uiMarkerAttr exempts an element from being hidden with the rest of
// the authored content.
const uiMarkerAttr = "data-video-ui"

// playerParams is the configuration value object handed to the
// external player constructor. Boolean flags travel as "0"/"1".
type playerParams struct {
	PosterImage    string            `json:"posterimage"`
	Autoplay       string            `json:"autoplay"`
	Loop           string            `json:"loop"`
	Muted          string            `json:"muted"`
	HideControlBar string            `json:"hidecontrolbar"`
	Sources        map[string]string `json:"sources"`
}

// render hides the authored rows and appends the player scaffolding:
// chapter nav, wrapper with mount element and the bootstrap script.
func (d *DecoratorCtx) render(el *html.Node, content *block.Content, media asset.Asset) error {
	hideAuthoredContent(el)

	id, err := mountID()
	if err != nil {
		return err
	}

	params, err := json.Marshal(playerParams{
		PosterImage:    media.PosterURL(),
		Autoplay:       boolParam(content.Flags.Autoplay),
		Loop:           boolParam(content.Flags.Loop),
		Muted:          boolParam(content.Flags.Muted),
		HideControlBar: boolParam(!content.Flags.ShowControls),
		Sources: map[string]string{
			"DASH": media.DashURL(),
			"HLS":  media.HlsURL(),
		},
	})
	if err != nil {
		return err
	}

	wrapper := element("div", html.Attribute{Key: "class", Val: "video-player-wrapper"})
	mount := element("div",
		html.Attribute{Key: "id", Val: id},
		html.Attribute{Key: "class", Val: "video-player-mount"},
	)
	if content.Title != "" {
		block.SetAttr(mount, "aria-label", content.Title)
	}
	wrapper.AppendChild(mount)
	el.AppendChild(wrapper)

	if len(content.Chapters) > 0 {
		el.AppendChild(chapterNav(content.Chapters))
	}

	script, err := d.bootstrapScript(id, media.Path, params)
	if err != nil {
		return err
	}
	el.AppendChild(script)

	return nil
}

// hideAuthoredContent hides every child element not explicitly marked
// as UI.
func hideAuthoredContent(el *html.Node) {
	for _, child := range block.ElementChildren(el) {
		if _, ok := block.GetAttr(child, uiMarkerAttr); ok {
			continue
		}
		block.SetAttr(child, "hidden", "")
	}
}

// mountID is practically unique, used only for DOM targeting across
// multiple blocks on one page.
func mountID() (string, error) {
	suffix, err := gonanoid.New(6)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("video-player-%d-%s", time.Now().UnixMilli(), suffix), nil
}

func chapterNav(chapters []block.Chapter) *html.Node {
	nav := element("nav",
		html.Attribute{Key: "class", Val: "video-chapters"},
		html.Attribute{Key: uiMarkerAttr, Val: ""},
	)

	for _, chapter := range chapters {
		button := element("button",
			html.Attribute{Key: "type", Val: "button"},
			html.Attribute{Key: "class", Val: "video-chapter"},
			html.Attribute{Key: "data-chapter-time", Val: strconv.FormatFloat(chapter.Time, 'f', -1, 64)},
		)
		button.AppendChild(&html.Node{Type: html.TextNode, Data: chapter.Label})
		nav.AppendChild(button)
	}

	return nav
}

func element(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type: html.ElementNode,
		Data: tag,
		Attr: attrs,
	}
}

func boolParam(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

type bootstrapData struct {
	ContainerID string
	Namespace   string
	ScriptURL   string
	EventsBase  string
	AssetPath   string
	Params      string
	PollMs      int
	TimeoutMs   int
}

func (d *DecoratorCtx) bootstrapScript(id, assetPath string, params []byte) (*html.Node, error) {
	data := bootstrapData{
		ContainerID: jsString(id),
		Namespace:   jsString(d.config.Namespace),
		ScriptURL:   jsString(d.config.ScriptURL),
		EventsBase:  jsString(d.config.EventsPath),
		AssetPath:   jsString(assetPath),
		Params:      string(params),
		PollMs:      d.config.PollIntervalMs,
		TimeoutMs:   d.config.TimeoutMs,
	}

	var buf bytes.Buffer
	if err := bootstrapTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}

	script := element("script")
	script.AppendChild(&html.Node{Type: html.TextNode, Data: buf.String()})
	return script, nil
}

// jsString encodes a value as a JS string literal. Every dynamic value
// enters the bootstrap pre-encoded, the template itself stays raw.
func jsString(s string) string {
	out, _ := json.Marshal(s)
	return string(out)
}

var bootstrapTemplate = template.Must(template.New("bootstrap").Parse(`(function () {
  var containerId = {{.ContainerID}};
  var namespace = {{.Namespace}};
  var scriptUrl = {{.ScriptURL}};
  var eventsBase = {{.EventsBase}};
  var assetPath = {{.AssetPath}};
  var params = {{.Params}};
  var sessionId = Date.now().toString(36) + '-' + Math.random().toString(36).slice(2, 8);

  var mount = document.getElementById(containerId);
  if (!mount) { return; }
  var blockEl = mount.closest('[data-video-loaded]');

  function send(payload) {
    var body = JSON.stringify(payload);
    var url = eventsBase + '/sessions/' + sessionId + '/events';
    if (navigator.sendBeacon) { navigator.sendBeacon(url, body); return; }
    fetch(url, { method: 'POST', body: body, keepalive: true }).catch(function () {});
  }

  function ensureScript(done) {
    if (window[namespace]) { done(); return; }
    if (!document.querySelector('script[src="' + scriptUrl + '"]')) {
      var tag = document.createElement('script');
      tag.src = scriptUrl;
      tag.async = true;
      document.head.appendChild(tag);
    }
    var waited = 0;
    var timer = setInterval(function () {
      if (window[namespace]) { clearInterval(timer); done(); return; }
      waited += {{.PollMs}};
      if (waited >= {{.TimeoutMs}}) {
        clearInterval(timer);
        if (blockEl) { blockEl.setAttribute('data-video-loaded', 'error'); }
      }
    }, {{.PollMs}});
  }

  function wireAnalytics(player) {
    if (!player.getMediaElement) { return; }
    var media = player.getMediaElement();
    if (!media) { return; }

    media.addEventListener('play', function () { send({ type: 'play', assetPath: assetPath }); });
    media.addEventListener('pause', function () { send({ type: 'pause', assetPath: assetPath }); });
    media.addEventListener('ended', function () { send({ type: 'complete', assetPath: assetPath }); });

    var lastTick = 0;
    media.addEventListener('timeupdate', function () {
      var now = Date.now();
      if (now - lastTick < 1000) { return; }
      lastTick = now;
      send({ type: 'timeupdate', assetPath: assetPath, currentTime: media.currentTime, duration: media.duration || 0 });
    });

    if (!blockEl) { return; }
    blockEl.querySelectorAll('.video-chapter').forEach(function (button) {
      button.addEventListener('click', function () {
        var time = parseFloat(button.getAttribute('data-chapter-time')) || 0;
        try {
          media.currentTime = time;
          var played = media.play();
          if (played && played.catch) { played.catch(function () {}); }
        } catch (err) {
          console.debug('chapter seek failed', err);
        }
        send({ type: 'chapter', assetPath: assetPath, chapter: { label: button.textContent.trim(), time: time } });
      });
    });
  }

  ensureScript(function () {
    try {
      var player = new window[namespace]({ containerId: containerId, params: params });
      player.start();
      wireAnalytics(player);
    } catch (err) {
      console.debug('player construction failed', err);
      if (blockEl) { blockEl.setAttribute('data-video-loaded', 'error'); }
    }
  });
})();
`))
