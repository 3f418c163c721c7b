package document

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

const (
	yamlFenceMarker = "---"
	tomlFenceMarker = "+++"
)

// ErrMalformedFrontMatter is returned when an article opens a front matter
// fence that is never closed or whose payload cannot be parsed.
var ErrMalformedFrontMatter = errors.New("malformed article front matter")

// Article is the flat model for markdown-style content: string-keyed metadata
// from the front matter plus the markdown body.
type Article struct {
	Meta map[string]string
	Body string
}

// Title returns the human-readable title declared in the front matter.
func (a *Article) Title() string {
	return a.Meta["title"]
}

// Identifier returns the stable id declared in the front matter.
func (a *Article) Identifier() string {
	return a.Meta["id"]
}

// Language returns the language the article declares about itself, if any.
func (a *Article) Language() string {
	return a.Meta["language"]
}

// RenderBody converts the markdown body to HTML. It is used by the
// completeness check to judge whether the article has any visible content.
func (a *Article) RenderBody() (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(a.Body), &buf); err != nil {
		return "", fmt.Errorf("could not render article body: %w", err)
	}

	return buf.String(), nil
}

// DecodeArticle parses raw bytes into an article. Front matter may be fenced
// with "---" (YAML) or "+++" (TOML); a document without front matter is all
// body. A parse failure is a hard error, the file is unreadable.
func DecodeArticle(data []byte) (*Article, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	for _, fence := range []struct {
		marker    string
		unmarshal func([]byte, any) error
	}{
		{marker: yamlFenceMarker, unmarshal: yaml.Unmarshal},
		{marker: tomlFenceMarker, unmarshal: toml.Unmarshal},
	} {
		if !strings.HasPrefix(text, fence.marker+"\n") {
			continue
		}

		rest := text[len(fence.marker)+1:]
		head, body, found := strings.Cut(rest, "\n"+fence.marker+"\n")
		if !found {
			// A fence that closes at end of file without trailing newline.
			if trimmed, ok := strings.CutSuffix(rest, "\n"+fence.marker); ok {
				head, body = trimmed, ""
			} else {
				return nil, fmt.Errorf("%w: unterminated %q fence", ErrMalformedFrontMatter, fence.marker)
			}
		}

		meta, err := decodeMeta(head, fence.unmarshal)
		if err != nil {
			return nil, err
		}

		return &Article{Meta: meta, Body: strings.TrimLeft(body, "\n")}, nil
	}

	return &Article{Meta: map[string]string{}, Body: text}, nil
}

func decodeMeta(head string, unmarshal func([]byte, any) error) (map[string]string, error) {
	var raw map[string]any
	if err := unmarshal([]byte(head), &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedFrontMatter, err)
	}

	meta := make(map[string]string, len(raw))
	for key, value := range raw {
		meta[key] = fmt.Sprintf("%v", value)
	}

	return meta, nil
}
