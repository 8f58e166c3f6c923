package markdown

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldhtml "github.com/yuin/goldmark/renderer/html"
)

// Service renders model-written markdown for display and scrubs markup from user-written text.
type Service interface {
	// Render converts markdown into HTML that is safe to embed in a page
	Render(markdown string) (string, error)
	// PlainText removes every tag from user input, keeping only text
	PlainText(input string) string
}

type service struct {
	md     goldmark.Markdown
	ugc    *bluemonday.Policy
	strict *bluemonday.Policy
}

func NewService() Service {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Strikethrough,
			extension.Linkify,
		),
		goldmark.WithRendererOptions(
			goldhtml.WithHardWraps(),
		),
	)

	ugc := bluemonday.UGCPolicy()
	ugc.RequireNoFollowOnLinks(true)
	ugc.AddTargetBlankToFullyQualifiedLinks(true)

	return &service{
		md:     md,
		ugc:    ugc,
		strict: bluemonday.StrictPolicy(),
	}
}

func (s *service) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return s.ugc.Sanitize(buf.String()), nil
}

// PlainText keeps the text readable: the strict policy escapes entities, which are decoded again.
func (s *service) PlainText(input string) string {
	return strings.TrimSpace(html.UnescapeString(s.strict.Sanitize(input)))
}
