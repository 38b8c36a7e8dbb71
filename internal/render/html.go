package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/OatyQuinoa/horizon/internal/analysis"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.Table),
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: Georgia, serif; max-width: 860px; margin: 2rem auto; padding: 0 1rem; color: #1a1a1a; line-height: 1.6; }
h1 { border-bottom: 2px solid #1a1a1a; padding-bottom: 0.3rem; }
h2 { margin-top: 2rem; color: #333; }
blockquote { border-left: 3px solid #888; margin-left: 0; padding-left: 1rem; color: #444; font-style: italic; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #ccc; padding: 0.35rem 0.7rem; text-align: left; }
th { background: #f4f4f4; }
hr { border: none; border-top: 1px solid #ccc; margin: 2rem 0; }
</style>
</head>
<body>
%s
</body>
</html>
`

// HTML renders a briefing as a standalone styled HTML page suitable for
// download. Quoted filing text is escaped before it reaches the markdown
// converter, so excerpts cannot inject markup.
func HTML(b *analysis.Briefing) (string, error) {
	report := Markdown(b)

	var buf bytes.Buffer
	if err := md.Convert([]byte(report), &buf); err != nil {
		return "", fmt.Errorf("convert briefing markdown: %w", err)
	}

	title := b.Meta.CompanyName
	if title == "" {
		title = "Prospectus Briefing"
	}
	return fmt.Sprintf(pageTemplate, html.EscapeString(title), buf.String()), nil
}
