package report

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"finsight/pkg/core/calc"
)

// RenderHTML converts the markdown report into a standalone HTML document.
func RenderHTML(result *calc.AnalysisResult, commentary string) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var body bytes.Buffer
	if err := md.Convert([]byte(RenderMarkdown(result, commentary)), &body); err != nil {
		return "", fmt.Errorf("converting report to html: %w", err)
	}
	return fmt.Sprintf(htmlShell, body.String()), nil
}

const htmlShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Financial Analysis</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; max-width: 900px; margin: 2rem auto; padding: 0 1rem; color: #1a1a2e; }
table { border-collapse: collapse; width: 100%%; margin: 1rem 0; }
th, td { border: 1px solid #ddd; padding: 6px 10px; text-align: left; }
th { background: #f4f4f8; }
blockquote { border-left: 4px solid #e0a800; padding-left: 1rem; color: #6b5900; }
</style>
</head>
<body>
%s
</body>
</html>`
