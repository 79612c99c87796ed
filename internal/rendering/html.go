package rendering

import (
	"embed"
	"html/template"
	"strings"
	"sync"
)

//go:embed templates/document.html.tmpl
var templateFiles embed.FS

var (
	documentTemplate     *template.Template
	documentTemplateErr  error
	documentTemplateOnce sync.Once
)

// RenderHTML renders the printable HTML page of a document. All plan text is escaped.
func RenderHTML(doc Document) (string, error) {
	tmpl, err := parseTemplate()
	if err != nil {
		return "", err
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, doc); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}

	return result.String(), nil
}

// parseTemplate parses the embedded document template once
func parseTemplate() (*template.Template, error) {
	documentTemplateOnce.Do(func() {
		content, err := templateFiles.ReadFile("templates/document.html.tmpl")
		if err != nil {
			documentTemplateErr = &TemplateError{Message: "template file not embedded", Cause: err}
			return
		}

		documentTemplate, err = template.New("document").Parse(string(content))
		if err != nil {
			documentTemplateErr = &TemplateError{Message: "failed to parse template", Cause: err}
		}
	})
	return documentTemplate, documentTemplateErr
}
