package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"github.com/goccy/go-json"
)

//go:embed prompt.tmpl
var promptText string

// Schema is the JSON schema the completion reply must follow. It is embedded
// in every prompt as the format instructions.
//
//go:embed schema.json
var Schema string

// SystemMessage is sent ahead of the prompt on every call.
const SystemMessage = "Remember to strictly follow json format provided in instructions."

var promptTemplate = template.Must(template.New("prompt").Funcs(template.FuncMap{
	"json": func(v any) (string, error) {
		b, err := json.MarshalIndent(v, "", "  ")
		return string(b), err
	},
}).Parse(promptText))

// BuildPrompt renders the instruction text for in.
func BuildPrompt(in Input) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Input
		Schema string
	}{Input: in, Schema: Schema}

	if err := promptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("report.BuildPrompt: %w", err)
	}
	return buf.String(), nil
}
