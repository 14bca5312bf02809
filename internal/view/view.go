// Package view renders the assistant's HTML page.
package view

import (
	"embed"
	"html/template"
	"io"

	"github.com/GregMSThompson/realestate-assistant/internal/dto"
)

const (
	Title         = "Real Estate Assistant with AI, Weather, and AQI"
	Subtitle      = "Get real estate recommendations along with environmental insights."
	AskHeader     = "Ask AI for Real Estate Advice or Other Information"
	LocationLabel = "Enter a location for property search:"
	PromptLabel   = "Enter your prompt:"
	GenerateLabel = "Generate Response"

	// GenerateAction is the form value that triggers text generation.
	GenerateAction = "generate"
)

//go:embed templates/page.html
var templates embed.FS

var pageTemplate = template.Must(template.ParseFS(templates, "templates/page.html"))

type pageData struct {
	Title          string
	Subtitle       string
	AskHeader      string
	LocationLabel  string
	PromptLabel    string
	GenerateLabel  string
	GenerateAction string
	ErrorPrefix    string
	AIHeader       string
	Page           dto.Page
}

// RenderPage writes the full HTML document for one render cycle.
func RenderPage(w io.Writer, page dto.Page) error {
	return pageTemplate.Execute(w, pageData{
		Title:          Title,
		Subtitle:       Subtitle,
		AskHeader:      AskHeader,
		LocationLabel:  LocationLabel,
		PromptLabel:    PromptLabel,
		GenerateLabel:  GenerateLabel,
		GenerateAction: GenerateAction,
		ErrorPrefix:    "Error: ",
		AIHeader:       dto.AIResponseHeader,
		Page:           page,
	})
}
