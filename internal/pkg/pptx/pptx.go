// Package pptx renders pitch decks as minimal Office Open XML presentations:
// a title slide, one slide per deck slide, and a closing slide.
package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/raw2ready/backend/internal/models"
)

const (
	maxBullets   = 8
	closingTitle = "Thank You"

	accentColor = "2563EB"
	mutedColor  = "6B7280"
)

// Renderer writes .pptx files. The zero value is ready to use.
type Renderer struct {
	// Now stamps the document properties; defaults to time.Now.
	Now func() time.Time
}

func New() *Renderer { return &Renderer{} }

// Render builds the archive. businessName heads the title slide; the deck
// title is used when it is empty.
func (r *Renderer) Render(deck models.Presentation, businessName string) ([]byte, error) {
	title := strings.TrimSpace(businessName)
	if title == "" {
		title = strings.TrimSpace(deck.PresentationTitle)
	}
	if title == "" {
		title = "Business Pitch"
	}

	slides := make([]string, 0, len(deck.Slides)+2)
	slides = append(slides, slideXML(titleSlide(title, deck)))
	for _, s := range deck.Slides {
		slides = append(slides, slideXML(contentSlide(s)))
	}
	slides = append(slides, slideXML(closingSlide(title)))

	now := time.Now
	if r != nil && r.Now != nil {
		now = r.Now
	}

	parts := []struct{ name, body string }{
		{"[Content_Types].xml", contentTypesXML(len(slides))},
		{"_rels/.rels", relsXML(
			relationship{"rId1", relOfficeDoc, "ppt/presentation.xml"},
			relationship{"rId2", relCoreProps, "docProps/core.xml"},
			relationship{"rId3", relExtProps, "docProps/app.xml"},
		)},
		{"docProps/core.xml", corePropsXML(title, now().UTC().Format(time.RFC3339))},
		{"docProps/app.xml", appPropsXML(len(slides))},
		{"ppt/presentation.xml", presentationXML(len(slides))},
		{"ppt/_rels/presentation.xml.rels", presentationRels(len(slides))},
		{"ppt/slideMasters/slideMaster1.xml", slideMasterXML},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", relsXML(
			relationship{"rId1", relSlideLay, "../slideLayouts/slideLayout1.xml"},
			relationship{"rId2", relTheme, "../theme/theme1.xml"},
		)},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayoutXML},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", relsXML(
			relationship{"rId1", relSlideMastr, "../slideMasters/slideMaster1.xml"},
		)},
		{"ppt/theme/theme1.xml", themeXML},
	}
	slideRels := relsXML(relationship{"rId1", relSlideLay, "../slideLayouts/slideLayout1.xml"})
	for i, body := range slides {
		n := i + 1
		parts = append(parts,
			struct{ name, body string }{fmt.Sprintf("ppt/slides/slide%d.xml", n), body},
			struct{ name, body string }{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), slideRels},
		)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", p.name, err)
		}
		if _, err := w.Write([]byte(p.body)); err != nil {
			return nil, fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return buf.Bytes(), nil
}

func titleSlide(title string, deck models.Presentation) []textBox {
	subtitle := ""
	if deck.GeneratedTagline != nil {
		subtitle = strings.TrimSpace(*deck.GeneratedTagline)
	}
	if subtitle == "" && !strings.EqualFold(strings.TrimSpace(deck.PresentationTitle), title) {
		subtitle = strings.TrimSpace(deck.PresentationTitle)
	}

	boxes := []textBox{{
		name: "Title", x: 838200, y: 2130000, w: 10515600, h: 1470000,
		paras: []paragraph{{text: title, size: 4800, bold: true, center: true, color: accentColor}},
	}}
	if subtitle != "" {
		boxes = append(boxes, textBox{
			name: "Subtitle", x: 1524000, y: 3750000, w: 9144000, h: 1000000,
			paras: []paragraph{{text: PlainText(subtitle), size: 2400, center: true, color: mutedColor}},
		})
	}
	return boxes
}

func contentSlide(s models.Slide) []textBox {
	title := strings.TrimSpace(s.Title)
	if title == "" {
		title = fmt.Sprintf("Slide %d", s.SlideNumber)
	}
	boxes := []textBox{{
		name: "Title", x: 838200, y: 365125, w: 10515600, h: 1000000,
		paras: []paragraph{{text: PlainText(title), size: 3600, bold: true, color: accentColor}},
	}}

	var body []paragraph
	if s.Subtitle != nil && strings.TrimSpace(*s.Subtitle) != "" {
		body = append(body, paragraph{text: PlainText(*s.Subtitle), size: 2200, color: mutedColor})
	}
	for i, item := range s.Content {
		if i == maxBullets {
			break
		}
		if line := PlainText(item); line != "" {
			body = append(body, paragraph{text: line, size: 2000, bullet: true})
		}
	}
	if len(body) > 0 {
		boxes = append(boxes, textBox{name: "Content", x: 838200, y: 1500000, w: 10515600, h: 4700000, paras: body})
	}
	return boxes
}

func closingSlide(title string) []textBox {
	return []textBox{
		{
			name: "Title", x: 838200, y: 2300000, w: 10515600, h: 1300000,
			paras: []paragraph{{text: closingTitle, size: 5400, bold: true, center: true, color: accentColor}},
		},
		{
			name: "Subtitle", x: 1524000, y: 3700000, w: 9144000, h: 800000,
			paras: []paragraph{{text: title, size: 2400, center: true, color: mutedColor}},
		},
	}
}
