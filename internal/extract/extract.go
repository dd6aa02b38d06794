// Package extract converts uploaded course material into plain text.
//
// Extraction never fails hard: unsupported formats yield a fixed marker and
// decoder errors are folded into the returned text, so the stored
// extracted_text is always a string the rest of the pipeline can carry.
package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/ledongthuc/pdf"
)

// UnsupportedMarker is returned for file extensions the service cannot decode.
const UnsupportedMarker = "Unsupported file format"

// Text extracts plain text from the given file content, dispatching on the
// filename extension. Supported: .pdf, .docx, .pptx.
func Text(filename string, content []byte) string {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".pdf"):
		return fromPDF(content)
	case strings.HasSuffix(name, ".docx"):
		return fromDOCX(content)
	case strings.HasSuffix(name, ".pptx"):
		return fromPPTX(content)
	default:
		return UnsupportedMarker
	}
}

// fromPDF extracts text page by page, joined with newlines.
func fromPDF(content []byte) (text string) {
	// The pdf library panics on some malformed inputs; fold those into the
	// error-text contract like any other decode failure.
	defer func() {
		if r := recover(); r != nil {
			text = fmt.Sprintf("Error extracting PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return fmt.Sprintf("Error extracting PDF: %v", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return fmt.Sprintf("Error extracting PDF: %v", err)
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String()
}

// fromDOCX extracts text paragraph by paragraph, joined with newlines.
func fromDOCX(content []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = fmt.Sprintf("Error extracting DOCX: %v", r)
		}
	}()

	doc, err := docx.Parse(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return fmt.Sprintf("Error extracting DOCX: %v", err)
	}

	var sb strings.Builder
	for _, item := range doc.Document.Body.Items {
		if para, ok := item.(*docx.Paragraph); ok {
			sb.WriteString(para.String())
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

var slidePattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// fromPPTX walks the OOXML archive slide by slide and pulls the text runs out
// of each shape, joined with newlines.
func fromPPTX(content []byte) string {
	archive, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return fmt.Sprintf("Error extracting PPTX: %v", err)
	}

	type slideFile struct {
		num  int
		file *zip.File
	}
	var slides []slideFile
	for _, f := range archive.File {
		m := slidePattern.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		slides = append(slides, slideFile{num: n, file: f})
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].num < slides[j].num })

	var sb strings.Builder
	for _, slide := range slides {
		text, err := slideText(slide.file)
		if err != nil {
			return fmt.Sprintf("Error extracting PPTX: %v", err)
		}
		sb.WriteString(text)
	}
	return sb.String()
}

// slideText decodes one slide's XML, collecting DrawingML text runs (a:t) and
// terminating each paragraph (a:p) with a newline.
func slideText(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	var sb strings.Builder
	decoder := xml.NewDecoder(rc)
	inTextRun := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "t" {
				inTextRun = true
			}
		case xml.EndElement:
			if el.Name.Local == "t" {
				inTextRun = false
			}
			if el.Name.Local == "p" {
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inTextRun {
				sb.Write(el)
			}
		}
	}
	return sb.String(), nil
}
