package services

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

type DocumentKind string

const (
	DocumentKindPDF         DocumentKind = "pdf"
	DocumentKindDOCX        DocumentKind = "docx"
	DocumentKindUnsupported DocumentKind = ""
)

// DetectDocumentKind looks only at the filename suffix, case-insensitively.
func DetectDocumentKind(filename string) DocumentKind {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return DocumentKindPDF
	case ".docx":
		return DocumentKindDOCX
	default:
		return DocumentKindUnsupported
	}
}

type DocumentExtractor interface {
	ExtractText(data []byte, kind DocumentKind) (string, error)
}

type documentExtractor struct{}

func NewDocumentExtractor() DocumentExtractor {
	return &documentExtractor{}
}

// ExtractText implements DocumentExtractor. Unsupported kinds and unreadable
// documents are reported as ErrValidation.
func (d *documentExtractor) ExtractText(data []byte, kind DocumentKind) (string, error) {
	switch kind {
	case DocumentKindPDF:
		return extractPDFText(data)
	case DocumentKindDOCX:
		return extractDOCXText(data)
	default:
		return "", fmt.Errorf("%w: Unsupported file type", ErrValidation)
	}
}

func extractPDFText(data []byte) (text string, err error) {
	// the pdf package panics on some malformed xref tables
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: failed to parse PDF: %v", ErrValidation, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: failed to open PDF: %v", ErrValidation, err)
	}

	totalPage := r.NumPage()
	pages := make([]string, 0, totalPage)

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// keep the slot so page order is preserved
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}

	return strings.Join(pages, "\n"), nil
}

func extractDOCXText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: failed to open DOCX: %v", ErrValidation, err)
	}
	defer doc.Close()

	paragraphs, err := paragraphsFromDocumentXML(doc.Editable().GetContent())
	if err != nil {
		return "", fmt.Errorf("%w: failed to read DOCX body: %v", ErrValidation, err)
	}

	return strings.Join(paragraphs, "\n"), nil
}

// paragraphsFromDocumentXML returns the text of every body-level <w:p> in
// word/document.xml, in document order. Paragraphs nested in tables are
// skipped, and so is everything inside text boxes (w:txbxContent), so the
// anchoring paragraph keeps its own text and a box duplicated across
// mc:Choice and mc:Fallback is not read twice.
func paragraphsFromDocumentXML(content string) ([]string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var (
		paragraphs []string
		current    strings.Builder
		inPara     bool
		inText     bool
		tableDepth int
		boxDepth   int
	)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "txbxContent" {
				boxDepth++
			}
			if boxDepth > 0 {
				continue
			}

			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "p":
				if tableDepth == 0 {
					inPara = true
					current.Reset()
				}
			case "t":
				inText = inPara
			case "tab":
				if inPara {
					current.WriteString("\t")
				}
			case "br", "cr":
				if inPara {
					current.WriteString("\n")
				}
			}
		case xml.EndElement:
			if boxDepth > 0 {
				if t.Name.Local == "txbxContent" {
					boxDepth--
				}
				continue
			}

			switch t.Name.Local {
			case "tbl":
				tableDepth--
			case "p":
				if inPara && tableDepth == 0 {
					paragraphs = append(paragraphs, current.String())
					inPara = false
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText && boxDepth == 0 {
				current.Write(t)
			}
		}
	}

	return paragraphs, nil
}
