package extract

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"resume-ats/internal/shared/storage/object"
)

// FileType is a supported resume file format.
type FileType string

const (
	PDF  FileType = "pdf"
	DOC  FileType = "doc"
	DOCX FileType = "docx"
	TXT  FileType = "txt"
)

const (
	mimePDF  = "application/pdf"
	mimeDOC  = "application/msword"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	// MaxInputBytes caps how much of a stored object is read for extraction.
	MaxInputBytes = 10 << 20
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrExtraction      = errors.New("text extraction failed")
)

// DetectFileType resolves the file type from the file extension, falling back
// to the sniffed mime type.
func DetectFileType(fileName, mimeType string) (FileType, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return PDF, nil
	case ".docx":
		return DOCX, nil
	case ".doc":
		return DOC, nil
	case ".txt", ".text":
		return TXT, nil
	}
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	switch clean {
	case mimePDF:
		return PDF, nil
	case mimeDOCX:
		return DOCX, nil
	case mimeDOC:
		return DOC, nil
	case "text/plain":
		return TXT, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedType, fileName)
}

// ExtractText pulls text from a stored object and persists a derived .extracted.txt copy.
func ExtractText(ctx context.Context, store object.ObjectStore, fileKey string, fileType FileType) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	body, err := store.Open(ctx, fileKey)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s: %w", fileKey, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(io.LimitReader(body, MaxInputBytes+1))
	if err != nil {
		return "", fmt.Errorf("extract text key=%s: read: %w", fileKey, err)
	}
	if len(raw) > MaxInputBytes {
		return "", fmt.Errorf("extract text key=%s: %w: file exceeds %d bytes", fileKey, ErrExtraction, MaxInputBytes)
	}

	text, err := FromBytes(ctx, raw, fileType)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s: %w", fileKey, err)
	}

	extractedKey := fileKey + ".extracted.txt"
	if _, err := store.SaveWithKey(ctx, extractedKey, "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
		return "", fmt.Errorf("extract text key=%s: save derived text: %w", fileKey, err)
	}
	return text, nil
}

// FromBytes extracts plain text from an in-memory payload.
func FromBytes(ctx context.Context, data []byte, fileType FileType) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var (
		text string
		err  error
	)
	switch fileType {
	case PDF:
		text, err = extractPDF(data)
	case DOCX:
		text, err = extractDOCX(data)
	case DOC:
		text, err = extractLegacyDOC(data)
	case TXT:
		text = strings.ToValidUTF8(string(data), "")
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, fileType)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrExtraction, fileType, err)
	}
	return text, nil
}

// The pdf reader panics on some malformed cross-reference tables.
func extractPDF(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("malformed pdf: %v", r)
		}
	}()
	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()
	return stripDocxXML(doc.Editable().GetContent()), nil
}

// stripDocxXML keeps character data and turns paragraph and break ends into newlines.
func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.StartElement:
			if t.Name.Local == "tab" {
				buf.WriteString(" ")
			}
		case xml.EndElement:
			if (t.Name.Local == "p" || t.Name.Local == "br") && buf.Len() > 0 {
				buf.WriteString("\n")
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

// minDocRun is the shortest printable run kept from a legacy .doc binary.
const minDocRun = 4

// extractLegacyDOC recovers printable text runs from a Word 97-2003 binary.
// The format stores body text either as 8-bit or UTF-16LE, so both are scanned
// and the longer result wins.
func extractLegacyDOC(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty doc data")
	}
	narrow := printableRuns(data, 1)
	wide := printableRuns(data, 2)
	text := narrow
	if len(wide) > len(narrow) {
		text = wide
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.New("no readable text found")
	}
	return text, nil
}

func printableRuns(data []byte, width int) string {
	var out, run strings.Builder
	flush := func() {
		if utf8.RuneCountInString(run.String()) >= minDocRun {
			if out.Len() > 0 {
				out.WriteByte('\n')
			}
			out.WriteString(strings.TrimSpace(run.String()))
		}
		run.Reset()
	}
	for i := 0; i+width <= len(data); i += width {
		b := data[i]
		if width == 2 && data[i+1] != 0 {
			flush()
			continue
		}
		switch {
		case b == '\r' || b == '\n':
			flush()
		case b == '\t' || (b >= 0x20 && b < 0x7f):
			run.WriteByte(b)
		default:
			flush()
		}
	}
	flush()
	return out.String()
}
