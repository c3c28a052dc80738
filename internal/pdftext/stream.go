package pdftext

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// extractPageText pulls the content stream for one page and decodes its text
// operators.
func extractPageText(ctx *model.Context, pageNr int) (string, error) {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		return "", fmt.Errorf("page %d content: %w", pageNr, err)
	}
	if r == nil {
		return "", nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("page %d read: %w", pageNr, err)
	}
	return decodeContentStream(data), nil
}

// decodeContentStream walks the content stream operators and rebuilds the
// page text. Show-text operators (Tj, TJ, ') contribute characters; line
// operators (T*, ') contribute newlines and positioning operators (Td, TD)
// contribute spaces, so downstream line-based segmentation sees real lines.
func decodeContentStream(data []byte) string {
	var sb strings.Builder

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			for _, lit := range stringLiterals(line) {
				sb.WriteString(decodePDFString(lit))
			}
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			for _, lit := range stringLiterals(line) {
				sb.WriteByte('\n')
				sb.WriteString(decodePDFString(lit))
			}
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")):
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
		case bytes.Equal(line, []byte("T*")):
			sb.WriteByte('\n')
		}
	}

	return normalizeText(sb.String())
}

// stringLiterals collects the contents of unescaped ( ... ) literals.
func stringLiterals(line []byte) [][]byte {
	var out [][]byte
	depth := 0
	var cur []byte
	for i := 0; i < len(line); i++ {
		b := line[i]
		if b == '\\' && i+1 < len(line) && depth > 0 {
			cur = append(cur, b, line[i+1])
			i++
			continue
		}
		switch b {
		case '(':
			depth++
			if depth == 1 {
				cur = nil
				continue
			}
		case ')':
			depth--
			if depth == 0 {
				out = append(out, cur)
				continue
			}
		}
		if depth > 0 {
			cur = append(cur, b)
		}
	}
	return out
}

// decodePDFString handles basic PDF escape sequences.
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			// Octal escape (e.g. \040 for space).
			if raw[i] >= '0' && raw[i] <= '7' {
				val := int(raw[i] - '0')
				for k := 0; k < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; k++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				sb.WriteByte(byte(val))
			} else {
				sb.WriteByte(raw[i])
			}
		}
	}
	return sb.String()
}

// normalizeText collapses runs of spaces and tabs but preserves line breaks,
// so both sentence and activity segmentation see the page the way it reads.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var sb strings.Builder
	prevSpace := false
	prevNewline := false
	for _, r := range text {
		switch {
		case r == '\n':
			if !prevNewline && sb.Len() > 0 {
				sb.WriteByte('\n')
			}
			prevNewline = true
			prevSpace = false
		case unicode.IsSpace(r):
			if !prevSpace && !prevNewline && sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			prevSpace = true
		case unicode.IsPrint(r):
			sb.WriteRune(r)
			prevSpace = false
			prevNewline = false
		}
	}
	return strings.TrimSpace(sb.String())
}
