// Package attachments turns uploaded CSV and PDF files into short text
// summaries that are folded into the next prompt.
package attachments

import (
	"bytes"
	"clementus360/edu-copilot/config"
	"clementus360/edu-copilot/types"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// File is one upload. Size is the declared size; the reader is still capped.
type File struct {
	Name     string
	MIMEType string
	Size     int64
	Reader   io.Reader
}

// RejectedError marks an upload that is skipped rather than failed.
type RejectedError struct {
	Filename string
	Reason   string
}

func (e *RejectedError) Error() string { return e.Reason }

// Ingest validates f and summarises it.
func Ingest(f File) (types.Attachment, error) {
	kind, ok := kindOf(f)
	if !ok {
		return types.Attachment{}, &RejectedError{
			Filename: f.Name,
			Reason:   fmt.Sprintf("Tipo de arquivo não suportado: %s. Apenas PDF e CSV são aceitos.", f.Name),
		}
	}
	if f.Size > config.MaxAttachmentBytes {
		return types.Attachment{}, tooLarge(f.Name)
	}

	att := types.Attachment{
		ID:        uuid.NewString(),
		Filename:  f.Name,
		Kind:      kind,
		SizeBytes: f.Size,
	}

	switch kind {
	case types.AttachmentTabular:
		data, err := readCapped(f)
		if err != nil {
			return types.Attachment{}, err
		}
		att.SizeBytes = int64(len(data))
		att.ExtractedText = SummarizeTable(f.Name, string(data))
	default:
		att.ExtractedText = SummarizeDocument(f.Name, f.Size)
	}

	return att, nil
}

// IngestAll processes files one at a time in order. Rejections and read
// failures are collected and never stop the batch.
func IngestAll(files []File) ([]types.Attachment, []error) {
	var accepted []types.Attachment
	var failed []error
	for _, f := range files {
		att, err := Ingest(f)
		if err != nil {
			config.Logger.WithField("file", f.Name).Warn("Attachment skipped: ", err)
			failed = append(failed, err)
			continue
		}
		accepted = append(accepted, att)
	}
	return accepted, failed
}

// SummarizeTable describes comma-separated text. Quoted fields are not
// understood: every comma separates columns.
func SummarizeTable(name, content string) string {
	lines := strings.Split(content, "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}

	var headers []string
	if len(lines) > 0 && lines[0] != "" {
		headers = strings.Split(lines[0], ",")
	}

	var rows []string
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) != "" {
			rows = append(rows, line)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Análise do arquivo CSV: %s**\n\n", name)
	b.WriteString("**Estrutura dos dados:**\n")
	fmt.Fprintf(&b, "- Colunas: %d\n", len(headers))
	fmt.Fprintf(&b, "- Linhas de dados: %d\n", len(rows))
	fmt.Fprintf(&b, "- Cabeçalhos: %s\n\n", strings.Join(headers, ", "))

	if len(rows) > 0 {
		fmt.Fprintf(&b, "**Primeiras %d linhas de dados:**\n", config.PreviewRows)
		b.WriteString("```\n")
		b.WriteString(strings.Join(headers, ", ") + "\n")
		for i, row := range rows {
			if i == config.PreviewRows {
				break
			}
			b.WriteString(row + "\n")
		}
		b.WriteString("```\n\n")
	}

	return b.String()
}

// SummarizeDocument only reports name and size; PDF text is not extracted.
func SummarizeDocument(name string, size int64) string {
	return fmt.Sprintf("**Arquivo PDF carregado: %s**\n\n**Tamanho:** %.2f KB\n\n"+
		"*Nota: Para análise completa de PDFs, é recomendado usar ferramentas especializadas.*",
		name, float64(size)/1024)
}

// Context renders accepted attachments as the suffix of the next prompt.
func Context(atts []types.Attachment) string {
	if len(atts) == 0 {
		return ""
	}
	summaries := make([]string, 0, len(atts))
	for _, a := range atts {
		summaries = append(summaries, a.ExtractedText)
	}
	return "\n\n[Arquivos anexados]\n" + strings.Join(summaries, "\n\n")
}

func kindOf(f File) (types.AttachmentKind, bool) {
	ext := strings.ToLower(filepath.Ext(f.Name))
	mime := strings.ToLower(strings.TrimSpace(strings.Split(f.MIMEType, ";")[0]))

	switch {
	case ext == ".csv" || mime == "text/csv":
		return types.AttachmentTabular, true
	case ext == ".pdf" || mime == "application/pdf":
		return types.AttachmentDocument, true
	default:
		return "", false
	}
}

func readCapped(f File) ([]byte, error) {
	if f.Reader == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(f.Reader, config.MaxAttachmentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("Erro ao ler arquivo %s: %w", f.Name, err)
	}
	if n > config.MaxAttachmentBytes {
		return nil, tooLarge(f.Name)
	}
	return buf.Bytes(), nil
}

func tooLarge(name string) *RejectedError {
	return &RejectedError{
		Filename: name,
		Reason:   fmt.Sprintf("Arquivo muito grande: %s. Tamanho máximo: 10MB", name),
	}
}
