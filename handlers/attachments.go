package handlers

import (
	"clementus360/edu-copilot/attachments"
	"clementus360/edu-copilot/config"
	"clementus360/edu-copilot/types"
	"net/http"
)

const maxUploadBytes = 5 * config.MaxAttachmentBytes

// UploadAttachmentsHandler summarises the "files" parts of a multipart form.
// Rejected files are reported next to the accepted ones; the request itself
// only fails when the form cannot be read.
func (h *Handler) UploadAttachmentsHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeError(w, "No files uploaded", http.StatusBadRequest)
		return
	}

	accepted := []types.Attachment{}
	var rejected []string

	// one at a time, in submission order
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			rejected = append(rejected, "Erro ao processar arquivo "+fh.Filename+": "+err.Error())
			continue
		}

		att, errs := attachments.IngestAll([]attachments.File{{
			Name:     fh.Filename,
			MIMEType: fh.Header.Get("Content-Type"),
			Size:     fh.Size,
			Reader:   f,
		}})
		f.Close()

		accepted = append(accepted, att...)
		for _, err := range errs {
			rejected = append(rejected, err.Error())
		}
	}

	writeJSON(w, http.StatusOK, types.AttachmentsResponse{
		Success:     len(accepted) > 0,
		Attachments: accepted,
		Rejected:    rejected,
	})
}
