package controllers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/fieldtechhq/fieldserve-backend/api/middleware"
	"github.com/fieldtechhq/fieldserve-backend/api/responses"
	"github.com/fieldtechhq/fieldserve-backend/api/validators"
	"github.com/fieldtechhq/fieldserve-backend/internal/tickets"
	"github.com/fieldtechhq/fieldserve-backend/pkg/config"
	pkgerrors "github.com/fieldtechhq/fieldserve-backend/pkg/errors"
	"github.com/fieldtechhq/fieldserve-backend/pkg/logger"
	"github.com/fieldtechhq/fieldserve-backend/pkg/storage"
)

const (
	ticketIDParam   = "ticketID"
	mediaFormField  = "files"
	multipartMemory = 8 << 20
)

var allowedUploadTypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/png":       {},
	"image/gif":       {},
	"video/mp4":       {},
	"video/quicktime": {},
}

// TicketsMine lists the authenticated technician's tickets.
func TicketsMine(svc tickets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		techID, ok := requireTechnician(w, r, logg)
		if !ok {
			return
		}

		list, err := svc.ListMyTickets(r.Context(), techID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// TicketDetail returns one ticket with its work log, media, and signatures.
func TicketDetail(svc tickets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		techID, ok := requireTechnician(w, r, logg)
		if !ok {
			return
		}
		ticketID, err := validators.ParsePathUUID(r, ticketIDParam, "ticket not found")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.GetTicketDetail(r.Context(), ticketID, techID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, detail)
	}
}

// TicketWorkLog records (or replaces) the ticket's work log.
func TicketWorkLog(svc tickets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		techID, ok := requireTechnician(w, r, logg)
		if !ok {
			return
		}
		ticketID, err := validators.ParsePathUUID(r, ticketIDParam, "ticket not found")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body tickets.WorkLogInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.SubmitWorkLog(r.Context(), ticketID, techID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessMessage(w, http.StatusOK, result, "work log saved")
	}
}

// TicketMediaUpload stores multipart files on disk and records them against
// the ticket. Database rows go in all-or-nothing; stored files are removed
// again when the batch fails.
func TicketMediaUpload(svc tickets.Service, store *storage.DiskStore, mediaCfg config.MediaConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		techID, ok := requireTechnician(w, r, logg)
		if !ok {
			return
		}
		ticketID, err := validators.ParsePathUUID(r, ticketIDParam, "ticket not found")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if limit := mediaCfg.MaxRequestBytes(); limit > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
		}
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart request"))
			return
		}
		defer r.MultipartForm.RemoveAll()

		headers := r.MultipartForm.File[mediaFormField]
		if len(headers) == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "no files uploaded"))
			return
		}
		if len(headers) > mediaCfg.MaxUploadFile {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "too many files").
				WithDetails(map[string]any{"max_files": mediaCfg.MaxUploadFile}))
			return
		}

		stored := make([]*storage.StoredFile, 0, len(headers))
		cleanup := func() {
			for _, f := range stored {
				if removeErr := store.Remove(f.FilePath); removeErr != nil && logg != nil {
					logg.Error(r.Context(), "media.cleanup.failed", removeErr)
				}
			}
		}

		inputs := make([]tickets.MediaFileInput, 0, len(headers))
		for _, header := range headers {
			input, file, err := validateUpload(header, mediaCfg)
			if err != nil {
				cleanup()
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			saved, err := store.Save(header.Filename, file)
			file.Close()
			if err != nil {
				cleanup()
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			stored = append(stored, saved)

			input.FileURL = saved.FileURL
			input.FilePath = saved.FilePath
			inputs = append(inputs, input)
		}

		out, err := svc.AttachMedia(r.Context(), ticketID, techID, inputs)
		if err != nil {
			cleanup()
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessMessage(w, http.StatusCreated, out, "media uploaded")
	}
}

// TicketSignature captures a customer signature for one of the two slots.
func TicketSignature(svc tickets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		techID, ok := requireTechnician(w, r, logg)
		if !ok {
			return
		}
		ticketID, err := validators.ParsePathUUID(r, ticketIDParam, "ticket not found")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body tickets.SignatureInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.CaptureSignature(r.Context(), ticketID, techID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessMessage(w, http.StatusOK, result, "signature captured")
	}
}

// TicketStatus overrides the ticket's lifecycle status.
func TicketStatus(svc tickets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		techID, ok := requireTechnician(w, r, logg)
		if !ok {
			return
		}
		ticketID, err := validators.ParsePathUUID(r, ticketIDParam, "ticket not found")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body tickets.StatusInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		change, err := svc.SetStatus(r.Context(), ticketID, techID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessMessage(w, http.StatusOK, change, "status updated")
	}
}

// TicketDelete removes a ticket and everything recorded against it.
func TicketDelete(svc tickets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		techID, ok := requireTechnician(w, r, logg)
		if !ok {
			return
		}
		ticketID, err := validators.ParsePathUUID(r, ticketIDParam, "ticket not found")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteTicket(r.Context(), ticketID, techID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessMessage(w, http.StatusOK, nil, "ticket deleted")
	}
}

func requireTechnician(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (uuid.UUID, bool) {
	techID := middleware.TechnicianIDFromContext(r.Context())
	if techID == uuid.Nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
		return uuid.Nil, false
	}
	return techID, true
}

// validateUpload checks the file against the size cap and content-type
// allow-list. When the client did not send a usable content type the first
// bytes of the file are sniffed instead.
func validateUpload(header *multipart.FileHeader, mediaCfg config.MediaConfig) (tickets.MediaFileInput, multipart.File, error) {
	if header.Size > mediaCfg.MaxUploadBytes() {
		return tickets.MediaFileInput{}, nil, pkgerrors.New(pkgerrors.CodeValidation, "file too large").
			WithDetails(map[string]any{"file": header.Filename, "max_mb": mediaCfg.MaxUploadMB})
	}

	file, err := header.Open()
	if err != nil {
		return tickets.MediaFileInput{}, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "open upload")
	}

	contentType := strings.ToLower(strings.TrimSpace(header.Header.Get("Content-Type")))
	if contentType == "" || contentType == "application/octet-stream" {
		detected, err := mimetype.DetectReader(file)
		if err != nil {
			file.Close()
			return tickets.MediaFileInput{}, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sniff content type")
		}
		contentType = detected.String()
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			file.Close()
			return tickets.MediaFileInput{}, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rewind upload")
		}
	}

	// mimetype may append parameters like "; charset=binary"
	if idx := strings.IndexByte(contentType, ';'); idx >= 0 {
		contentType = strings.TrimSpace(contentType[:idx])
	}

	if _, ok := allowedUploadTypes[contentType]; !ok {
		file.Close()
		return tickets.MediaFileInput{}, nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported file type").
			WithDetails(map[string]any{"file": header.Filename, "content_type": contentType})
	}

	return tickets.MediaFileInput{
		OriginalName: header.Filename,
		ContentType:  contentType,
		Size:         header.Size,
	}, file, nil
}
