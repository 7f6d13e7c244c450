package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"spinstudio/internal/adapters/imagedata"
	"spinstudio/internal/application/studio"
	"spinstudio/internal/domain/chat"
	"spinstudio/internal/domain/navigation"
)

// maxUpload leaves room for a full-size image plus form overhead.
const maxUpload = imagedata.MaxBytes + 1<<20

// Inline upload messages
const (
	MsgImageRequired = "Selecciona una imagen."
	MsgImageTooLarge = "La imagen supera los 5 MB."
	MsgImageInvalid  = "El archivo no es una imagen válida."
)

// readImage encodes the multipart "file" field as a data URL.
// The returned error is a *studio.UserError for anything the rider can fix.
func readImage(w http.ResponseWriter, r *http.Request) (url, fileName string, err error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		return "", "", &studio.UserError{Err: err, Message: MsgImageTooLarge}
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return "", "", &studio.UserError{Err: err, Message: MsgImageRequired}
	}
	defer file.Close()

	url, err = imagedata.Encode(file, header.Header.Get("Content-Type"))
	switch {
	case err == nil:
		return url, header.Filename, nil
	case errors.Is(err, imagedata.ErrTooLarge):
		return "", "", &studio.UserError{Err: err, Message: MsgImageTooLarge}
	case errors.Is(err, imagedata.ErrEmpty):
		return "", "", &studio.UserError{Err: err, Message: MsgImageRequired}
	case errors.Is(err, imagedata.ErrNotImage), errors.Is(err, imagedata.ErrTypeMismatch):
		return "", "", &studio.UserError{Err: err, Message: MsgImageInvalid}
	default:
		return "", "", err
	}
}

// handleAvatarUpload handles POST /api/profile/avatar.
// PRE: multipart form with an image in "file"; profile screen showing
// POST: the current user's avatar is the uploaded image
func (s *server) handleAvatarUpload(w http.ResponseWriter, r *http.Request) {
	app, ok := appFor(w, r)
	if !ok {
		return
	}
	if app.Screen().Name() != navigation.NameProfile {
		s.respondError(w, r, app, studio.ErrWrongScreen)
		return
	}
	url, _, err := readImage(w, r)
	if err != nil {
		s.respondUploadError(w, r, app, err)
		return
	}
	s.dispatch(w, r, app, studio.UpdateProfile{AvatarURL: url})
}

// handleChatAttachment handles POST /api/chat/attachments.
// PRE: multipart form with "file", optional "text" and "type"
// (image or payment-proof); the chat screen or the admin chat section showing
// POST: the message is appended as the rider on the chat screen, as the
// studio on the dashboard
func (s *server) handleChatAttachment(w http.ResponseWriter, r *http.Request) {
	app, ok := appFor(w, r)
	if !ok {
		return
	}
	url, fileName, err := readImage(w, r)
	if err != nil {
		s.respondUploadError(w, r, app, err)
		return
	}

	kind := r.FormValue("type")
	if kind == "" {
		kind = chat.AttachmentImage
	}
	att := &chat.Attachment{Type: kind, URL: url, FileName: fileName}
	text := strings.TrimSpace(r.FormValue("text"))

	var in studio.Intent = studio.SendMessage{Text: text, Attachment: att}
	if app.Screen().Name() == navigation.NameAdminDashboard {
		in = studio.AdminReply{Text: text, Attachment: att}
	}
	log.Debug().Str("studio", app.ID()).Str("type", kind).Int("bytes", len(url)).Msg("chat_attachment_uploaded")
	s.dispatch(w, r, app, in)
}

// respondUploadError reports a rejected file without touching the instance.
func (s *server) respondUploadError(w http.ResponseWriter, r *http.Request, app *studio.App, err error) {
	var ue *studio.UserError
	if errors.As(err, &ue) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: ue.Message})
		return
	}
	s.respondError(w, r, app, err)
}
