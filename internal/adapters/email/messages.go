package email

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"net/url"
	"strings"
	texttemplate "text/template"
)

// Subjects
const (
	SubjectPasswordReset = "Recupera tu contraseña"
)

// TagCategory labels messages for provider-side filtering.
const TagCategory = "category"

var resetHTML = htmltemplate.Must(htmltemplate.New("reset").Parse(
	`<p>Recibimos una solicitud para restablecer tu contraseña.</p>` +
		`<p><a href="{{.Link}}">Restablecer contraseña</a></p>` +
		`<p>Si no fuiste tú, puedes ignorar este correo.</p>`))

var resetText = texttemplate.Must(texttemplate.New("reset").Parse(
	"Recibimos una solicitud para restablecer tu contraseña.\n\n" +
		"Restablecer contraseña: {{.Link}}\n\n" +
		"Si no fuiste tú, puedes ignorar este correo.\n"))

// PasswordReset builds the reset-link message for to.
// PRE: resetURL is an absolute URL
// POST: the link carries the address as the "email" query parameter
func PasswordReset(to, from, resetURL string) (SendRequest, error) {
	sep := "?"
	if strings.Contains(resetURL, "?") {
		sep = "&"
	}
	data := struct{ Link string }{Link: resetURL + sep + "email=" + url.QueryEscape(to)}

	var h, t bytes.Buffer
	if err := resetHTML.Execute(&h, data); err != nil {
		return SendRequest{}, fmt.Errorf("render reset html: %w", err)
	}
	if err := resetText.Execute(&t, data); err != nil {
		return SendRequest{}, fmt.Errorf("render reset text: %w", err)
	}
	return SendRequest{
		To:      []string{to},
		From:    from,
		Subject: SubjectPasswordReset,
		HTML:    h.String(),
		Text:    t.String(),
		Tags:    map[string]string{TagCategory: "password_reset"},
	}, nil
}
