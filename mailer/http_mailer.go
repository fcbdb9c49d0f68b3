package mailer

import (
	"context"
	"fmt"
	"net/http"

	"dealtown/api"
)

type emailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

type emailResponse struct {
	ID string `json:"id"`
}

// HTTPMailer sends through a REST email provider exposing POST /emails with
// bearer auth (Resend and compatible APIs).
type HTTPMailer struct {
	client *api.HTTPClient
	apiKey string
	from   string
}

func NewHTTPMailer(client *api.HTTPClient, apiKey, from string) *HTTPMailer {
	return &HTTPMailer{client: client, apiKey: apiKey, from: from}
}

func (m *HTTPMailer) Send(ctx context.Context, msg Message) error {
	headers := map[string]string{"Authorization": "Bearer " + m.apiKey}
	req := emailRequest{From: m.from, To: []string{msg.To}, Subject: msg.Subject, Text: msg.Body}

	var resp emailResponse
	if err := m.client.Request(ctx, http.MethodPost, "/emails", headers, req, &resp); err != nil {
		return fmt.Errorf("email provider send to %s: %w", msg.To, err)
	}
	return nil
}
