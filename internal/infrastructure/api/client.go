package api

import (
	"github.com/rs/zerolog"

	"github.com/parkwise/parking-client/internal/core/ports"
)

// Client is the typed surface over the Dispatcher. It implements the AuthAPI,
// BookingAPI, ProfileAPI, ExportAPI, AdminAPI, and PublicAPI ports.
type Client struct {
	d     *Dispatcher
	creds ports.CredentialStore
	log   zerolog.Logger
}

func NewClient(d *Dispatcher, creds ports.CredentialStore, log zerolog.Logger) *Client {
	return &Client{d: d, creds: creds, log: log}
}

var (
	_ ports.AuthAPI    = (*Client)(nil)
	_ ports.BookingAPI = (*Client)(nil)
	_ ports.ProfileAPI = (*Client)(nil)
	_ ports.ExportAPI  = (*Client)(nil)
	_ ports.AdminAPI   = (*Client)(nil)
	_ ports.PublicAPI  = (*Client)(nil)
)
