package session

import "net/url"

// ticketParam is the query parameter carrying a ticket code on a
// shareable invite address.
const ticketParam = "ticket"

// CodeFromAddress extracts the ticket code parameter from an address.
// A malformed address yields no candidate rather than an error; the
// resolver falls back to the persisted slot.
func CodeFromAddress(address string) (string, bool) {
	if address == "" {
		return "", false
	}
	parsed, err := url.Parse(address)
	if err != nil {
		return "", false
	}
	code := parsed.Query().Get(ticketParam)
	return code, code != ""
}

// StripTicketCode removes the ticket parameter from an address, leaving
// every other component intact. The result replaces the visible address
// without navigation.
func StripTicketCode(address string) string {
	parsed, err := url.Parse(address)
	if err != nil {
		return address
	}
	query := parsed.Query()
	query.Del(ticketParam)
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// InviteAddress embeds a ticket code into the base address as the
// shareable invite link.
func InviteAddress(base, code string) string {
	parsed, err := url.Parse(base)
	if err != nil {
		return base + "?" + ticketParam + "=" + url.QueryEscape(code)
	}
	query := parsed.Query()
	query.Set(ticketParam, code)
	parsed.RawQuery = query.Encode()
	return parsed.String()
}
