package transport

import (
	"fmt"
	"net/mail"
	"strings"
)

// ParseAddressList validates a comma-separated list of addresses and returns
// their bare forms. An empty or whitespace-only list is invalid.
func ParseAddressList(list string) ([]string, error) {
	var out []string
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		addr, err := parseAddress(part)
		if err != nil {
			return nil, err
		}
		out = append(out, addr)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty address list", ErrInvalidAddress)
	}
	return out, nil
}

// parseAddress accepts "user@host" or "Name <user@host>". The host must
// contain a dot, which rejects local-only forms net/mail would accept.
func parseAddress(s string) (string, error) {
	a, err := mail.ParseAddress(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	at := strings.LastIndexByte(a.Address, '@')
	if at <= 0 || at == len(a.Address)-1 {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	host := a.Address[at+1:]
	if !strings.Contains(host, ".") || strings.HasPrefix(host, ".") || strings.HasSuffix(host, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return a.Address, nil
}

// optionalList is ParseAddressList for headers that may be empty.
func optionalList(list string) ([]string, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	return ParseAddressList(list)
}

// envelope is the validated addressing of one message.
type envelope struct {
	from     string // header value as given
	fromAddr string
	to       []string
	cc       []string
	bcc      []string
	replyTo  []string
}

// checkEnvelope validates opts for any transport. An empty From falls back
// to defaultFrom. Recipient errors wrap ErrInvalidAddress; From and Reply-To
// errors also wrap ErrInvalidSender.
func checkEnvelope(opts SendOptions, defaultFrom string) (envelope, error) {
	var (
		env envelope
		err error
	)
	if env.to, err = ParseAddressList(opts.To); err != nil {
		return envelope{}, err
	}
	if env.cc, err = optionalList(opts.Cc); err != nil {
		return envelope{}, fmt.Errorf("cc: %w", err)
	}
	if env.bcc, err = optionalList(opts.Bcc); err != nil {
		return envelope{}, fmt.Errorf("bcc: %w", err)
	}

	env.from = strings.TrimSpace(opts.From)
	if env.from == "" {
		env.from = strings.TrimSpace(defaultFrom)
	}
	if env.fromAddr, err = parseAddress(env.from); err != nil {
		return envelope{}, fmt.Errorf("%w: from: %w", ErrInvalidSender, err)
	}
	if env.replyTo, err = optionalList(opts.ReplyTo); err != nil {
		return envelope{}, fmt.Errorf("%w: reply-to: %w", ErrInvalidSender, err)
	}
	return env, nil
}

func domainOf(addr string) string {
	if i := strings.LastIndexByte(addr, '@'); i >= 0 {
		return addr[i+1:]
	}
	return "localhost"
}
