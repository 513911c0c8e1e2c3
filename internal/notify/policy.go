package notify

import (
	"fmt"
	"strings"
)

// SenderPolicy picks the From address for an (event type, account class)
// pair. Every pair yields the same answer kind: an address, or "" on a policy
// with neither domain nor default sender, which leaves From to the transport.
type SenderPolicy struct {
	domain        string
	defaultSender string
	overrides     map[string]string
}

// NewSenderPolicy builds the policy. Override keys are "EVENT/CLASS",
// "EVENT/*" or "*/CLASS", matched in that order before the built-in table.
func NewSenderPolicy(domain, defaultSender string, overrides map[string]string) *SenderPolicy {
	domain = strings.TrimPrefix(strings.TrimSpace(domain), "@")
	defaultSender = strings.TrimSpace(defaultSender)
	if defaultSender == "" && domain != "" {
		defaultSender = "info@" + domain
	}
	norm := make(map[string]string, len(overrides))
	for k, v := range overrides {
		norm[strings.ToUpper(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	return &SenderPolicy{domain: domain, defaultSender: defaultSender, overrides: norm}
}

func (p *SenderPolicy) Sender(et EventType, ac AccountClass) string {
	for _, k := range []string{
		fmt.Sprintf("%s/%s", et, ac),
		fmt.Sprintf("%s/*", et),
		fmt.Sprintf("*/%s", ac),
	} {
		if v, ok := p.overrides[k]; ok && v != "" {
			return v
		}
	}
	if local := builtinSender(et, ac); local != "" && p.domain != "" {
		return local + "@" + p.domain
	}
	return p.defaultSender
}

// builtinSender returns the mailbox local part for a pair, or "" for the
// default sender.
func builtinSender(et EventType, ac AccountClass) string {
	switch et {
	case OrderConfirmation, OrderStatusUpdate:
		if ac == RegisteredBusiness {
			return "b2b"
		}
		return "order"
	case AffiliateWelcome, AffiliateApplicationReceived, AffiliateApplicationAdmin:
		return "affiliate"
	case LoginCredentials, PasswordReset, EmailVerification, AccountActivated:
		return "info"
	}
	return ""
}
