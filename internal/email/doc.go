// Package email builds the delivery transport from configuration.
//
// The transport itself lives in email/transport; this package decides
// between SMTP and the in-memory recorder (dry-run) and decrypts the SMTP
// password when it is stored sealed.
package email
