// file: internals/helpers/mailer/mailer.go
package mailer

import (
	"net/smtp"
	"strings"
)

// Mailer mengirim satu email batch (BCC) ke semua penerima notifikasi.
// Sengaja berupa interface supaya dispatcher & scheduler bisa dites pakai fake.
type Mailer interface {
	Send(to []string, subject, body string) error
	Configured() bool
}

type SMTPMailer struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

func NewSMTPMailer(host, port, user, pass, from string) *SMTPMailer {
	return &SMTPMailer{Host: host, Port: port, User: user, Pass: pass, From: from}
}

func (m *SMTPMailer) Configured() bool {
	return m != nil && m.Host != ""
}

func (m *SMTPMailer) Send(to []string, subject, body string) error {
	if !m.Configured() || len(to) == 0 {
		return nil
	}

	// Penerima masuk lewat RCPT saja (blind copy) — header To tidak ditulis.
	msg := "From: " + m.From + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" + body

	var auth smtp.Auth
	if m.User != "" {
		auth = smtp.PlainAuth("", m.User, m.Pass, m.Host)
	}
	addr := m.Host + ":" + m.Port
	return smtp.SendMail(addr, auth, m.From, dedup(to), []byte(msg))
}

func dedup(addrs []string) []string {
	seen := make(map[string]struct{}, len(addrs))
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		a = strings.TrimSpace(strings.ToLower(a))
		if a == "" {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}
