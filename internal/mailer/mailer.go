package mailer

import "gopkg.in/gomail.v2"

// メール送信の窓口。best-effortで、失敗しても呼び出し元は落とさない。
type Mailer interface {
	Send(to string, subject string, body string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// DI
func NewSMTPMailer(host string, port int, username string, password string, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) Send(to string, subject string, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	return m.dialer.DialAndSend(msg)
}
