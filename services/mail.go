package services

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"

	"go.uber.org/zap"
)

type MailService struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Enabled  bool
}

func NewMailService() *MailService {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	from := os.Getenv("SMTP_FROM")

	enabled := host != "" && port != "" && user != "" && pass != "" && from != ""
	if !enabled {
		zap.L().Warn("MailService disabled: missing SMTP environment variables")
	}

	return &MailService{
		Host:     host,
		Port:     port,
		Username: user,
		Password: pass,
		From:     from,
		Enabled:  enabled,
	}
}

func (s *MailService) Send(to []string, subject, body string) error {
	if !s.Enabled {
		return nil
	}

	auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
	addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

	mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	msg := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: Service Finder <%s>\r\n"+
		"Subject: %s\r\n"+
		"%s\r\n%s", strings.Join(to, ","), s.From, subject, mime, body))

	if err := smtp.SendMail(addr, auth, s.From, to, msg); err != nil {
		zap.L().Error("failed to send email", zap.Strings("to", to), zap.Error(err))
		return err
	}

	zap.L().Info("email sent", zap.Strings("to", to), zap.String("subject", subject))
	return nil
}

// SendVerificationMail gửi link hoàn tất đăng ký, link hết hạn sau 5 phút.
func (s *MailService) SendVerificationMail(email, token string) error {
	subject := "Xác minh email đăng ký"
	link := fmt.Sprintf("%s/api/user/finalregister/%s/%s", os.Getenv("SERVER_URL"), email, token)
	html := fmt.Sprintf(`Xin vui lòng click vào link dưới đây để hoàn tất đăng ký tài khoản của bạn. Link này sẽ hết hạn sau 5 phút kể từ bây giờ. <a href=%s>Click here</a>`, link)
	return s.Send([]string{email}, subject, html)
}

// SendResetPasswordMail gửi link reset mật khẩu, link hết hạn sau 15 phút.
func (s *MailService) SendResetPasswordMail(email, token string) error {
	subject := "Reset mật khẩu"
	link := fmt.Sprintf("%s/reset-mat-khau/%s", os.Getenv("CLIENT_URI"), token)
	html := fmt.Sprintf(`Xin vui lòng click vào link dưới đây để hoàn tất reset mật khẩu. Link này sẽ hết hạn sau 15 phút kể từ bây giờ. <a href=%s>Click here</a>`, link)
	return s.Send([]string{email}, subject, html)
}
