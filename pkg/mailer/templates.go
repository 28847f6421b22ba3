package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

const welcomeHTML = `<html><body style="font-family:sans-serif">
<h2>Welcome to {{.AppName}}, {{.Name}}!</h2>
<p>Your account is ready. Start exploring photos and saving them into your
own collections.</p>
<p style="color:#888;font-size:12px">You received this email because an
account was registered with this address.</p>
</body></html>`

var welcomeTpl = template.Must(template.New("welcome").Parse(welcomeHTML))

// Render renders a named template and returns subject, text, and html
// bodies. Unknown template names are an error so bad jobs dead-letter
// instead of sending empty mail.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	switch name {
	case "welcome":
		var buf bytes.Buffer
		if err := welcomeTpl.Execute(&buf, data); err != nil {
			return "", "", "", err
		}
		appName, _ := data["AppName"].(string)
		if appName == "" {
			appName = "Pixelcove"
		}
		subject = "Welcome to " + appName
		text = fmt.Sprintf("Welcome to %s! Your account is ready.", appName)
		return subject, text, buf.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
}
