package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmpl "html/template"
	"io"
	"reflect"
	"strings"
	"sync"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// Template names. Each has <name>.subject.tmpl, <name>.text.tmpl and
// <name>.html.tmpl in FS.
const (
	OrderConfirmation = "order_confirmation"
	Welcome           = "welcome"
)

// EmailData is the payload shared by every template. Jobs carry it as a map
// (see ToMap) so the worker does not depend on this struct's version.
type EmailData struct {
	Name           string `json:"Name"`
	Email          string `json:"Email"`
	RecipientEmail string `json:"RecipientEmail"`
	Type           string `json:"Type"`

	CompanyName    string `json:"CompanyName"`
	CompanyAddress string `json:"CompanyAddress"`
	AppName        string `json:"AppName"`

	LogoURL    string `json:"LogoURL"`
	SupportURL string `json:"SupportURL"`
	StoreURL   string `json:"StoreURL"`

	Lines []OrderLine `json:"Lines"`
	Total string      `json:"Total"`

	Time   string    `json:"Time"`
	TimeAt time.Time `json:"TimeAt"`
}

// OrderLine is one purchased product as shown in an email.
type OrderLine struct {
	ProductID int    `json:"ProductID"`
	Name      string `json:"Name"`
	Quantity  int    `json:"Quantity"`
	Subtotal  string `json:"Subtotal"`
}

func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// defaultFn backs {{ .Value | default "Fallback" }}; blank strings and zero
// values take the fallback.
func defaultFn(fallback any, value any) any {
	if s, ok := value.(string); ok {
		if strings.TrimSpace(s) == "" {
			return fallback
		}
		return s
	}
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || rv.IsZero() {
		return fallback
	}
	return value
}

var funcs = map[string]any{
	"now":     func() time.Time { return time.Now().UTC() },
	"upper":   strings.ToUpper,
	"default": defaultFn,
}

// set is one template name parsed for all three parts.
type set struct {
	subject *texttpl.Template
	text    *texttpl.Template
	html    *htmpl.Template
}

var (
	mu     sync.Mutex
	parsed = map[string]*set{}
)

func lookup(name string) (*set, error) {
	mu.Lock()
	defer mu.Unlock()
	if s, ok := parsed[name]; ok {
		return s, nil
	}

	s := &set{}
	var err error
	if s.subject, err = texttpl.New(name+".subject.tmpl").Funcs(funcs).ParseFS(FS, name+".subject.tmpl"); err != nil {
		return nil, fmt.Errorf("parse %s subject: %w", name, err)
	}
	if s.text, err = texttpl.New(name+".text.tmpl").Funcs(funcs).ParseFS(FS, name+".text.tmpl"); err != nil {
		return nil, fmt.Errorf("parse %s text: %w", name, err)
	}
	if s.html, err = htmpl.New(name+".html.tmpl").Funcs(funcs).ParseFS(FS, name+".html.tmpl"); err != nil {
		return nil, fmt.Errorf("parse %s html: %w", name, err)
	}
	parsed[name] = s
	return s, nil
}

type executor interface {
	Execute(w io.Writer, data any) error
}

func execute(t executor, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Render produces the subject (trimmed), plain text and HTML bodies for name.
func Render(name string, data any) (subject, text, html string, err error) {
	s, err := lookup(name)
	if err != nil {
		return "", "", "", err
	}
	if subject, err = execute(s.subject, data); err != nil {
		return "", "", "", fmt.Errorf("render %s subject: %w", name, err)
	}
	if text, err = execute(s.text, data); err != nil {
		return "", "", "", fmt.Errorf("render %s text: %w", name, err)
	}
	if html, err = execute(s.html, data); err != nil {
		return "", "", "", fmt.Errorf("render %s html: %w", name, err)
	}
	return strings.TrimSpace(subject), text, html, nil
}
