package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmpl "html/template"
	"reflect"
	"strings"
	"sync"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// EmailData defines standard fields for email templates.
type EmailData struct {
	Name           string `json:"Name"`
	Email          string `json:"Email"`
	RecipientEmail string `json:"RecipientEmail"`
	Type           string `json:"Type"`

	// Club info
	ClubName    string `json:"ClubName"`
	AppName     string `json:"AppName"`
	HomepageURL string `json:"HomepageURL"`

	ExpiresAt     time.Time `json:"ExpiresAt"`
	ExpiresAtText string    `json:"ExpiresAtText"`
	IP            string    `json:"IP"`
	Location      string    `json:"Location"`
	Code          string    `json:"Code"`

	// Library
	BookTitle  string `json:"BookTitle"`
	BookAuthor string `json:"BookAuthor"`
	ExpireDate string `json:"ExpireDate"`
}

// ToMap converts EmailData to the map carried by EmailJob.Data.
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

const (
	EmailAuth       = "email_auth"
	OverdueReminder = "overdue_reminder"
)

// required lists the data keys each template cannot render without.
var required = map[string][]string{
	EmailAuth:       {"Code"},
	OverdueReminder: {"BookTitle", "ExpireDate"},
}

// Known reports whether templates exist for name.
func Known(name string) bool {
	_, ok := required[name]
	return ok
}

type compiled struct {
	subject *texttpl.Template
	text    *texttpl.Template
	html    *htmpl.Template
}

var (
	loadOnce sync.Once
	loaded   map[string]compiled
	loadErr  error
)

func load() (map[string]compiled, error) {
	loadOnce.Do(func() {
		loaded = make(map[string]compiled, len(required))
		for name := range required {
			var c compiled
			if c.subject, loadErr = parseText(name + ".subject.tmpl"); loadErr != nil {
				return
			}
			if c.text, loadErr = parseText(name + ".text.tmpl"); loadErr != nil {
				return
			}
			file := name + ".html.tmpl"
			if c.html, loadErr = htmpl.New(file).Funcs(htmpl.FuncMap(baseFuncs())).ParseFS(FS, file); loadErr != nil {
				loadErr = fmt.Errorf("parse html %q: %w", file, loadErr)
				return
			}
			loaded[name] = c
		}
	})
	return loaded, loadErr
}

func parseText(file string) (*texttpl.Template, error) {
	t, err := texttpl.New(file).Funcs(texttpl.FuncMap(baseFuncs())).ParseFS(FS, file)
	if err != nil {
		return nil, fmt.Errorf("parse text %q: %w", file, err)
	}
	return t, nil
}

// Render produces subject, text and html bodies for a known template.
// Data missing a required key is rejected before rendering.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	if !Known(name) {
		return "", "", "", fmt.Errorf("unknown template %q", name)
	}
	for _, key := range required[name] {
		if v, ok := data[key]; !ok || strings.TrimSpace(fmt.Sprint(v)) == "" {
			return "", "", "", fmt.Errorf("template %q: missing %s", name, key)
		}
	}
	set, err := load()
	if err != nil {
		return "", "", "", err
	}
	c := set[name]

	var buf bytes.Buffer
	if err := c.subject.Execute(&buf, data); err != nil {
		return "", "", "", fmt.Errorf("exec subject %q: %w", name, err)
	}
	subject = strings.TrimSpace(buf.String())

	buf.Reset()
	if err := c.text.Execute(&buf, data); err != nil {
		return "", "", "", fmt.Errorf("exec text %q: %w", name, err)
	}
	text = buf.String()

	buf.Reset()
	if err := c.html.Execute(&buf, data); err != nil {
		return "", "", "", fmt.Errorf("exec html %q: %w", name, err)
	}
	return subject, text, buf.String(), nil
}

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}
func defaultFn(fallback any, value any) any {
	if value == nil {
		return fallback
	}
	if s, ok := value.(string); ok {
		if strings.TrimSpace(s) == "" {
			return fallback
		}
		return s
	}
	if reflect.ValueOf(value).IsZero() {
		return fallback
	}
	return value
}

func baseFuncs() map[string]any {
	return map[string]any{
		"now":     func() time.Time { return time.Now().UTC() },
		"upper":   strings.ToUpper,
		"default": defaultFn,
	}
}
