package templates

import (
	"strings"
	"time"

	"github.com/oksasatya/fashion-storefront/config"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithLines(lines []OrderLine) Option { return func(d *EmailData) { d.Lines = lines } }

func WithTotal(total string) Option {
	return func(d *EmailData) {
		if s := strings.TrimSpace(total); s != "" {
			d.Total = s
		}
	}
}

// NewBaseEmailData fills the common fields from config, then applies opts.
func NewBaseEmailData(cfg *config.Config, typ string, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: email,
		Type:           typ,
	}
	if cfg != nil {
		d.CompanyName = cfg.CompanyName
		d.CompanyAddress = cfg.CompanyAddress
		d.AppName = cfg.AppName
		d.LogoURL = cfg.LogoURL
		d.SupportURL = cfg.SupportURL
		d.StoreURL = cfg.StoreURL
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewOrderConfirmationData(cfg *config.Config, name, email string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(cfg, OrderConfirmation, name, email, opts...))
}

func NewWelcomeData(cfg *config.Config, name, email string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(cfg, Welcome, name, email, opts...))
}
