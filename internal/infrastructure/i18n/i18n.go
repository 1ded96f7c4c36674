// Package i18n translates user-facing action names. The catalog is built once
// at start-up; the request language travels in the context.
package i18n

import (
	"context"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The English text doubles as the key.
const (
	MsgPurchaseOrder        = "Purchase Order"
	MsgPurchaseOrderLines   = "Purchase Order Lines"
	MsgPurchaseInvoiceLines = "Purchase Invoice Lines"
	MsgSalesOrders          = "Sales Orders"
	MsgVendorBills          = "Bills"
	MsgCustomerInvoices     = "Invoices"
)

var zhHans = map[string]string{
	MsgPurchaseOrder:        "采购订单",
	MsgPurchaseOrderLines:   "采购订单行",
	MsgPurchaseInvoiceLines: "采购账单行",
	MsgSalesOrders:          "销售订单",
	MsgVendorBills:          "供应商账单",
	MsgCustomerInvoices:     "客户发票",
}

// Supported lists the catalog languages; the first is the fallback.
var Supported = []language.Tag{language.English, language.SimplifiedChinese}

type ctxKey struct{}

// Translator resolves message keys for a language.
type Translator struct {
	catalog  catalog.Catalog
	matcher  language.Matcher
	fallback language.Tag
}

// NewTranslator builds the catalog. defaultLang is used when a request names
// no supported language.
func NewTranslator(defaultLang string) (*Translator, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key := range zhHans {
		if err := b.SetString(language.English, key, key); err != nil {
			return nil, err
		}
		if err := b.SetString(language.SimplifiedChinese, key, zhHans[key]); err != nil {
			return nil, err
		}
	}

	fallback := language.English
	if defaultLang != "" {
		tag, err := language.Parse(defaultLang)
		if err != nil {
			return nil, err
		}
		fallback = tag
	}

	t := &Translator{catalog: b, fallback: fallback}
	// The matcher prefers the configured default when Accept-Language is absent.
	t.matcher = language.NewMatcher(orderedSupported(fallback))
	return t, nil
}

func orderedSupported(first language.Tag) []language.Tag {
	out := []language.Tag{first}
	for _, tag := range Supported {
		if tag != first {
			out = append(out, tag)
		}
	}
	return out
}

// Match negotiates an Accept-Language header value.
func (t *Translator) Match(acceptLanguage string) language.Tag {
	if acceptLanguage == "" {
		return t.fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return t.fallback
	}
	tag, _, _ := t.matcher.Match(tags...)
	base, _ := tag.Base()
	for _, s := range Supported {
		if sb, _ := s.Base(); sb == base {
			return s
		}
	}
	return t.fallback
}

// Translate returns key rendered in the context language.
func (t *Translator) Translate(ctx context.Context, key string) string {
	tag := FromContext(ctx)
	if tag == language.Und {
		tag = t.fallback
	}
	return message.NewPrinter(tag, message.Catalog(t.catalog)).Sprintf(key)
}

// WithLanguage stores the negotiated language in ctx.
func WithLanguage(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, ctxKey{}, tag)
}

// FromContext returns the context language, or language.Und.
func FromContext(ctx context.Context) language.Tag {
	if tag, ok := ctx.Value(ctxKey{}).(language.Tag); ok {
		return tag
	}
	return language.Und
}
