package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct{ in, want string }{
		{"9876543210", "919876543210"},
		{"09876543210", "919876543210"},
		{"+91 98765-43210", "919876543210"},
		{"(987) 654.3210", "919876543210"},
		{"919876543210", "919876543210"},
		{"+44 20 7946 0958", "442079460958"},
		{"+1 415 555 010", "1415555010"},
		{"+0 98765 43210", "09876543210"},
		{"not-a-number", "not-a-number"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizePhone(tc.in, ""), "input %q", tc.in)
	}
}

func TestNormalizePhoneCustomCountryCode(t *testing.T) {
	assert.Equal(t, "15551234567", NormalizePhone("5551234567", "1"))
	assert.Equal(t, "15551234567", NormalizePhone("05551234567", "1"))
}

func TestBuildWhatsAppLink(t *testing.T) {
	link := BuildWhatsAppLink("9876543210", "http://127.0.0.1:8000/invoices/TNC-INV-TNC-20260115-0001.pdf",
		WhatsAppOptions{BrandName: "Travel Nest Cabs"})

	require.True(t, strings.HasPrefix(link, "https://wa.me/919876543210?text="), link)
	text := strings.TrimPrefix(link, "https://wa.me/919876543210?text=")
	assert.NotContains(t, text, "+")
	assert.NotContains(t, text, " ")
	assert.Contains(t, text, "%20")
	assert.Contains(t, text, "%0A")
	assert.Contains(t, text, "http%3A%2F%2F127.0.0.1%3A8000%2Finvoices%2FTNC-INV-TNC-20260115-0001.pdf")
}

func TestJoinURL(t *testing.T) {
	assert.Equal(t, "https://x.test/invoices/a.pdf", JoinURL("https://x.test/", "/invoices/a.pdf"))
	assert.Equal(t, "https://x.test/invoices/a.pdf", JoinURL("https://x.test", "invoices/a.pdf"))
}
