package apiclient

import (
	"net/http"

	"golang.org/x/oauth2"
)

// authTransport attaches the bearer token and tenant header read from the
// session at send time.
type authTransport struct {
	base    http.RoundTripper
	session Session
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())

	if token := t.session.Token(); token != "" {
		(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
	}
	if companyID := t.session.CompanyPublicID(); companyID != "" {
		req.Header.Set(HeaderCompanyID, companyID)
	}

	return t.base.RoundTrip(req)
}
