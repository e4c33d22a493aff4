package common

// AccessTokenHeaderName is the HTTP header that carries the access token on
// requests to protected endpoints. The raw token value is sent without a
// scheme prefix.
const AccessTokenHeaderName = "Authorization"
