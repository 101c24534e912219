package common

// SessionCookieName is the cookie that carries the signed session token
// between the browser (or CLI client) and the server.
const SessionCookieName = "token"

// RequestIDHeaderName is echoed back on every HTTP response.
const RequestIDHeaderName = "X-Request-Id"
