package core

// AuthContext carries the caller's identity for one request. It is derived
// once from the inbound Authorization header and owned exclusively by that
// request; it must never be cached or shared across requests.
type AuthContext struct {
	UserID      string
	TenantID    string
	BearerToken string
}
