package httptransport

// LoginRequest carries the opaque access key; it acts as both username and
// password, so it never appears in logs or error payloads.
type LoginRequest struct {
	AccessKey string `json:"access_key"`
}

type AccountResponse struct {
	ID        int64  `json:"id"`
	AccessKey string `json:"access_key"`
	Credits   int64  `json:"credits"`
	ProxyHost string `json:"proxy_host,omitempty"`
	ProxyPort string `json:"proxy_port,omitempty"`
	ProxyUser string `json:"proxy_user,omitempty"`
	ProxyPass string `json:"proxy_pass,omitempty"`
	Language  string `json:"language"`
}

// UpdatePreferencesRequest is a partial update; absent fields keep their
// prior values.
type UpdatePreferencesRequest struct {
	ProxyHost *string `json:"proxy_host,omitempty"`
	ProxyPort *string `json:"proxy_port,omitempty"`
	ProxyUser *string `json:"proxy_user,omitempty"`
	ProxyPass *string `json:"proxy_pass,omitempty"`
	Language  *string `json:"language,omitempty"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
