package types

type ExtractResponse struct {
	Text        string `json:"text"`
	Source      string `json:"source"`
	Filename    string `json:"filename,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type StatusResponse struct {
	Status                 string   `json:"status"`
	Policy                 string   `json:"policy"`
	GoogleVisionConfigured bool     `json:"google_vision_configured"`
	AllowedOrigins         []string `json:"allowed_origins"`
}
