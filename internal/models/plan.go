package models

// Plan is one tier of the public pricing catalog. The catalog is static and
// never touches storage.
type Plan struct {
	Name      string   `json:"name"`
	Price     int      `json:"price"`
	Period    string   `json:"period"`
	Features  []string `json:"features"`
	CTA       string   `json:"cta"`
	Highlight bool     `json:"highlight"`
}
