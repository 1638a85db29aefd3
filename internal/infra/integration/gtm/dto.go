package gtm

type collectEvent struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params,omitempty"`
}

type collectRequest struct {
	ClientID string         `json:"client_id"`
	Events   []collectEvent `json:"events"`
}
