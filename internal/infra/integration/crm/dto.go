package crm

type inboundLead struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Source   string `json:"source"`
	Campaign string `json:"campaign,omitempty"`
	LeadID   string `json:"external_id,omitempty"`
}

type inboundLeadResponse struct {
	ID string `json:"id"`
}
