package mail

type NewLeadEmailData struct {
	Name     string
	Email    string
	Phone    string
	Funnel   string
	Source   string
	AdminURL string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
}
