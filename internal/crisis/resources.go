package crisis

// Helpline is one crisis-support contact.
type Helpline struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Description  string `json:"description"`
	Availability string `json:"availability"`
}

// Result is attached to replies that follow a flagged message. IsEmergency is
// always true; an unflagged reply carries no Result at all.
type Result struct {
	IsEmergency bool       `json:"isEmergency"`
	Resources   []Helpline `json:"resources"`
	Message     string     `json:"message"`
}

// Advisory is shown with every crisis result.
const Advisory = "🚨 I'm concerned about you. Please reach out to one of these helplines or talk to someone you trust - a family member, friend, teacher, or counselor. You're not alone, and your life matters. 💙"

var helplines = [...]Helpline{
	{
		Name:         "Vandrevala Foundation",
		Phone:        "+91-9999-666-555",
		Description:  "24/7 Free Crisis Helpline",
		Availability: "24/7",
	},
	{
		Name:         "AASRA",
		Phone:        "+91-22-2754-6669",
		Description:  "Suicide Prevention Helpline",
		Availability: "24/7",
	},
	{
		Name:         "Sneha India",
		Phone:        "+91-44-2464-0050",
		Description:  "Emotional Support Helpline",
		Availability: "24/7",
	},
	{
		Name:         "iCall",
		Phone:        "+91-9152-987-821",
		Description:  "Psychosocial Helpline",
		Availability: "Mon-Sat 8AM-10PM",
	},
}

// Helplines returns the helpline list in display order.
func Helplines() []Helpline {
	out := make([]Helpline, len(helplines))
	copy(out, helplines[:])
	return out
}

// PrimaryHelpline is the contact quoted when nothing else can be shown.
func PrimaryHelpline() Helpline {
	return helplines[0]
}

// Resources returns a fresh crisis payload. Callers may hold and share the
// returned value; it is never mutated after construction.
func Resources() *Result {
	return &Result{
		IsEmergency: true,
		Resources:   Helplines(),
		Message:     Advisory,
	}
}
