package dashboard

// Prompter is how the controller talks to whoever pulled the trigger.
// Alert shows a message; Confirm asks a yes/no question before a
// destructive call.
type Prompter interface {
	Alert(msg string)
	Confirm(msg string) bool
}

// RecordingPrompter collects alerts and answers every confirmation with
// Confirmed. Questions asked are kept so a front end can render them.
type RecordingPrompter struct {
	Confirmed bool
	Alerts    []string
	Asked     []string
}

func (p *RecordingPrompter) Alert(msg string) {
	p.Alerts = append(p.Alerts, msg)
}

func (p *RecordingPrompter) Confirm(msg string) bool {
	p.Asked = append(p.Asked, msg)
	return p.Confirmed
}

// PendingConfirmation returns the question that was declined, if any.
func (p *RecordingPrompter) PendingConfirmation() string {
	if p.Confirmed || len(p.Asked) == 0 {
		return ""
	}
	return p.Asked[0]
}
