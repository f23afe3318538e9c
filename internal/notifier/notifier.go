package notifier

// Severity classifies a notification for rendering
type Severity string

const (
	SeverityInfo        Severity = "info"
	SeveritySuccess     Severity = "success"
	SeverityWarning     Severity = "warning"
	SeverityCelebration Severity = "celebration"
)

// Notification is the engine's user-facing side channel. Expected business
// outcomes (limit hits, level-ups, perfect days) surface here instead of as
// errors.
type Notification struct {
	Severity Severity
	Message  string
	XPGained int
}

// Sink receives notifications emitted by the engine
type Sink interface {
	Send(n Notification)
}

// Discard is a Sink that drops everything
type Discard struct{}

func (Discard) Send(Notification) {}

// Recorder captures notifications in order, primarily for tests
type Recorder struct {
	Sent []Notification
}

func (r *Recorder) Send(n Notification) {
	r.Sent = append(r.Sent, n)
}

// Has reports whether any captured notification has the given severity
func (r *Recorder) Has(sev Severity) bool {
	for _, n := range r.Sent {
		if n.Severity == sev {
			return true
		}
	}
	return false
}

// Multi fans a notification out to several sinks
type Multi []Sink

func (m Multi) Send(n Notification) {
	for _, s := range m {
		s.Send(n)
	}
}
