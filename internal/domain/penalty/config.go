package penalty

// Allowed range for the weekly absence threshold.
const (
	MinAbsentThreshold = 2
	MaxAbsentThreshold = 7
)

// ReasonPenaltyDay is the auto-mark reason recorded on a penalty day.
const ReasonPenaltyDay = "Penalty day - Absent more than threshold"

// Config is the process-wide weekly penalty rule, loaded once per session
// from the configuration collaborator and immutable afterwards.
type Config struct {
	AbsentThreshold int
}

// Enabled reports whether the penalty rule is active. An out-of-range
// threshold means the rule is disabled, not an error.
func (c Config) Enabled() bool {
	return c.AbsentThreshold >= MinAbsentThreshold && c.AbsentThreshold <= MaxAbsentThreshold
}

// Sanitize clamps an untrusted threshold into a Config: anything outside the
// allowed range disables the rule.
func Sanitize(threshold int) Config {
	cfg := Config{AbsentThreshold: threshold}
	if !cfg.Enabled() {
		return Config{}
	}
	return cfg
}
