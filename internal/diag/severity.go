package diag

// Severity orders diagnostics: info < warning < error.
type Severity uint8

const (
	SevInfo    Severity = iota // splits and skipped declarations, shown with -v
	SevWarning                 // output changed in a way worth a look
	SevError                   // the file was left untouched
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// AtLeast reports whether s is min or more severe.
func (s Severity) AtLeast(min Severity) bool {
	return s >= min
}
