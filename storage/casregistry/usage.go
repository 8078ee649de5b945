package casregistry

// Usage restricts which programs accept a backend.
type Usage uint8

const (
	// UsageCLI marks backends available to the cdx command.
	UsageCLI Usage = 1 << iota
	// UsageDaemon marks backends available to long-running daemons.
	UsageDaemon
)

func (u Usage) allows(want Usage) bool { return u&want != 0 }
