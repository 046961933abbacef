package metrics

// Attribute keys shared by the OpenTelemetry instruments.
const (
	AttrProvider = "provider"
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
)
