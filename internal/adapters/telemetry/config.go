package telemetry

// Config holds OTLP metric exporter settings.
type Config struct {
	Endpoint string
	Enabled  bool
	Insecure bool
}
