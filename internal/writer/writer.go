// Package writer provides byte sinks for files memlens generates, such as
// saved settings.
package writer

// Sink receives a complete document in one call.
type Sink interface {
	Write(doc []byte) error
}
