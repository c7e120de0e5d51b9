// Package logging provides the leveled logger handle used by every licenseforge component.
//
// There is no process-wide logger. Callers build a Fanout, subscribe one or
// more sinks, and pass the Fanout (or any Logger) into the components that
// need it:
//
//	fan := logging.NewFanout()
//	unsubscribe := fan.Subscribe(logging.NewConsoleSink(os.Stderr, verbose))
//	defer unsubscribe()
//	runner := forge.NewRunner(fan)
//
// Five severities are supported, from most to least severe: Error, Warn,
// Log, Info and Debug.
package logging
