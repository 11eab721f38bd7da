// Package telemetry carries per-tick records from the tick loop to an
// outside sink without ever letting the sink slow the loop down.
//
// The tick loop publishes into a bounded ChannelPublisher; a separate
// goroutine drains it with Forward. When the sink falls behind, records are
// dropped at the publisher rather than delaying the next tick.
package telemetry
