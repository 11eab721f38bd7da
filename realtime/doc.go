// Package realtime runs a compiled block diagram tick by tick.
//
// A Runtime calls App.Step once per tick on the calling goroutine, in one of
// two modes:
//   - Realtime: ticks are paced to the wall clock at Config.Frequency. The
//     pacer sleeps through most of each period and busy-waits the last
//     Config.BusyWaitMargin to absorb OS wake-up latency. Application time
//     is wall-clock time since the run started.
//   - Simulation: no waiting at all. Application time advances by exactly
//     one period per tick, so runs are reproducible regardless of host load.
//
// A tick whose work exceeds the period is counted as an overrun; the next
// tick starts immediately and the lost time is not caught up.
//
// # Example Usage
//
//	cfg, err := realtime.LoadConfig("run.yaml")
//	if err != nil {
//		return err
//	}
//	rt, err := realtime.NewRuntime(cfg, realtime.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	return rt.Run(ctx, app)
//
// Cancelling ctx ends the run between two ticks, never inside one.
package realtime
