// Package app is the composition root for thumbview.
//
// Run loads configuration and preferences, points the process logger at the
// log file, opens the SQLite attachment database and then wires three
// long-lived pieces together:
//
//   - a poller that reads every message and its attachments into a
//     state.Store, backing off exponentially (capped at 30s) while the
//     database keeps failing
//   - Transfers, which services download and remove taps from the UI
//   - the Bubble Tea UI, which blocks until the user quits or ctx is done
//
// When metrics_addr is configured, Run also serves the image loader's
// Prometheus metrics on /metrics until ctx is done.
//
// Configuration and database errors are fatal and returned from Run. Poll
// and transfer failures are logged and retried on the next tick; transfer
// failures are also recorded on the attachment as TransferFailed.
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//	if err := app.Run(ctx, app.Options{}); err != nil {
//		log.Fatal(err)
//	}
package app
