package main

import (
	"kinoschurke/cmd/kinoschurke/commands"
	"kinoschurke/lib/serviceutil"
	"kinoschurke/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()

	tele, err := telemetry.SetupFromEnv(ctx, "kinoschurke")
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	defer tele.Shutdown(ctx)
	telemetry.InstrumentPerfStats(ctx)

	commands.ExecuteContext(ctx)
}
