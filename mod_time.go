package gekko

import (
	"time"
)

type Time struct {
	Time time.Time
	Dt   time.Duration

	statsStart  time.Time
	statsFrames int
	// FPS is refreshed once per second.
	FPS float64
}

type TimeModule struct{}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	now := time.Now()
	cmd.AddResources(&Time{
		Time:       now,
		statsStart: now,
	})
	app.UseSystem(
		System(timeSystem).
			InStage(Prelude),
	)
}

func timeSystem(timeResource *Time, log Logger) {
	now := time.Now()

	timeResource.Dt = now.Sub(timeResource.Time)
	timeResource.Time = now

	timeResource.statsFrames++
	if elapsed := now.Sub(timeResource.statsStart); elapsed >= time.Second {
		timeResource.FPS = float64(timeResource.statsFrames) / elapsed.Seconds()
		timeResource.statsFrames = 0
		timeResource.statsStart = now
		log.Debugf("%.1f fps", timeResource.FPS)
	}
}
