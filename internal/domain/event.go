package domain

const (
	EventNameSessionEnded       = "session.ended"
	EventNameLeaderboardUpdated = "leaderboard.updated"
)

type EventSessionEnded struct {
	Scoreboard Scoreboard
}

func (EventSessionEnded) Name() string { return EventNameSessionEnded }

type EventLeaderboardUpdated struct {
	Scoreboard Scoreboard
}

func (EventLeaderboardUpdated) Name() string { return EventNameLeaderboardUpdated }
