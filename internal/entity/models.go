package entity

// Models lists every persisted entity in dependency order for AutoMigrate.
func Models() []any {
	return []any{
		&User{},
		&PointLog{},
		&LeaderboardSnapshot{},
		&ActionType{},
		&UserAction{},
		&Mission{},
		&MissionSubmission{},
		&Prize{},
		&Notification{},
		&EmailLog{},
		&Translation{},
	}
}
