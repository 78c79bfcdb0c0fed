package model

// SchoolOverview is the school-wide engagement summary served to
// managers and admins.
type SchoolOverview struct {
	TotalStudents     int          `json:"total_students"`
	TotalMissions     int          `json:"total_missions"`
	MissionsThisMonth int          `json:"missions_this_month"`
	AvgXP             float64      `json:"avg_xp"`
	TopStudents       []TopStudent `json:"top_students"`
}

// TopStudent is one leaderboard row inside the school overview.
type TopStudent struct {
	Name  string `json:"nome"`
	XP    int    `json:"xp"`
	Level int    `json:"nivel"`
}

// ActivityPoint is one day of validated mission activity.
type ActivityPoint struct {
	Date     string `json:"date"`
	Missions int    `json:"missions"`
}

// CategoryCount is the number of missions created in one category.
type CategoryCount struct {
	Category string `json:"categoria"`
	Count    int    `json:"count"`
}
