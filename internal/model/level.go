package model

// xpPerLevel is the flat amount of XP needed to advance one level.
const xpPerLevel = 100

// Rank is a named tier covering a span of levels.
type Rank struct {
	MinLevel int
	MaxLevel int
	Title    string
	Icon     string
}

// Ranks lists the tiers in ascending order. The last tier is open-ended.
var Ranks = []Rank{
	{MinLevel: 1, MaxLevel: 4, Title: "Novato", Icon: "🌱"},
	{MinLevel: 5, MaxLevel: 9, Title: "Aprendiz", Icon: "📘"},
	{MinLevel: 10, MaxLevel: 19, Title: "Explorador", Icon: "🧭"},
	{MinLevel: 20, MaxLevel: 49, Title: "Mestre", Icon: "⚔"},
	{MinLevel: 50, MaxLevel: 999, Title: "Lenda", Icon: "👑"},
}

// LevelInfo is the tier derived from a raw XP total.
type LevelInfo struct {
	Level           int
	RankTitle       string
	RankIcon        string
	XPIntoLevel     int
	XPForNextLevel  int
	ProgressPercent int
}

// LevelInfoFor computes the level, rank, and progress for an XP total.
// Levels advance every 100 XP starting from level 1.
func LevelInfoFor(xp int) LevelInfo {
	if xp < 0 {
		xp = 0
	}

	level := 1 + xp/xpPerLevel

	rank := Ranks[len(Ranks)-1]
	for _, r := range Ranks {
		if level >= r.MinLevel && level <= r.MaxLevel {
			rank = r
			break
		}
	}

	into := xp - (level-1)*xpPerLevel
	percent := into * 100 / xpPerLevel
	if percent > 100 {
		percent = 100
	}
	if percent < 0 {
		percent = 0
	}

	return LevelInfo{
		Level:           level,
		RankTitle:       rank.Title,
		RankIcon:        rank.Icon,
		XPIntoLevel:     into,
		XPForNextLevel:  level * xpPerLevel,
		ProgressPercent: percent,
	}
}
