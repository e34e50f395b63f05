package advice

import "time"

// Season is one of the four seasons of the regimen calendar.
type Season string

const (
	Spring Season = "spring"
	Summer Season = "summer"
	Autumn Season = "autumn"
	Winter Season = "winter"
)

// SeasonOf maps a date to its season: March to May is spring, June to
// August summer, September to November autumn, the rest winter.
func SeasonOf(t time.Time) Season {
	switch m := t.Month(); {
	case m >= time.March && m <= time.May:
		return Spring
	case m >= time.June && m <= time.August:
		return Summer
	case m >= time.September && m <= time.November:
		return Autumn
	default:
		return Winter
	}
}

// Label returns the Chinese name of the season.
func (s Season) Label() string {
	switch s {
	case Spring:
		return "春季"
	case Summer:
		return "夏季"
	case Autumn:
		return "秋季"
	default:
		return "冬季"
	}
}

var seasonalTips = map[Season]string{
	Spring: "春季养肝，宜食辛甘发散之品，如韭菜、菠菜，少酸多甘。",
	Summer: "夏季养心，宜清淡消暑，如绿豆、冬瓜，切忌贪凉饮冷。",
	Autumn: "秋季养肺，宜滋阴润燥，如梨、百合、银耳，少辛多酸。",
	Winter: "冬季养肾，宜温补收藏，如羊肉、核桃、黑豆，早卧晚起。",
}

// Tip returns the seasonal diet tip.
func (s Season) Tip() string {
	return seasonalTips[s]
}
