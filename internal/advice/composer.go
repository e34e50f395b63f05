package advice

import (
	"fmt"
	"strings"
	"time"

	"github.com/kalambet/tizhi/internal/profile"
	"github.com/kalambet/tizhi/internal/questionnaire"
)

// Report is the static expert advice attached to a completed assessment.
type Report struct {
	Primary   questionnaire.Category `json:"primary"`
	Season    Season                 `json:"season"`
	Climate   string                 `json:"climate"`
	Crowd     string                 `json:"crowd"`
	SeasonTip string                 `json:"season_tip"`
	Regimen   []string               `json:"regimen"`
	Text      string                 `json:"text"`
}

// Compose builds the advice for a respondent whose primary constitution
// is primary, as of now. The respondent is expected to be validated.
func Compose(r profile.Respondent, primary questionnaire.Category, now time.Time) (Report, error) {
	g, ok := For(primary)
	if !ok {
		return Report{}, fmt.Errorf("no guidance for category %s", primary)
	}

	season := SeasonOf(now)
	rep := Report{
		Primary:   primary,
		Season:    season,
		Climate:   climateParagraph(r, primary),
		Crowd:     crowdParagraph(r, primary),
		SeasonTip: season.Tip(),
		Regimen: []string{
			fmt.Sprintf("饮食调理：%s。日常需%s。", g.Diet, g.Avoid),
			fmt.Sprintf("生活起居：%s。", g.Lifestyle),
			fmt.Sprintf("经穴养生：建议每日按揉%s，每穴3-5分钟，以酸胀感为度。", g.Acupoints),
			fmt.Sprintf("心态调节：%s。", g.Mind),
		},
	}
	rep.Text = render(rep)
	return rep, nil
}

// climateParagraph picks the first matching climate keyword in priority
// order: mild, damp, dry, cold.
func climateParagraph(r profile.Respondent, primary questionnaire.Category) string {
	place := r.Province + r.City
	label := primary.Label()
	switch c := r.Climate; {
	case strings.Contains(c, "温和"):
		return fmt.Sprintf("鉴于%s气候相对温和，您的%s表现可能较为平稳，但需注意四季更替时的气机转换。", place, label)
	case strings.Contains(c, "湿"):
		return fmt.Sprintf("由于您居住在%s，当地气候%s，湿邪易困脾胃。对于您的%s而言，务必加强排湿化浊，防止湿邪加重体质偏颇。", place, c, label)
	case strings.Contains(c, "燥"):
		return fmt.Sprintf("考虑到%s气候%s，易耗伤津液。您的%s更应注重滋阴润养，防止内热化燥。", place, c, label)
	case strings.Contains(c, "寒"):
		return fmt.Sprintf("%s气候%s，寒主收引。您的%s需要格外注意温补防御，保护脏腑阳气不受风寒侵袭。", place, c, label)
	default:
		return fmt.Sprintf("身处%s，受%s影响，建议顺应自然节律，根据当地物候特征及时调整作息。", place, c)
	}
}

func crowdParagraph(r profile.Respondent, primary questionnaire.Category) string {
	term := "男性"
	if r.Gender == profile.Female {
		term = "女性"
	}
	label := primary.Label()

	switch {
	case r.Age < 30:
		focus := "要注意避免因熬夜和高压导致的气血损耗。"
		if r.Gender == profile.Female {
			focus = "尤其要注意月事前后的情绪调控与补气。"
		}
		return fmt.Sprintf("您正值青壮年，作为%s，调理重心应放在“疏泄”与“固表”上。%s", term, focus)
	case r.Age < 55:
		focus := "，并兼顾护肾固精。"
		if r.Gender == profile.Female {
			focus = "，同时关注气血盈亏。"
		}
		return fmt.Sprintf("步入中年，身体正处于转型期。作为%s，%s的调理应更侧重于脾胃之气的运化%s", term, label, focus)
	default:
		return fmt.Sprintf("年过半百，阳气渐衰。作为%s，您的%s调理需以“补肾”为纲，通过温和的方式维持脏腑活力，切忌大补大泄。", term, label)
	}
}

func render(rep Report) string {
	var sb strings.Builder
	sb.WriteString("【体质分析】\n")
	sb.WriteString(rep.Climate)
	sb.WriteString("\n\n【人群定制】\n")
	sb.WriteString(rep.Crowd)
	sb.WriteString("\n\n【时令指导】\n")
	fmt.Fprintf(&sb, "当前正值%s。%s", rep.Season.Label(), rep.SeasonTip)
	sb.WriteString("\n\n【健康建议方案】\n")
	for i, line := range rep.Regimen {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, line)
	}
	sb.WriteString("\n顺天之时，随地之利，守人之和。")
	return sb.String()
}
