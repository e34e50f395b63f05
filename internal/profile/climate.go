package profile

import "strings"

// DefaultClimate is used for provinces missing from the table.
const DefaultClimate = "四季分明"

var provinceClimate = map[string]string{
	"北京":  "冬寒夏热，干燥少雨",
	"天津":  "冬寒干燥",
	"上海":  "温暖潮湿",
	"重庆":  "湿热多雾",
	"河北":  "干燥寒冷",
	"山西":  "干燥寒冷",
	"内蒙古": "寒冷干燥",
	"辽宁":  "寒冷",
	"吉林":  "严寒",
	"黑龙江": "严寒",
	"江苏":  "温和湿润",
	"浙江":  "温暖湿润",
	"安徽":  "温和",
	"福建":  "温暖湿润",
	"江西":  "湿热",
	"山东":  "温和偏燥",
	"河南":  "温和偏燥",
	"湖北":  "湿热",
	"湖南":  "湿热",
	"广东":  "湿热多雨",
	"广西":  "湿热多雨",
	"海南":  "湿热",
	"四川":  "温和湿润",
	"贵州":  "阴凉湿润",
	"云南":  "四季温和",
	"西藏":  "高寒",
	"陕西":  "干燥",
	"甘肃":  "干燥少雨",
	"青海":  "高寒干燥",
	"宁夏":  "干燥少雨",
	"新疆":  "干燥",
	"台湾":  "温暖湿润",
	"香港":  "湿热",
	"澳门":  "湿热",
}

// ClimateFor returns the characteristic climate of a province. Trailing
// administrative suffixes ("省", "市", "自治区") are ignored.
func ClimateFor(province string) string {
	p := strings.TrimSpace(province)
	for _, suffix := range []string{"壮族自治区", "回族自治区", "维吾尔自治区", "自治区", "特别行政区", "省", "市"} {
		p = strings.TrimSuffix(p, suffix)
	}
	if c, ok := provinceClimate[p]; ok {
		return c
	}
	return DefaultClimate
}
