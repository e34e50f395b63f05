package advice

import "github.com/kalambet/tizhi/internal/questionnaire"

// Guidance is the standing regimen for one constitution type.
type Guidance struct {
	Description string `json:"description"`
	Diet        string `json:"diet"`
	Avoid       string `json:"avoid"`
	Lifestyle   string `json:"lifestyle"`
	Acupoints   string `json:"acupoints"`
	Mind        string `json:"mind"`
}

var catalog = map[questionnaire.Category]Guidance{
	questionnaire.Balanced: {
		Description: "阴阳气血调和，体态适中，面色红润，精力充沛",
		Diet:        "饮食有节，粗细搭配，荤素均衡",
		Avoid:       "避免过饥过饱及饮食偏嗜",
		Lifestyle:   "起居有常，劳逸结合，坚持适度运动",
		Acupoints:   "足三里、关元",
		Mind:        "保持平和乐观，顺应四时变化",
	},
	questionnaire.QiDeficiency: {
		Description: "元气不足，容易疲乏，气短懒言，稍动即汗",
		Diet:        "多食益气健脾之品，如山药、黄芪、大枣、小米",
		Avoid:       "少食生冷寒凉及耗气之物，如萝卜、槟榔",
		Lifestyle:   "避免过劳，运动宜柔缓，如太极拳、散步",
		Acupoints:   "气海、足三里",
		Mind:        "多与人交流，避免思虑过度",
	},
	questionnaire.YangDeficiency: {
		Description: "阳气不足，畏寒怕冷，手足不温，喜热饮食",
		Diet:        "宜温补阳气，如羊肉、韭菜、生姜、桂圆",
		Avoid:       "忌生冷冰饮，少吹空调",
		Lifestyle:   "注意保暖，多晒太阳，以动养阳",
		Acupoints:   "关元、命门",
		Mind:        "多参加户外活动，振奋情绪",
	},
	questionnaire.YinDeficiency: {
		Description: "阴液亏少，口燥咽干，手足心热，易生内热",
		Diet:        "宜滋阴润燥，如百合、银耳、鸭肉、梨",
		Avoid:       "少食辛辣燥热及煎炸之物",
		Lifestyle:   "保证睡眠，避免熬夜及大汗",
		Acupoints:   "太溪、三阴交",
		Mind:        "安神定志，戒急躁",
	},
	questionnaire.PhlegmDampness: {
		Description: "痰湿凝聚，形体偏胖，腹部肥满，口黏苔腻",
		Diet:        "宜健脾化湿，如薏苡仁、冬瓜、赤小豆",
		Avoid:       "少食肥甘厚味及甜腻之物",
		Lifestyle:   "居处避潮湿，坚持中等强度运动",
		Acupoints:   "丰隆、足三里",
		Mind:        "培养兴趣爱好，保持积极心态",
	},
	questionnaire.DampHeat: {
		Description: "湿热内蕴，面垢油光，口苦口干，易生痤疮",
		Diet:        "宜清热利湿，如绿豆、苦瓜、芹菜、黄瓜",
		Avoid:       "戒烟限酒，少食辛辣油腻",
		Lifestyle:   "避免湿热环境，保持二便通畅",
		Acupoints:   "曲池、阴陵泉",
		Mind:        "静心少躁，适度宣泄情绪",
	},
	questionnaire.BloodStasis: {
		Description: "血行不畅，肤色晦暗，易现瘀斑，口唇暗淡",
		Diet:        "宜活血化瘀，如山楂、黑木耳、玫瑰花",
		Avoid:       "少食寒凉收涩及肥腻之物",
		Lifestyle:   "多做舒展血脉的运动，避免久坐",
		Acupoints:   "血海、膈俞",
		Mind:        "保持心情舒畅，避免郁闷",
	},
	questionnaire.QiStagnation: {
		Description: "气机郁滞，情志抑郁，忧虑脆弱，胸胁胀闷",
		Diet:        "宜理气解郁，如佛手、玫瑰花、陈皮",
		Avoid:       "少饮浓茶咖啡，忌寒凉收敛之物",
		Lifestyle:   "多参加集体活动，常到户外舒展",
		Acupoints:   "太冲、膻中",
		Mind:        "主动倾诉，培养开朗豁达的性格",
	},
	questionnaire.SpecialDiathesis: {
		Description: "先天禀赋失常，易过敏，常见喷嚏、风团",
		Diet:        "饮食清淡均衡，益气固表，如黄芪、白术、大枣",
		Avoid:       "避免已知致敏食物及腥膻发物",
		Lifestyle:   "减少接触过敏原，换季时注意防护",
		Acupoints:   "足三里、风门",
		Mind:        "避免紧张，保持情绪稳定",
	},
}

// For returns the guidance for c. ok is false for undeclared categories.
func For(c questionnaire.Category) (g Guidance, ok bool) {
	g, ok = catalog[c]
	return g, ok
}
