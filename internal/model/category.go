package model

// Vocabularies offered by the confirmation form. They mirror the values the
// classifier is prompted with, so pre-filled answers normally match an option.
var (
	Categories  = []string{"上衣", "裤子", "裙子", "外套", "鞋子", "帽子", "包包", "配饰"}
	Colors      = []string{"黑色", "白色", "灰色", "米色", "蓝色", "红色", "绿色", "黄色", "橙色", "紫色", "粉色", "棕色", "牛仔蓝"}
	Styles      = []string{"休闲", "正式", "运动", "通勤", "时尚", "街头", "复古", "简约", "优雅", "甜美"}
	Seasons     = []string{"春季", "夏季", "秋季", "冬季"}
	Occasions   = []string{"日常休闲", "上班通勤", "户外运动", "正式场合", "约会", "聚会", "旅行"}
	Thicknesses = []string{"薄款", "中等", "厚款"}
)

// seasonAliases maps the classifier's short season names onto the form's options.
var seasonAliases = map[string]string{
	"春": "春季",
	"夏": "夏季",
	"秋": "秋季",
	"冬": "冬季",
}

// NormalizeSeason maps "春" to "春季" and leaves other values unchanged.
func NormalizeSeason(season string) string {
	if full, ok := seasonAliases[season]; ok {
		return full
	}
	return season
}
