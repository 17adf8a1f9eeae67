// Package stats 成绩与人数统计：纯函数，输入为已加载的快照，不做任何 I/O。
//
// 所有函数对缺失字段取"排除"语义（未评分的成绩、无年级的学生等），
// 空输入返回 0 或 "N/A"，从不返回错误。
package stats

// Band 成绩等级
type Band int

const (
	BandA Band = iota // [16, 20]
	BandB             // [14, 16)
	BandC             // [12, 14)
	BandD             // [10, 12)
	BandE             // [0, 10)
)

// bandCount 等级数量
const bandCount = 5

// 及格线：score >= PassMark 视为通过
const PassMark = 10.0

// MaxScore 满分
const MaxScore = 20.0

var bandLabels = [bandCount]string{"A (16-20)", "B (14-16)", "C (12-14)", "D (10-12)", "E (<10)"}
var bandNames = [bandCount]string{"A", "B", "C", "D", "E"}

// String 等级字母
func (b Band) String() string {
	if b < BandA || b > BandE {
		return "?"
	}
	return bandNames[b]
}

// Label 图表展示用标签
func (b Band) Label() string {
	if b < BandA || b > BandE {
		return ""
	}
	return bandLabels[b]
}

// BandOf 按降序切点归档：>=16 A，>=14 B，>=12 C，>=10 D，其余 E
func BandOf(score float64) Band {
	switch {
	case score >= 16:
		return BandA
	case score >= 14:
		return BandB
	case score >= 12:
		return BandC
	case score >= PassMark:
		return BandD
	default:
		return BandE
	}
}
