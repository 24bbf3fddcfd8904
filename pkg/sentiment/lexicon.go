package sentiment

var positive = map[string]struct{}{
	"รัก": {}, "ดี": {}, "สุข": {}, "สวย": {}, "ยิ้ม": {}, "หัวเราะ": {}, "ชอบ": {},
	"อบอุ่น": {}, "หวาน": {}, "ตื่นเต้น": {}, "สำเร็จ": {}, "รอด": {}, "ชนะ": {},
}

var negative = map[string]struct{}{
	"เกลียด": {}, "ตาย": {}, "ฆ่า": {}, "เลว": {}, "ร้องไห้": {}, "เจ็บ": {}, "โกรธ": {},
	"เศร้า": {}, "ทรมาน": {}, "กลัว": {}, "มืดมน": {}, "แพ้": {}, "เจ็บปวด": {},
}

// Polarity returns +1 for a positive lexicon word, -1 for a negative one
// and 0 otherwise. Matching is exact.
func Polarity(token string) int {
	if _, ok := positive[token]; ok {
		return 1
	}
	if _, ok := negative[token]; ok {
		return -1
	}
	return 0
}

// Lexicon returns copies of the positive and negative word lists.
func Lexicon() (pos []string, neg []string) {
	for w := range positive {
		pos = append(pos, w)
	}
	for w := range negative {
		neg = append(neg, w)
	}
	return pos, neg
}
