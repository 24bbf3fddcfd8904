package ner

import "unicode/utf8"

// personBlacklist holds pronouns, kinship terms and honorifics that tagging
// models routinely mark as PERSON.
var personBlacklist = map[string]struct{}{
	"เขา": {}, "เธอ": {}, "มัน": {}, "ฉัน": {}, "ผม": {}, "เรา": {},
	"พี่": {}, "น้อง": {}, "คุณ": {}, "ท่าน": {}, "นาง": {}, "นาย": {},
	"หมอ": {}, "ครู": {}, "อาจารย์": {}, "แม่": {}, "พ่อ": {}, "ลุง": {},
	"ป้า": {}, "น้า": {}, "อา": {}, "ปู่": {}, "ย่า": {}, "ตา": {},
	"ยาย": {}, "หนู": {}, "กู": {}, "มึง": {}, "แก": {}, "ดิฉัน": {},
	"กระผม": {}, "เจ้า": {}, "ข้า": {}, "พวกเขา": {}, "พวกเรา": {},
	"ตัวเอง": {}, "นางสาว": {}, "เด็กชาย": {}, "เด็กหญิง": {},
}

// IsBlacklistedPerson reports whether name is a pronoun, kinship term or
// honorific that must never be treated as a character.
func IsBlacklistedPerson(name string) bool {
	_, ok := personBlacklist[name]
	return ok
}

// PersonBlacklist returns a copy of the blacklist entries.
func PersonBlacklist() []string {
	out := make([]string, 0, len(personBlacklist))
	for w := range personBlacklist {
		out = append(out, w)
	}
	return out
}

// IsPersonCandidate applies the PERSON noise filter: more than one
// character and not blacklisted.
func IsPersonCandidate(name string) bool {
	return utf8.RuneCountInString(name) > 1 && !IsBlacklistedPerson(name)
}
