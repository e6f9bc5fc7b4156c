package ui

import "sort"

// InvalidFieldSet — поля формы, не прошедшие проверку. Хранятся только невалидные.
type InvalidFieldSet map[string]bool

// Set отмечает поле невалидным или убирает отметку.
func (s InvalidFieldSet) Set(field string, invalid bool) {
	if invalid {
		s[field] = true
		return
	}
	delete(s, field)
}

func (s InvalidFieldSet) Has(field string) bool {
	return s[field]
}

func (s InvalidFieldSet) Empty() bool {
	return len(s) == 0
}

// Fields возвращает имена невалидных полей по алфавиту.
func (s InvalidFieldSet) Fields() []string {
	res := make([]string, 0, len(s))
	for f := range s {
		res = append(res, f)
	}
	sort.Strings(res)
	return res
}
