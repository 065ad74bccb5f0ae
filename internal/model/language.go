package model

type LanguageLevel string

const (
	LanguageLevelBeginner     LanguageLevel = "BEGINNER"
	LanguageLevelIntermediate LanguageLevel = "INTERMEDIATE"
	LanguageLevelAdvanced     LanguageLevel = "ADVANCED"
	LanguageLevelNative       LanguageLevel = "NATIVE"
)

// LevelFor 返回用户在指定语言下声明的水平，没有声明时为 BEGINNER
func (u *User) LevelFor(languageID uint64) LanguageLevel {
	for _, l := range u.Languages {
		if l.LanguageID == languageID && l.Level != "" {
			return l.Level
		}
	}
	return LanguageLevelBeginner
}
