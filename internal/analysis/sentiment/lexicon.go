package sentiment

// Lexicon holds the word sets the classifier matches against. The lists are
// configuration, not logic: any language can be injected.
type Lexicon struct {
	Positive []string
	Negative []string
}

// DefaultArabicLexicon returns the curated Arabic vocabulary used by the
// support-chat deployment.
func DefaultArabicLexicon() Lexicon {
	return Lexicon{
		Positive: []string{
			"ممتاز", "رائع", "جيد", "حسن", "مشكور", "شكرا", "شكراً", "جزيلا",
			"سعيد", "سعادة", "مبهر", "جميل", "عظيم",
			"ممتازة", "رائعة", "جيدة", "حسنة", "مشكورة", "سعيدة", "مبهرة",
			"جميلة", "عظيمة", "أحسن", "أفضل",
			"ممتازين", "رائعين", "جيدين", "حسنين", "مشكورين", "شاكرين",
			"سعداء", "مبهرين", "جميلين", "عظيمين",
		},
		Negative: []string{
			"سيء", "رديء", "مزعج", "مؤلم", "محرج", "مخيب",
			"سيئة", "رديئة", "مزعجة", "مؤلمة", "محرجة", "مخيبة",
			"سيئين", "رديئين", "مزعجين", "مؤلمين", "محرجين", "مخيبين",
			"غاضب", "غاضبة", "غاضبين",
			"محبط", "محبطة", "محبطين",
			"مستاء", "مستاءة", "مستائين", "مستاءين", "مستاءات",
		},
	}
}
