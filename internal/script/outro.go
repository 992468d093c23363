package script

// OutroText returns the localized thank-you/subscribe sentence shown
// during the outro phase, falling back to English for unknown codes.
func OutroText(language string) string {
	if t, ok := outroTexts[language]; ok {
		return t
	}
	return outroTexts["en"]
}

var outroTexts = map[string]string{
	"en": "Thank you for watching! Like and subscribe for more amazing stories.",
	"hi": "देखने के लिए धन्यवाद! अधिक कहानियों के लिए लाइक और सब्सक्राइब करें।",
	"ta": "பார்த்ததற்கு நன்றி! மேலும் கதைகளுக்கு லைக் மற்றும் சப்ஸ்கிரைப் செய்யுங்கள்।",
	"te": "చూసినందుకు ధన్యవాదాలు! మరిన్ని కథల కోసం లైక్ మరియు సబ్స్క్రైబ్ చేయండి।",
	"mr": "पाहिल्याबद्दल धन्यवाद! अधिक कथांसाठी लाइक आणि सबस्क्राइब करा।",
	"bn": "দেখার জন্য ধন্যবাদ! আরও গল্পের জন্য লাইক এবং সাবস্ক্রাইব করুন।",
	"gu": "જોવા બદલ આભાર! વધુ વાર્તાઓ માટે લાઇક અને સબ્સ્ક્રાઇબ કરો।",
	"kn": "ನೋಡಿದ್ದಕ್ಕಾಗಿ ಧನ್ಯವಾದಗಳು! ಹೆಚ್ಚಿನ ಕಥೆಗಳಿಗಾಗಿ ಲೈಕ್ ಮತ್ತು ಸಬ್ಸ್ಕ್ರೈಬ್ ಮಾಡಿ।",
	"ml": "കണ്ടതിന് നന്ദി! കൂടുതൽ കഥകൾക്കായി ലൈക്ക് ചെയ്ത് സബ്സ്ക്രൈബ് ചെയ്യുക।",
	"or": "ଦେଖିବା ପାଇଁ ଧନ୍ୟବାଦ! ଅଧିକ କାହାଣୀ ପାଇଁ ଲାଇକ୍ ଏବଂ ସବସ୍କ୍ରାଇବ୍ କରନ୍ତୁ।",
	"pa": "ਦੇਖਣ ਲਈ ਧੰਨਵਾਦ! ਹੋਰ ਕਹਾਣੀਆਂ ਲਈ ਲਾਈਕ ਅਤੇ ਸਬਸਕ੍ਰਾਈਬ ਕਰੋ।",
	"as": "চোৱাৰ বাবে ধন্যবাদ! অধিক কাহিনীৰ বাবে লাইক আৰু চাবস্ক্ৰাইব কৰক।",
	"ur": "دیکھنے کے لیے شکریہ! مزید کہانیوں کے لیے لائک اور سبسکرائب کریں۔",
	"es": "¡Gracias por ver! Dale me gusta y suscríbete para más historias increíbles.",
	"fr": "Merci d'avoir regardé! Aimez et abonnez-vous pour plus d'histoires incroyables.",
	"de": "Danke fürs Zuschauen! Liken und abonnieren Sie für weitere tolle Geschichten.",
	"ja": "ご視聴ありがとうございました！より多くの素晴らしいストーリーのために「いいね」と「チャンネル登録」をお願いします。",
	"ko": "시청해 주셔서 감사합니다! 더 많은 멋진 이야기를 위해 좋아요와 구독 부탁드립니다.",
	"zh": "感谢观看！请点赞和订阅以获取更多精彩故事。",
}
