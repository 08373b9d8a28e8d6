// Package i18n holds the bilingual UI strings and text-direction rules.
// The language set is closed: English ("en", left-to-right) and Pashto
// ("ps", right-to-left).
package i18n

const DefaultLanguage = "en"

var supported = map[string]bool{
	"en": true,
	"ps": true,
}

func Supported(lang string) bool { return supported[lang] }

// Languages returns the closed language set in a fixed order.
func Languages() []string { return []string{"en", "ps"} }

// Direction returns the text direction tag for a language.
func Direction(lang string) string {
	if lang == "ps" {
		return "rtl"
	}
	return "ltr"
}

// Normalize maps an arbitrary language tag to a supported one.
func Normalize(lang string) string {
	if supported[lang] {
		return lang
	}
	return DefaultLanguage
}

// T returns the translation table for a language.
func T(lang string) map[string]string {
	if t, ok := translations[lang]; ok {
		return t
	}
	return translations[DefaultLanguage]
}

var translations = map[string]map[string]string{
	"en": {
		"app_name":            "Plant Disease Classifier",
		"upload_image":        "Upload Plant Image",
		"predict":             "Predict Disease",
		"upload_success":      "Image uploaded successfully!",
		"upload_error":        "Error uploading image. Please try again.",
		"prediction_result":   "Disease Prediction Result",
		"class_probabilities": "Disease Probabilities",
		"confidence":          "Confidence",
		"model_loaded":        "Model is ready for disease prediction",
		"model_error":         "Model not loaded properly",
		"processing":          "Analyzing plant disease...",
		"healthy":             "Healthy",
		"unhealthy":           "Diseased",
		"disease_detected":    "Disease Detected",
		"no_disease":          "No Disease Detected",
		"plant_healthy":       "Plant is Healthy",
		"top_predictions":     "Top 3 Predictions",
		"severity":            "Severity",
		"symptoms":            "Symptoms",
		"treatment":           "Treatment",
		"prevention":          "Prevention",
		"recommendation":      "Recommendation",
		"warning":             "Warning",
		"disclaimer":          "Disclaimer",
		"message_sent":        "Message sent successfully!",
		"message_error":       "Error sending message. Please try again.",
		"all_fields_required": "All fields are required",
		"login_success":       "Login successful!",
		"login_error":         "Invalid username or password",
		"register_success":    "Registration successful! Please login.",
		"password_mismatch":   "Passwords do not match",
		"username_exists":     "Username already exists",
		"email_exists":        "Email already exists",
		"language_changed":    "Language changed",
		"no_file":             "No file selected",
		"invalid_file_type":   "Invalid file type. Allowed: PNG, JPG, JPEG, GIF, BMP",
		"file_too_large":      "File is too large",
		"undecodable_image":   "Could not read the image. Please upload a valid photo.",
	},
	"ps": {
		"app_name":            "د نباتاتو ناروغۍ ډلبندي",
		"upload_image":        "د نبات انځور پورته کړئ",
		"predict":             "ناروغۍ ومومئ",
		"upload_success":      "انځور په بریالیتوب سره پورته شو!",
		"upload_error":        "د انځور پورته کولو کې ستونزه. بیا هڅه وکړئ.",
		"prediction_result":   "د نبات ناروغۍ د تشخیص نتیجه",
		"class_probabilities": "د ناروغۍ احتمالات",
		"confidence":          "باوري",
		"model_loaded":        "مودل د ناروغۍ د تشخیص لپاره چمتو دی",
		"model_error":         "مودل په سمه توګه نه دی پورته شوی",
		"processing":          "د نبات ناروغۍ تحلیل کول...",
		"healthy":             "سوک",
		"unhealthy":           "ناروغ",
		"disease_detected":    "ناروغۍ وموندل شوه",
		"no_disease":          "هیڅ ناروغۍ ونه موندل شوه",
		"plant_healthy":       "نبات سوک دی",
		"top_predictions":     "مخکینۍ ۳ پیشبینۍ",
		"severity":            "شدت",
		"symptoms":            "نښې نښانې",
		"treatment":           "درملنه",
		"prevention":          "مخنیوی",
		"recommendation":      "وړاندیز",
		"warning":             "خبرتیا",
		"disclaimer":          "ذمه وری",
		"message_sent":        "پیغام په بریالیتوب سره ولېږل شو!",
		"message_error":       "د پیغام د لېږلو ستونزه. بیا هڅه وکړئ.",
		"all_fields_required": "ټول ساحې اړینې دي",
		"login_success":       "په بریالیتوب سره ننوتل!",
		"login_error":         "ناسم کارن نوم یا پاسورډ",
		"register_success":    "ثبت نام په بریالیتوب سره! مهرباني وکړئ ننوتل.",
		"password_mismatch":   "پاسورډونه سمون نه خوري",
		"username_exists":     "کارن نوم لا دمخه شته",
		"email_exists":        "بریښنالیک لا دمخه شته",
		"language_changed":    "ژبه بدله شوه",
		"no_file":             "هیڅ فایل نه دی ټاکل شوی",
		"invalid_file_type":   "ناسم ډول فایل. اجازه لرونکي: PNG, JPG, JPEG, GIF, BMP",
		"file_too_large":      "فایل ډیر لوی دی",
		"undecodable_image":   "انځور نه شي لوستل کیدی. مهرباني وکړئ سم انځور پورته کړئ.",
	},
}
