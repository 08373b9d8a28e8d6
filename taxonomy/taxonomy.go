// Package taxonomy holds the fixed ordered class list the model outputs,
// plus the policy tables derived from it. The class order must match the
// model's output vector exactly.
package taxonomy

// ClassNames maps language -> ordered class labels, index-aligned with the
// model output (PlantVillage subset, 8 classes).
var ClassNames = map[string][]string{
	"en": {
		"Pepper Bell Bacterial Spot",
		"Pepper Bell Healthy",
		"Potato Early Blight",
		"Potato Late Blight",
		"Potato Healthy",
		"Tomato Bacterial Spot",
		"Tomato Early Blight",
		"Tomato Late Blight",
	},
	"ps": {
		"مرچ د باکتریا سپاټ",
		"مرچ سوکه",
		"کچالو لومړنۍ بلایټ",
		"کچالو وروستنۍ بلایټ",
		"کچالو سوک",
		"ټماټر د باکتریا سپاټ",
		"ټماټر لومړنۍ بلایټ",
		"ټماټر وروستنۍ بلایټ",
	},
}

// healthyClasses is policy baked into the class taxonomy, not a model
// output: these indices are the "healthy" labels.
var healthyClasses = map[int]bool{
	1: true,
	4: true,
}

func NumClasses() int { return len(ClassNames["en"]) }

func IsHealthy(classIndex int) bool { return healthyClasses[classIndex] }

// Label returns the class label for the given language, falling back to
// English and then to a generic placeholder for out-of-range indices.
func Label(classIndex int, lang string) string {
	names, ok := ClassNames[lang]
	if !ok {
		names = ClassNames["en"]
	}
	if classIndex < 0 || classIndex >= len(names) {
		return "Unknown Class"
	}
	return names[classIndex]
}

// severityColors maps a severity label in either language to a display tag.
var severityColors = map[string]string{
	"None":     "success",
	"Low":      "info",
	"Medium":   "warning",
	"High":     "danger",
	"Critical": "dark",
	"هیڅ":      "success",
	"کم":       "info",
	"منځنی":    "warning",
	"لوړ":      "danger",
	"حساس":     "dark",
}

// SeverityColor returns the display tag for a severity label; unknown
// severities get the neutral tag.
func SeverityColor(severity string) string {
	if color, ok := severityColors[severity]; ok {
		return color
	}
	return "secondary"
}

// DefaultSeverity is the seed severity per class index: bacterial spots and
// late blight are High, early blight Medium, healthy classes None.
func DefaultSeverity(classIndex int, lang string) string {
	var tier string
	switch classIndex {
	case 0, 5, 7:
		tier = "High"
	case 2, 6:
		tier = "Medium"
	default:
		tier = "None"
	}
	if lang != "ps" {
		return tier
	}
	switch tier {
	case "High":
		return "لوړ"
	case "Medium":
		return "منځنی"
	default:
		return "هیڅ"
	}
}
