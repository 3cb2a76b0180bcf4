package scoring

// Grade is a letter grade with its display color and message.
type Grade struct {
	Letter  string
	Color   string
	Message string
	// Min is the lowest score that earns this grade.
	Min int
}

// grades is ordered by descending threshold.
var grades = []Grade{
	{Letter: "A+", Color: "#16A34A", Message: "Outstanding Performance!", Min: 90},
	{Letter: "A", Color: "#22C55E", Message: "Excellent Work!", Min: 80},
	{Letter: "B", Color: "#3B82F6", Message: "Good Job!", Min: 70},
	{Letter: "C", Color: "#EAB308", Message: "Room for Improvement", Min: 60},
	{Letter: "F", Color: "#EF4444", Message: "Need More Practice", Min: 0},
}

// GradeFor returns the grade with the largest threshold not above percent.
func GradeFor(percent int) Grade {
	for _, g := range grades {
		if percent >= g.Min {
			return g
		}
	}
	return grades[len(grades)-1]
}

// Grades returns all grades, highest first.
func Grades() []Grade {
	out := make([]Grade, len(grades))
	copy(out, grades)
	return out
}
