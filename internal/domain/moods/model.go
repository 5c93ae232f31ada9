package moods

import "time"

type Label string

const (
	LabelHappy   Label = "happy"
	LabelCalm    Label = "calm"
	LabelNeutral Label = "neutral"
	LabelTired   Label = "tired"
	LabelAnxious Label = "anxious"
	LabelSad     Label = "sad"
	LabelAngry   Label = "angry"
)

// Labels en el orden en que se muestran.
var Labels = []Label{
	LabelHappy,
	LabelCalm,
	LabelNeutral,
	LabelTired,
	LabelAnxious,
	LabelSad,
	LabelAngry,
}

// Mood es inmutable: se crea o se borra, nunca se edita.
type Mood struct {
	ID          string
	OwnerUserID string

	Label Label
	Note  string

	CreatedAt time.Time
}
