package journal

import "time"

// Entry es una entrada de diario. Annotation nil = todavía sin comentario
// (o el workflow falló y quedó así para siempre).
type Entry struct {
	ID          string
	OwnerUserID string

	Content    string
	Annotation *string

	CreatedAt time.Time
}

func (e Entry) Annotated() bool {
	return e.Annotation != nil
}
