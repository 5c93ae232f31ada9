package journal

import (
	"context"
	"errors"
)

// ErrEmptyAnnotation: el oráculo respondió pero sin texto útil.
var ErrEmptyAnnotation = errors.New("oracle returned an empty annotation")

type StepStatus string

const (
	StepOK      StepStatus = "ok"
	StepFailed  StepStatus = "failed"
	StepSkipped StepStatus = "skipped"
)

// InsertResult es el paso 1 (sincrónico). Err != nil es terminal.
type InsertResult struct {
	Entry Entry
	Err   error
}

func (r InsertResult) OK() bool { return r.Err == nil }

// OracleResult es el paso 2.
type OracleResult struct {
	Status StepStatus
	Text   string
	Err    error
}

// UpdateResult es el paso 3. Entry solo es válido con StepOK.
type UpdateResult struct {
	Status StepStatus
	Entry  Entry
	Err    error
}

// Outcome resume los pasos asíncronos de una entrada.
type Outcome struct {
	EntryID string
	Oracle  OracleResult
	Update  UpdateResult
}

func (o Outcome) Annotated() bool {
	return o.Update.Status == StepOK
}

// Degraded: la entrada existe pero quedó sin anotación por una falla.
func (o Outcome) Degraded() bool {
	return o.Oracle.Status == StepFailed || o.Update.Status == StepFailed
}

// Label es la etiqueta estable usada en métricas y logs.
func (o Outcome) Label() string {
	switch {
	case o.Annotated():
		return "annotated"
	case o.Oracle.Status == StepFailed && errors.Is(o.Oracle.Err, ErrEmptyAnnotation):
		return "oracle_empty"
	case o.Oracle.Status == StepFailed:
		return "oracle_failed"
	case o.Update.Status == StepFailed:
		return "update_failed"
	default:
		return "skipped"
	}
}

// Message es el texto visible para el usuario en caso de éxito parcial.
func (o Outcome) Message() string {
	switch {
	case o.Annotated():
		return ""
	case o.Oracle.Status == StepFailed:
		return "Your entry was saved, but generating the supportive comment failed."
	case o.Update.Status == StepFailed:
		return "Your entry was saved, but the supportive comment could not be attached to it."
	default:
		return ""
	}
}

// Submission es el handle de una entrada recién insertada mientras
// los pasos 2 y 3 corren en background.
type Submission struct {
	Entry    Entry
	Replayed bool // respondida desde la cache de idempotencia, sin insert ni oráculo

	done    chan struct{}
	outcome Outcome
	origin  *Submission // en un replay, la submission original
}

func newSubmission(e Entry) *Submission {
	return &Submission{
		Entry: e,
		done:  make(chan struct{}),
	}
}

// replayed comparte el workflow de la original con la entrada releída.
func (s *Submission) replayed(e Entry) *Submission {
	return &Submission{
		Entry:    e,
		Replayed: true,
		done:     s.done,
		origin:   s,
	}
}

func (s *Submission) Done() <-chan struct{} { return s.done }

// Outcome no bloquea; ok=false mientras los pasos sigan en curso.
func (s *Submission) Outcome() (Outcome, bool) {
	select {
	case <-s.done:
		return s.result(), true
	default:
		return Outcome{}, false
	}
}

func (s *Submission) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-s.done:
		return s.result(), nil
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
}

func (s *Submission) result() Outcome {
	if s.origin != nil {
		return s.origin.outcome
	}
	return s.outcome
}

func (s *Submission) finish(o Outcome) {
	s.outcome = o
	close(s.done)
}
