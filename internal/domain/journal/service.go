package journal

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"mood-journal/internal/platform/apperr"
	"mood-journal/internal/platform/logger"
	"mood-journal/internal/platform/metrics"
	"mood-journal/internal/platform/validation"
	"mood-journal/internal/ports/oracle"

	"github.com/patrickmn/go-cache"
)

const (
	defaultSettleDelay    = time.Second
	defaultIdempotencyTTL = 10 * time.Minute
	defaultListLimit      = 20
	maxListLimit          = 100
)

type Options struct {
	Logger  logger.Logger
	Metrics *metrics.Metrics

	// Espera antes de releer la entrada tras un update exitoso.
	// Cero usa el default; negativo desactiva la espera.
	ReadAfterWriteDelay time.Duration
	IdempotencyTTL      time.Duration
	DefaultListLimit    int
	MaxListLimit        int
}

// Service orquesta el flujo guardar-y-anotar: insert sincrónico,
// oráculo y update en background.
type Service struct {
	repo    Repository
	oracle  oracle.Annotator // nil = anotaciones deshabilitadas
	log     logger.Logger
	metrics *metrics.Metrics

	idem         *cache.Cache // owner+key -> *Submission (nil mientras el insert está en curso)
	settleDelay  time.Duration
	defaultLimit int
	maxLimit     int

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error

	inflight sync.WaitGroup
}

func NewService(repo Repository, annotator oracle.Annotator, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	delay := opts.ReadAfterWriteDelay
	switch {
	case delay == 0:
		delay = defaultSettleDelay
	case delay < 0:
		delay = 0
	}

	ttl := opts.IdempotencyTTL
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}

	maxLimit := opts.MaxListLimit
	if maxLimit <= 0 {
		maxLimit = maxListLimit
	}
	defLimit := opts.DefaultListLimit
	if defLimit <= 0 || defLimit > maxLimit {
		defLimit = min(defaultListLimit, maxLimit)
	}

	return &Service{
		repo:         repo,
		oracle:       annotator,
		log:          log.With(map[string]any{"component": "journal"}),
		metrics:      opts.Metrics,
		idem:         cache.New(ttl, 2*ttl),
		settleDelay:  delay,
		defaultLimit: defLimit,
		maxLimit:     maxLimit,
		now:          time.Now,
		sleep:        sleepCtx,
	}
}

type submitInput struct {
	OwnerUserID string `json:"owner_user_id" validate:"notblank"`
	Content     string `json:"content" validate:"notblank,max=10000"`
}

// Submit inserta la entrada y dispara la anotación en background.
// Solo el insert puede fallar la llamada; lo demás queda en el Outcome.
// Con idempotencyKey, un reintento del mismo dueño devuelve la entrada
// original sin insertar ni llamar al oráculo.
func (s *Service) Submit(ctx context.Context, ownerUserID, content, idempotencyKey string) (*Submission, error) {
	const op = "journal.Submit"

	in := submitInput{
		OwnerUserID: strings.TrimSpace(ownerUserID),
		Content:     strings.TrimSpace(content),
	}
	if err := validation.Struct(op, in); err != nil {
		return nil, err
	}

	key := idemKey(in.OwnerUserID, idempotencyKey)
	if key != "" {
		sub, handled, err := s.replay(ctx, op, in.OwnerUserID, key)
		if handled {
			return sub, err
		}
	}

	ins := s.insert(ctx, op, in)
	if !ins.OK() {
		if key != "" {
			s.idem.Delete(key)
		}
		return nil, ins.Err
	}
	stored := ins.Entry
	s.metrics.IncSubmission()

	sub := newSubmission(stored)
	if key != "" {
		s.idem.Set(key, sub, cache.DefaultExpiration)
	}

	// El workflow sobrevive a la cancelación del request.
	bg := context.WithoutCancel(ctx)
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		sub.finish(s.annotate(bg, stored.OwnerUserID, stored.ID, stored.Content))
	}()

	return sub, nil
}

func (s *Service) insert(ctx context.Context, op string, in submitInput) InsertResult {
	stored, err := s.repo.Create(ctx, Entry{
		OwnerUserID: in.OwnerUserID,
		Content:     in.Content,
	})
	if err != nil {
		s.log.Error("journal insert failed", map[string]any{"owner_user_id": in.OwnerUserID, "error": err})
		return InsertResult{Err: apperr.Wrap(apperr.KindStoreWrite, op, err)}
	}
	return InsertResult{Entry: stored}
}

// replay resuelve una clave ya vista. handled=false significa que la clave
// quedó reservada para esta llamada y hay que insertar.
func (s *Service) replay(ctx context.Context, op, ownerUserID, key string) (*Submission, bool, error) {
	var pending *Submission
	if err := s.idem.Add(key, pending, cache.DefaultExpiration); err == nil {
		return nil, false, nil
	}

	v, ok := s.idem.Get(key)
	if !ok {
		// expiró entre Add y Get
		if err := s.idem.Add(key, pending, cache.DefaultExpiration); err == nil {
			return nil, false, nil
		}
		return nil, true, apperr.New(apperr.KindConflict, op, "a submission with this idempotency key is in progress")
	}

	orig, _ := v.(*Submission)
	if orig == nil {
		return nil, true, apperr.New(apperr.KindConflict, op, "a submission with this idempotency key is in progress")
	}

	e, err := s.repo.GetByID(ctx, ownerUserID, orig.Entry.ID)
	switch {
	case errors.Is(err, ErrNotFound):
		// La entrada original se borró: la clave vuelve a quedar libre.
		s.idem.Set(key, pending, cache.DefaultExpiration)
		return nil, false, nil
	case err != nil:
		return nil, true, apperr.Wrap(apperr.KindStoreRead, op, err)
	}

	s.metrics.IncReplay()
	s.log.Info("journal submission replayed", map[string]any{"owner_user_id": ownerUserID, "entry_id": e.ID})
	return orig.replayed(e), true, nil
}

func idemKey(ownerUserID, key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	return ownerUserID + "\x00" + key
}

// annotate corre los pasos 2 y 3. Nunca devuelve error: todo queda tipado
// en el Outcome.
func (s *Service) annotate(ctx context.Context, ownerUserID, entryID, text string) Outcome {
	const op = "journal.annotate"

	out := Outcome{
		EntryID: entryID,
		Update:  UpdateResult{Status: StepSkipped},
	}
	log := s.log.With(map[string]any{"owner_user_id": ownerUserID, "entry_id": entryID})

	if s.oracle == nil {
		out.Oracle = OracleResult{
			Status: StepFailed,
			Err:    apperr.New(apperr.KindOracle, op, "annotation service not configured"),
		}
		s.record(log, out)
		return out
	}

	start := s.now()
	generated, err := s.oracle.Annotate(ctx, oracle.Request{EntryID: entryID, Text: text})
	s.metrics.ObserveOracle(s.now().Sub(start).Seconds())
	if err != nil {
		out.Oracle = OracleResult{Status: StepFailed, Err: apperr.Wrap(apperr.KindOracle, op, err)}
		s.record(log, out)
		return out
	}

	generated = strings.TrimSpace(generated)
	if generated == "" {
		out.Oracle = OracleResult{Status: StepFailed, Err: apperr.Wrap(apperr.KindOracle, op, ErrEmptyAnnotation)}
		s.record(log, out)
		return out
	}
	out.Oracle = OracleResult{Status: StepOK, Text: generated}

	updated, err := s.repo.SetAnnotation(ctx, ownerUserID, entryID, generated)
	if err != nil {
		out.Update = UpdateResult{Status: StepFailed, Err: updateErr(op, err)}
		s.record(log, out)
		return out
	}
	out.Update = UpdateResult{Status: StepOK, Entry: updated}

	s.record(log, out)
	return out
}

func updateErr(op string, err error) error {
	switch {
	case errors.Is(err, ErrAlreadyAnnotated):
		return apperr.WrapMsg(apperr.KindConflict, op, "entry already has an annotation", err)
	case errors.Is(err, ErrNotFound):
		return apperr.WrapMsg(apperr.KindNotFound, op, "journal entry not found", err)
	default:
		return apperr.Wrap(apperr.KindStoreWrite, op, err)
	}
}

func (s *Service) record(log logger.Logger, out Outcome) {
	label := out.Label()
	s.metrics.ObserveAnnotation(label)

	switch {
	case out.Annotated():
		log.Info("journal entry annotated", nil)
	case out.Oracle.Status == StepFailed:
		log.Warn("annotation oracle failed", map[string]any{"outcome": label, "error": out.Oracle.Err})
	case out.Update.Status == StepFailed:
		log.Error("annotation update failed", map[string]any{"outcome": label, "error": out.Update.Err})
	}
}

// Settle espera el Outcome y, si la anotación quedó escrita, relee la
// entrada tras ReadAfterWriteDelay para devolver el estado persistido.
// Sin anotación devuelve la entrada tal como se insertó.
func (s *Service) Settle(ctx context.Context, sub *Submission) (Entry, Outcome, error) {
	const op = "journal.Settle"

	out, err := sub.Wait(ctx)
	if err != nil {
		return sub.Entry, Outcome{}, err
	}
	if !out.Annotated() {
		return sub.Entry, out, nil
	}

	if err := s.sleep(ctx, s.settleDelay); err != nil {
		return out.Update.Entry, out, err
	}

	e := sub.Entry
	fresh, err := s.repo.GetByID(ctx, e.OwnerUserID, e.ID)
	if err != nil {
		return out.Update.Entry, out, apperr.Wrap(apperr.KindStoreRead, op, err)
	}
	return fresh, out, nil
}

type annotateInput struct {
	OwnerUserID string `json:"owner_user_id" validate:"notblank"`
	EntryID     string `json:"entry_id" validate:"notblank"`
	Text        string `json:"text" validate:"notblank,max=10000"`
}

// Annotate corre el oráculo sobre una entrada existente y guarda el resultado.
// A diferencia de Submit, las fallas del oráculo o del update se devuelven
// como error.
func (s *Service) Annotate(ctx context.Context, ownerUserID, entryID, text string) (Outcome, error) {
	const op = "journal.Annotate"

	in := annotateInput{
		OwnerUserID: strings.TrimSpace(ownerUserID),
		EntryID:     strings.TrimSpace(entryID),
		Text:        strings.TrimSpace(text),
	}
	if err := validation.Struct(op, in); err != nil {
		return Outcome{}, err
	}

	current, err := s.Get(ctx, in.OwnerUserID, in.EntryID)
	if err != nil {
		return Outcome{}, err
	}
	if current.Annotated() {
		return Outcome{}, apperr.New(apperr.KindConflict, op, "entry already has an annotation")
	}

	out := s.annotate(ctx, in.OwnerUserID, in.EntryID, in.Text)
	if out.Oracle.Status != StepOK {
		return out, out.Oracle.Err
	}
	if out.Update.Status != StepOK {
		return out, out.Update.Err
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, ownerUserID, id string) (Entry, error) {
	const op = "journal.Get"

	ownerUserID = strings.TrimSpace(ownerUserID)
	id = strings.TrimSpace(id)
	if ownerUserID == "" || id == "" {
		return Entry{}, apperr.New(apperr.KindNotFound, op, "journal entry not found")
	}

	e, err := s.repo.GetByID(ctx, ownerUserID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Entry{}, apperr.WrapMsg(apperr.KindNotFound, op, "journal entry not found", err)
		}
		return Entry{}, apperr.Wrap(apperr.KindStoreRead, op, err)
	}
	return e, nil
}

// List devuelve las entradas del dueño, más nuevas primero.
func (s *Service) List(ctx context.Context, ownerUserID string, limit int, before *time.Time) ([]Entry, error) {
	const op = "journal.List"

	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, apperr.Validation(op, "owner_user_id is required")
	}

	items, err := s.repo.ListByOwner(ctx, ownerUserID, ListFilter{
		Limit:  s.clampLimit(limit),
		Before: before,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStoreRead, op, err)
	}
	return items, nil
}

func (s *Service) clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return s.defaultLimit
	case limit > s.maxLimit:
		return s.maxLimit
	default:
		return limit
	}
}

func (s *Service) Delete(ctx context.Context, ownerUserID, id string) error {
	const op = "journal.Delete"

	ownerUserID = strings.TrimSpace(ownerUserID)
	id = strings.TrimSpace(id)
	if ownerUserID == "" || id == "" {
		return apperr.New(apperr.KindNotFound, op, "journal entry not found")
	}

	if err := s.repo.Delete(ctx, ownerUserID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.WrapMsg(apperr.KindNotFound, op, "journal entry not found", err)
		}
		return apperr.Wrap(apperr.KindStoreWrite, op, err)
	}
	return nil
}

// Drain espera a que terminen los workflows en curso (shutdown).
func (s *Service) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
