package form

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/c-w-schwind/Aufgabe-Christian/pkg/model"
	"github.com/c-w-schwind/Aufgabe-Christian/pkg/render"
	"github.com/c-w-schwind/Aufgabe-Christian/pkg/render/template"
	"github.com/c-w-schwind/Aufgabe-Christian/pkg/submission"
	"github.com/c-w-schwind/Aufgabe-Christian/pkg/validation"
)

// Dialog texts shown by the session.
const (
	ConfirmMessage    = "Are you sure you want to submit the form?"
	SuccessMessage    = "Form submitted successfully!"
	SubmittingMessage = "Submitting..."
)

// Submitter transmits a record and reports the decoded response.
// *submission.Client satisfies it.
type Submitter interface {
	Send(ctx context.Context, record model.FormRecord) (submission.Response, error)
}

// Outcome summarises how a Submit call ended.
type Outcome int

const (
	// OutcomeInvalid means validation failed and nothing was sent.
	OutcomeInvalid Outcome = iota
	// OutcomeCancelled means the user declined the confirmation.
	OutcomeCancelled
	// OutcomeSubmitted means the server accepted the record and the form
	// was reset.
	OutcomeSubmitted
	// OutcomeFailed means transmission failed; the record is unchanged.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeSubmitted:
		return "submitted"
	case OutcomeFailed:
		return "failed"
	default:
		return "invalid"
	}
}

// Result describes a finished Submit call. Failure holds the submission
// error for OutcomeFailed; Response is set for OutcomeSubmitted.
type Result struct {
	Outcome  Outcome
	Errors   model.ErrorMap
	Response submission.Response
	Failure  error
}

// Session owns the record being edited together with its derived error map
// and submission state. Edits may arrive while a submission is in flight;
// the transmitted payload is the record captured when the user confirmed.
type Session struct {
	mu sync.Mutex

	catalog []model.CheckboxOption
	record  model.FormRecord
	errors  model.ErrorMap
	state   model.SubmissionState
	version uint64

	// pending covers the whole validate/confirm/transmit attempt so a second
	// Submit cannot start while the first waits on the user or the network.
	pending bool

	submitter Submitter
	prompter  render.Prompter
	overlay   render.Overlay
	renderers []render.Renderer
	summary   template.TemplateRenderer
	logger    *slog.Logger
}

// New constructs a Session. WithSubmitter and WithPrompter are required.
func New(options ...Option) (*Session, error) {
	s := &Session{
		catalog: model.DefaultCatalog(),
		overlay: render.NopOverlay{},
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.submitter == nil {
		return nil, ErrSubmitterRequired
	}
	if s.prompter == nil {
		return nil, ErrPrompterRequired
	}
	if err := checkCatalog(s.catalog); err != nil {
		return nil, err
	}
	s.record = model.NewRecord(s.catalog)
	return s, nil
}

func checkCatalog(catalog []model.CheckboxOption) error {
	seen := make(map[string]struct{}, len(catalog))
	for i, option := range catalog {
		id := strings.TrimSpace(option.ID)
		if id == "" {
			return fmt.Errorf("%w: option %d has an empty id", ErrInvalidCatalog, i)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidCatalog, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Snapshot returns the current (record, errors, state) tuple.
func (s *Session) Snapshot() render.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Record returns a copy of the record being edited.
func (s *Session) Record() model.FormRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record.Clone()
}

// SetNumber stores the parsed raw text and clears the number error.
func (s *Session) SetNumber(raw string) model.FormRecord {
	return s.edit(model.FieldNumber, func(r model.FormRecord) model.FormRecord {
		return r.WithNumber(raw)
	})
}

// SetText stores value and clears the text error.
func (s *Session) SetText(value string) model.FormRecord {
	return s.edit(model.FieldText, func(r model.FormRecord) model.FormRecord {
		return r.WithText(value)
	})
}

// ApplyCheckboxOp applies op to the checkbox set and clears the checkbox
// error.
func (s *Session) ApplyCheckboxOp(op model.CheckboxOp) model.FormRecord {
	return s.edit(model.FieldCheckboxes, func(r model.FormRecord) model.FormRecord {
		return r.WithCheckboxes(op)
	})
}

// ToggleOption flips a single option.
func (s *Session) ToggleOption(id string) model.FormRecord {
	return s.ApplyCheckboxOp(model.ToggleOption(id))
}

// ToggleAll sets every option to value.
func (s *Session) ToggleAll(value bool) model.FormRecord {
	return s.ApplyCheckboxOp(model.SetAll(value))
}

// Reset restores the initial record and drops every field error. The
// submission state is left alone.
func (s *Session) Reset() model.FormRecord {
	s.mu.Lock()
	s.record = model.NewRecord(s.catalog)
	s.errors = nil
	snap := s.bumpLocked()
	s.mu.Unlock()

	s.publish(context.Background(), snap)
	return snap.Record
}

func (s *Session) edit(field model.Field, apply func(model.FormRecord) model.FormRecord) model.FormRecord {
	s.mu.Lock()
	s.record = apply(s.record)
	s.errors = s.errors.Without(field)
	snap := s.bumpLocked()
	s.mu.Unlock()

	s.publish(context.Background(), snap)
	return snap.Record
}

// ShowCurrentData presents a summary of the live record through the
// prompter. It touches neither the error map nor the submission state.
func (s *Session) ShowCurrentData(ctx context.Context) error {
	var (
		summary string
		err     error
	)
	if s.summary != nil {
		summary, err = render.SummaryWith(s.summary, s.Record())
	} else {
		summary, err = render.Summary(s.Record())
	}
	if err != nil {
		return err
	}
	return s.prompter.Inform(ctx, summary)
}

// Submit validates the record, asks for confirmation and transmits the
// confirmed snapshot. Validation and transmission failures are reported in
// the Result; the returned error is reserved for re-entrant calls and
// prompter failures.
func (s *Session) Submit(ctx context.Context) (Result, error) {
	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return Result{}, ErrSubmissionInFlight
	}
	errs := validation.Validate(s.record)
	s.errors = errs
	s.state = model.Idle()
	snap := s.bumpLocked()
	if !errs.Empty() {
		s.mu.Unlock()
		s.logger.Debug("submission blocked by validation", "fields", len(errs))
		s.publish(ctx, snap)
		return Result{Outcome: OutcomeInvalid, Errors: errs.Clone()}, nil
	}
	s.pending = true
	s.mu.Unlock()
	s.publish(ctx, snap)

	ok, err := s.prompter.Confirm(ctx, ConfirmMessage)
	if err != nil || !ok {
		s.finish()
		if err != nil {
			return Result{Outcome: OutcomeCancelled}, fmt.Errorf("form: confirm: %w", err)
		}
		return Result{Outcome: OutcomeCancelled}, nil
	}

	s.mu.Lock()
	payload := s.record.Clone()
	s.state = model.Submitting()
	snap = s.bumpLocked()
	s.mu.Unlock()

	s.overlay.SetLoading(true, SubmittingMessage)
	s.publish(ctx, snap)

	resp, sendErr := s.submitter.Send(ctx, payload)

	s.overlay.SetLoading(false, "")

	s.mu.Lock()
	s.pending = false
	if sendErr != nil {
		s.state = model.Failed(submission.MessageOf(sendErr))
	} else {
		s.record = model.NewRecord(s.catalog)
		s.errors = nil
		s.state = model.Idle()
	}
	snap = s.bumpLocked()
	s.mu.Unlock()
	s.publish(ctx, snap)

	if sendErr != nil {
		s.logger.Warn("submission failed", "kind", submission.KindOf(sendErr), "error", sendErr)
		return Result{Outcome: OutcomeFailed, Failure: sendErr}, nil
	}

	s.logger.Info("submission succeeded", "status", resp.Status)
	result := Result{Outcome: OutcomeSubmitted, Response: resp}
	if err := s.prompter.Inform(ctx, SuccessMessage); err != nil {
		return result, fmt.Errorf("form: inform: %w", err)
	}
	return result, nil
}

func (s *Session) finish() {
	s.mu.Lock()
	s.pending = false
	s.mu.Unlock()
}

func (s *Session) bumpLocked() render.Snapshot {
	s.version++
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() render.Snapshot {
	return render.Snapshot{
		Version: s.version,
		Record:  s.record.Clone(),
		Errors:  s.errors.Clone(),
		State:   s.state,
	}
}

func (s *Session) publish(ctx context.Context, snap render.Snapshot) {
	for _, r := range s.renderers {
		if err := r.Render(ctx, snap); err != nil {
			s.logger.Warn("renderer failed", "renderer", r.Name(), "error", err)
		}
	}
}
