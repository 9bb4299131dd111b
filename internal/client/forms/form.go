// Package forms holds the editing state for a price list form: field values,
// dirty tracking, validation errors, and the debounced auto-save that runs
// while an existing record is being edited.
package forms

import (
	"context"
	"sync"
	"time"

	"github.com/dverenev/priceadmin/internal/logging"
	"github.com/dverenev/priceadmin/internal/validation"
)

// Data is the editable field set of a price list.
type Data struct {
	Name string
}

// SaveFunc persists the current form data.
type SaveFunc func(ctx context.Context, data Data) error

// PriceListForm tracks one record being created or edited. Edit forms
// auto-save after the user stops typing; create forms persist only on an
// explicit Submit.
type PriceListForm struct {
	save SaveFunc
	deb  *Debouncer
	log  logging.Logger

	mu        sync.Mutex
	initial   Data
	data      Data
	v         validation.Validator
	autoSave  bool
	saving    bool
	lastSaved time.Time

	ctx context.Context

	now func() time.Time
}

// NewCreateForm returns a form for a new record. Nothing is persisted until
// Submit.
func NewCreateForm(save SaveFunc, log logging.Logger) *PriceListForm {
	if log == nil {
		log = logging.Discard()
	}
	return &PriceListForm{
		save: save,
		deb:  NewDebouncer(DefaultSaveDelay),
		log:  log,
		now:  time.Now,
	}
}

// NewEditForm returns a form pre-filled with an existing record. Edits are
// persisted automatically delay after the last change; ctx bounds those
// background saves.
func NewEditForm(ctx context.Context, initial Data, save SaveFunc, delay time.Duration, log logging.Logger) *PriceListForm {
	if log == nil {
		log = logging.Discard()
	}
	return &PriceListForm{
		save:     save,
		deb:      NewDebouncer(delay),
		log:      log,
		initial:  initial,
		data:     initial,
		autoSave: true,
		ctx:      ctx,
		now:      time.Now,
	}
}

// SetName records a new name value, clears any stale error for the field, and
// reschedules the pending auto-save.
func (f *PriceListForm) SetName(value string) {
	f.mu.Lock()
	f.data.Name = value
	f.v.ClearField("name")
	schedule := f.autoSave && f.data != f.initial
	f.mu.Unlock()

	if schedule {
		f.deb.Schedule(f.autoSaveNow)
	}
}

func (f *PriceListForm) Name() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data.Name
}

// Dirty reports whether the form differs from its last persisted state.
func (f *PriceListForm) Dirty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data != f.initial
}

// FieldError returns the recorded validation message for field, or "".
func (f *PriceListForm) FieldError(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.v.Error(field)
}

// Valid validates the current values, records any field errors, and reports
// whether the form can be persisted.
func (f *PriceListForm) Valid() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked()
}

func (f *PriceListForm) validateLocked() bool {
	f.v.Clear()
	f.v.Validate(f.data.Name, "name", validation.NameRule())
	return !f.v.HasErrors()
}

// LastSaved returns when the form last persisted successfully.
func (f *PriceListForm) LastSaved() (time.Time, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastSaved, !f.lastSaved.IsZero()
}

// autoSaveNow runs on the debounce timer goroutine. Invalid or unchanged data
// is skipped silently; a failed save keeps the form dirty so the next edit or
// Submit retries it.
func (f *PriceListForm) autoSaveNow() {
	f.mu.Lock()
	if f.saving || f.data == f.initial || !f.validateLocked() {
		f.mu.Unlock()
		return
	}
	f.saving = true
	data := f.data
	ctx := f.ctx
	f.mu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}
	err := f.save(ctx, data)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.saving = false
	if err != nil {
		f.log.Warn(ctx, "auto-save failed", "error", err)
		return
	}
	f.initial = data
	f.lastSaved = f.now()
}

// Submit cancels any pending auto-save, validates, and persists immediately.
// On success the form is clean again.
func (f *PriceListForm) Submit(ctx context.Context) error {
	f.deb.Cancel()

	f.mu.Lock()
	if !f.validateLocked() {
		errs := f.v.Errors()
		f.mu.Unlock()
		return errs[0]
	}
	data := f.data
	f.mu.Unlock()

	if err := f.save(ctx, data); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.initial = data
	f.lastSaved = f.now()
	return nil
}

// Reset replaces the form contents, dropping pending edits and errors.
func (f *PriceListForm) Reset(data Data) {
	f.deb.Cancel()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initial = data
	f.data = data
	f.v.Clear()
}

// Close drops any pending auto-save. Call it when the form goes away.
func (f *PriceListForm) Close() {
	f.deb.Cancel()
}
