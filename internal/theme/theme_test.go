package theme

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
}

type memStore struct {
	mode    Mode
	loadErr error
	saveErr error
	saves   int
}

func (m *memStore) Load() (Mode, error) {
	return m.mode, m.loadErr
}

func (m *memStore) Save(mode Mode) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mode = mode
	m.saves++
	return nil
}

func TestNewManager_Defaults(t *testing.T) {
	tests := []struct {
		name  string
		store Store
		want  Mode
	}{
		{"saved preference", &memStore{mode: ModeLight}, ModeLight},
		{"nothing saved", &memStore{mode: ""}, ModeDark},
		{"garbage saved", &memStore{mode: "sepia"}, ModeDark},
		{"store failure", &memStore{loadErr: errors.New("boom")}, ModeDark},
		{"no store", nil, ModeDark},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			mgr := NewManager(test.store, nil, discardLogger())
			if mgr.Mode() != test.want {
				t.Errorf("Mode() = %s, expected %s", mgr.Mode(), test.want)
			}
		})
	}
}

func TestResolved(t *testing.T) {
	tests := []struct {
		mode       Mode
		systemDark bool
		want       Resolved
	}{
		{ModeLight, true, Light},
		{ModeDark, false, Dark},
		{ModeSystem, true, Dark},
		{ModeSystem, false, Light},
	}

	for _, test := range tests {
		store := &memStore{mode: test.mode}
		mgr := NewManager(store, func() bool { return test.systemDark }, discardLogger())
		if got := mgr.Resolved(); got != test.want {
			t.Errorf("Resolved() with mode=%s systemDark=%v = %s, expected %s", test.mode, test.systemDark, got, test.want)
		}
	}
}

func TestSetModePersistsAndNotifies(t *testing.T) {
	store := &memStore{mode: ModeDark}
	mgr := NewManager(store, nil, discardLogger())

	var notified []Resolved
	mgr.Subscribe(func(r Resolved) { notified = append(notified, r) })

	mgr.SetMode(ModeLight)

	if store.mode != ModeLight || store.saves != 1 {
		t.Errorf("store mode = %s (saves %d), expected light persisted once", store.mode, store.saves)
	}
	if len(notified) != 1 || notified[0] != Light {
		t.Errorf("subscribers got %v, expected one light notification", notified)
	}

	mgr.SetMode("sepia")
	if store.saves != 1 {
		t.Error("an invalid mode must not be persisted")
	}
}

func TestCycleOrder(t *testing.T) {
	store := &memStore{mode: ModeSystem}
	mgr := NewManager(store, nil, discardLogger())

	want := []Mode{ModeLight, ModeDark, ModeSystem, ModeLight}
	for _, expected := range want {
		if got := mgr.Cycle(); got != expected {
			t.Fatalf("Cycle() = %s, expected %s", got, expected)
		}
	}
}

func TestSystemChanged(t *testing.T) {
	systemDark := false
	store := &memStore{mode: ModeSystem}
	mgr := NewManager(store, func() bool { return systemDark }, discardLogger())

	var notified []Resolved
	mgr.Subscribe(func(r Resolved) { notified = append(notified, r) })

	systemDark = true
	mgr.SystemChanged()
	if len(notified) != 1 || notified[0] != Dark {
		t.Fatalf("subscribers got %v, expected one dark notification", notified)
	}

	// Outside system mode the host hint is irrelevant.
	mgr.SetMode(ModeLight)
	before := len(notified)
	mgr.SystemChanged()
	if len(notified) != before {
		t.Error("SystemChanged must be a no-op outside system mode")
	}
}
