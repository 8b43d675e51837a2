package validate_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formvalid/pkg/testsupport"
	"github.com/goliatone/go-formvalid/pkg/validate"
)

func TestStrategyRegistry_RegisterAndGet(t *testing.T) {
	registry := validate.NewStrategyRegistry()

	if err := registry.Register(testsupport.CleanStrategy("Rules")); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Lookup is case-insensitive on the normalised name.
	strategy, err := registry.Get("rules")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if strategy == nil {
		t.Fatalf("expected a strategy")
	}
	if !registry.Has(" RULES ") {
		t.Fatalf("expected Has to normalise names")
	}
}

func TestStrategyRegistry_DuplicateNames(t *testing.T) {
	registry := validate.NewStrategyRegistry()
	registry.MustRegister(testsupport.CleanStrategy("rules"))

	err := registry.Register(testsupport.CleanStrategy("rules"))
	if err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestStrategyRegistry_MissingAndBlankNames(t *testing.T) {
	registry := validate.NewStrategyRegistry()

	if _, err := registry.Get("ghost"); err == nil {
		t.Fatalf("expected missing strategy error")
	}
	if _, err := registry.Get("  "); err == nil {
		t.Fatalf("expected blank name error")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil strategy error")
	}
	if err := registry.Register(testsupport.CleanStrategy("  ")); err == nil {
		t.Fatalf("expected blank name registration error")
	}
}

func TestStrategyRegistry_ListIsSorted(t *testing.T) {
	registry := validate.NewStrategyRegistry()
	registry.MustRegister(testsupport.CleanStrategy("zeta"))
	registry.MustRegister(testsupport.CleanStrategy("alpha"))
	registry.MustRegister(testsupport.CleanStrategy("mid"))

	want := []string{"alpha", "mid", "zeta"}
	if diff := cmp.Diff(want, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}
