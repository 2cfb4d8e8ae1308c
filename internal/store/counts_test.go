package store

import (
	"errors"
	"strings"
	"testing"
)

func TestSetCount(t *testing.T) {
	s := newSeededStore(t)

	if err := s.SetCount(1, 42); err != nil {
		t.Fatalf("SetCount failed: %v", err)
	}
	it, err := s.Item(1)
	if err != nil {
		t.Fatalf("Item failed: %v", err)
	}
	if it.Count != 42 {
		t.Errorf("Count = %d, want 42", it.Count)
	}
}

func TestSetCountRejectsNegative(t *testing.T) {
	s := newSeededStore(t)

	before, err := s.Item(1)
	if err != nil {
		t.Fatalf("Item failed: %v", err)
	}

	err = s.SetCount(1, -1)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("SetCount(-1) = %v, want ValidationError", err)
	}

	after, err := s.Item(1)
	if err != nil {
		t.Fatalf("Item failed: %v", err)
	}
	if after.Count != before.Count {
		t.Errorf("Count changed from %d to %d on rejected SetCount", before.Count, after.Count)
	}
}

func TestSetCountMissing(t *testing.T) {
	s := newSeededStore(t)

	err := s.SetCount(99999, 5)
	var nfe *NotFoundError
	if !errors.As(err, &nfe) {
		t.Errorf("SetCount on missing item = %v, want NotFoundError", err)
	}
}

func TestAdjustCount(t *testing.T) {
	s := newSeededStore(t)

	it, err := s.Item(1)
	if err != nil {
		t.Fatalf("Item failed: %v", err)
	}

	if err := s.AdjustCount(it.ID, +3); err != nil {
		t.Fatalf("AdjustCount(+3) failed: %v", err)
	}
	if err := s.AdjustCount(it.ID, -2); err != nil {
		t.Fatalf("AdjustCount(-2) failed: %v", err)
	}

	got, err := s.Item(it.ID)
	if err != nil {
		t.Fatalf("Item failed: %v", err)
	}
	if got.Count != it.Count+1 {
		t.Errorf("Count = %d, want %d", got.Count, it.Count+1)
	}
}

func TestAdjustCountRejectsUnderflow(t *testing.T) {
	s := newTestStore(t)

	loc, err := s.AddLocation("Closet")
	if err != nil {
		t.Fatalf("AddLocation failed: %v", err)
	}
	it, err := s.AddItem(ItemDraft{Name: "Adapter", Count: 2, LocationID: loc.ID})
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	err = s.AdjustCount(it.ID, -3)
	var ioe *InvalidOperationError
	if !errors.As(err, &ioe) {
		t.Fatalf("AdjustCount(-3) = %v, want InvalidOperationError", err)
	}
	if ioe.ItemID != it.ID {
		t.Errorf("Error names item %d, want %d", ioe.ItemID, it.ID)
	}

	got, err := s.Item(it.ID)
	if err != nil {
		t.Fatalf("Item failed: %v", err)
	}
	if got.Count != 2 {
		t.Errorf("Count = %d after rejected adjust, want 2", got.Count)
	}
}

func TestDeploy(t *testing.T) {
	s := newTestStore(t)

	loc, err := s.AddLocation("Build Bench")
	if err != nil {
		t.Fatalf("AddLocation failed: %v", err)
	}
	mouse, err := s.AddItem(ItemDraft{Name: "Mouse", Count: 10, Deployable: true, LocationID: loc.ID})
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	keyboard, err := s.AddItem(ItemDraft{Name: "Keyboard", Count: 4, Deployable: true, LocationID: loc.ID})
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	err = s.Deploy([]Deployment{
		{ItemID: mouse.ID, Quantity: 2},
		{ItemID: keyboard.ID, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("Deploy failed: %v", err)
	}

	for _, want := range []struct {
		id    int64
		count int
	}{{mouse.ID, 8}, {keyboard.ID, 3}} {
		it, err := s.Item(want.id)
		if err != nil {
			t.Fatalf("Item failed: %v", err)
		}
		if it.Count != want.count {
			t.Errorf("Item %d count = %d, want %d", want.id, it.Count, want.count)
		}
	}
}

func TestDeployIsAllOrNothing(t *testing.T) {
	s := newTestStore(t)

	loc, err := s.AddLocation("Build Bench")
	if err != nil {
		t.Fatalf("AddLocation failed: %v", err)
	}
	itemA, err := s.AddItem(ItemDraft{Name: "Dock", Count: 5, Deployable: true, LocationID: loc.ID})
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	itemB, err := s.AddItem(ItemDraft{Name: "Webcam", Count: 0, Deployable: true, LocationID: loc.ID})
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	// itemB cannot absorb 1, so the whole batch must be rejected.
	err = s.Deploy([]Deployment{
		{ItemID: itemA.ID, Quantity: 2},
		{ItemID: itemB.ID, Quantity: 1},
	})

	var ioe *InvalidOperationError
	if !errors.As(err, &ioe) {
		t.Fatalf("Deploy = %v, want InvalidOperationError", err)
	}
	if ioe.ItemID != itemB.ID {
		t.Errorf("Error names item %d, want offending item %d", ioe.ItemID, itemB.ID)
	}
	if !strings.Contains(err.Error(), "Webcam") {
		t.Errorf("Error %q should name the offending item", err)
	}

	a, err := s.Item(itemA.ID)
	if err != nil {
		t.Fatalf("Item failed: %v", err)
	}
	if a.Count != 5 {
		t.Errorf("Item A count = %d after failed batch, want 5 (no partial application)", a.Count)
	}
	b, err := s.Item(itemB.ID)
	if err != nil {
		t.Fatalf("Item failed: %v", err)
	}
	if b.Count != 0 {
		t.Errorf("Item B count = %d after failed batch, want 0", b.Count)
	}
}

func TestDeployValidation(t *testing.T) {
	s := newSeededStore(t)

	var verr *ValidationError
	if err := s.Deploy(nil); !errors.As(err, &verr) {
		t.Errorf("Deploy(nil) = %v, want ValidationError", err)
	}
	if err := s.Deploy([]Deployment{{ItemID: 1, Quantity: 0}}); !errors.As(err, &verr) {
		t.Errorf("Deploy(qty 0) = %v, want ValidationError", err)
	}
	if err := s.Deploy([]Deployment{{ItemID: 1, Quantity: -2}}); !errors.As(err, &verr) {
		t.Errorf("Deploy(qty -2) = %v, want ValidationError", err)
	}
}

func TestDeployMissingItem(t *testing.T) {
	s := newSeededStore(t)

	err := s.Deploy([]Deployment{{ItemID: 99999, Quantity: 1}})
	var nfe *NotFoundError
	if !errors.As(err, &nfe) {
		t.Errorf("Deploy of missing item = %v, want NotFoundError", err)
	}
}

func TestDeployNonDeployableItem(t *testing.T) {
	s := newTestStore(t)

	loc, err := s.AddLocation("Vault")
	if err != nil {
		t.Fatalf("AddLocation failed: %v", err)
	}
	it, err := s.AddItem(ItemDraft{Name: "Server Chassis", Count: 3, Deployable: false, LocationID: loc.ID})
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	err = s.Deploy([]Deployment{{ItemID: it.ID, Quantity: 1}})
	var ioe *InvalidOperationError
	if !errors.As(err, &ioe) {
		t.Fatalf("Deploy of non-deployable item = %v, want InvalidOperationError", err)
	}

	got, err := s.Item(it.ID)
	if err != nil {
		t.Fatalf("Item failed: %v", err)
	}
	if got.Count != 3 {
		t.Errorf("Count = %d, want 3", got.Count)
	}
}

// Counts stay non-negative across any mix of mutation calls.
func TestCountsNeverNegative(t *testing.T) {
	s := newTestStore(t)

	loc, err := s.AddLocation("Bench")
	if err != nil {
		t.Fatalf("AddLocation failed: %v", err)
	}
	it, err := s.AddItem(ItemDraft{Name: "Cable", Count: 3, Deployable: true, LocationID: loc.ID})
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	calls := []func() error{
		func() error { return s.AdjustCount(it.ID, -2) },
		func() error { return s.AdjustCount(it.ID, -5) },
		func() error { return s.SetCount(it.ID, -1) },
		func() error { return s.Deploy([]Deployment{{ItemID: it.ID, Quantity: 4}}) },
		func() error { return s.Deploy([]Deployment{{ItemID: it.ID, Quantity: 1}}) },
		func() error { return s.AdjustCount(it.ID, -1) },
	}

	for i, call := range calls {
		_ = call() // some succeed, some are rejected

		got, err := s.Item(it.ID)
		if err != nil {
			t.Fatalf("Item failed after call %d: %v", i, err)
		}
		if got.Count < 0 {
			t.Fatalf("Count went negative (%d) after call %d", got.Count, i)
		}
	}
}
