package store

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"folio/internal/models"
)

// testCompany returns a unique company name so parallel test runs don't
// collide in the shared table.
func testCompany(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

// currentCount counts rows among the given companies that carry the flag.
func currentCount(t *testing.T, s *ExperienceStore, companies map[string]bool) (count int, current string) {
	t.Helper()
	for _, e := range s.List() {
		if companies[e.CompanyName] && e.IsCurrent {
			count++
			current = e.CompanyName
		}
	}
	return count, current
}

func TestExperienceCreateAndList(t *testing.T) {
	db := testDB(t)
	s := NewExperienceStore(db)

	first := testCompany("exp-first")
	second := testCompany("exp-second")
	t.Cleanup(func() { cleanExperience(t, db, first, second) })

	start := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2022, 6, 30, 0, 0, 0, 0, time.UTC)

	if _, err := s.Create(&models.WorkExperience{
		CompanyName: second, CompanyURL: strPtr("https://b.example.com"),
		Position: "Engineer", Location: strPtr("Remote"),
		StartDate: start, EndDate: &end, DisplayOrder: 2,
	}); err != nil {
		t.Fatalf("Create second: %v", err)
	}
	if _, err := s.Create(&models.WorkExperience{
		CompanyName: first, CompanyURL: strPtr("https://a.example.com"),
		Position: "Engineer", Location: strPtr("Berlin"),
		StartDate: start, EndDate: &end, DisplayOrder: 1,
	}); err != nil {
		t.Fatalf("Create first: %v", err)
	}

	// display_order ascending, regardless of insertion order.
	var seen []string
	for _, e := range s.List() {
		if e.CompanyName == first || e.CompanyName == second {
			seen = append(seen, e.CompanyName)
		}
	}
	if len(seen) != 2 || seen[0] != first || seen[1] != second {
		t.Errorf("expected [%s %s] in order, got %v", first, second, seen)
	}
}

func TestExperienceSingleCurrentOnCreate(t *testing.T) {
	db := testDB(t)
	s := NewExperienceStore(db)

	companyA := testCompany("exp-a")
	companyB := testCompany("exp-b")
	t.Cleanup(func() { cleanExperience(t, db, companyA, companyB) })

	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	// Create A current, then B current. Only B must remain current.
	a, err := s.Create(&models.WorkExperience{
		CompanyName: companyA, CompanyURL: strPtr("https://a.example.com"),
		Position: "Engineer", Location: strPtr("Remote"),
		StartDate: start, IsCurrent: true, DisplayOrder: 1,
	})
	if err != nil {
		t.Fatalf("Create A: %v", err)
	}
	b, err := s.Create(&models.WorkExperience{
		CompanyName: companyB, CompanyURL: strPtr("https://b.example.com"),
		Position: "Staff Engineer", Location: strPtr("Remote"),
		StartDate: start, IsCurrent: true, DisplayOrder: 2,
	})
	if err != nil {
		t.Fatalf("Create B: %v", err)
	}

	count, current := currentCount(t, s, map[string]bool{companyA: true, companyB: true})
	if count != 1 {
		t.Fatalf("expected exactly 1 current entry, got %d", count)
	}
	if current != companyB {
		t.Errorf("expected %s current, got %s", companyB, current)
	}

	if got := s.FindByID(a.ID); got == nil || got.IsCurrent {
		t.Error("expected A demoted after B became current")
	}
	if got := s.FindByID(b.ID); got == nil || !got.IsCurrent {
		t.Error("expected B current")
	}
}

func TestExperienceCurrentClearsEndDate(t *testing.T) {
	db := testDB(t)
	s := NewExperienceStore(db)

	company := testCompany("exp-enddate")
	t.Cleanup(func() { cleanExperience(t, db, company) })

	start := time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)

	// A current entry can never carry an end date, even if one is supplied.
	created, err := s.Create(&models.WorkExperience{
		CompanyName: company, CompanyURL: strPtr("https://c.example.com"),
		Position: "Engineer", Location: strPtr("Remote"),
		StartDate: start, EndDate: &end, IsCurrent: true, DisplayOrder: 1,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.EndDate != nil {
		t.Errorf("expected nil end_date on current entry, got %v", created.EndDate)
	}
}

func TestExperienceSetCurrent(t *testing.T) {
	db := testDB(t)
	s := NewExperienceStore(db)

	companyA := testCompany("exp-setcur-a")
	companyB := testCompany("exp-setcur-b")
	t.Cleanup(func() { cleanExperience(t, db, companyA, companyB) })

	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	a, _ := s.Create(&models.WorkExperience{
		CompanyName: companyA, CompanyURL: strPtr("https://a.example.com"),
		Position: "Engineer", Location: strPtr("Remote"),
		StartDate: start, IsCurrent: true, DisplayOrder: 1,
	})
	b, _ := s.Create(&models.WorkExperience{
		CompanyName: companyB, CompanyURL: strPtr("https://b.example.com"),
		Position: "Engineer", Location: strPtr("Remote"),
		StartDate: start, EndDate: &end, DisplayOrder: 2,
	})

	if err := s.SetCurrent(b.ID); err != nil {
		t.Fatalf("SetCurrent: %v", err)
	}

	gotA := s.FindByID(a.ID)
	gotB := s.FindByID(b.ID)
	if gotA == nil || gotB == nil {
		t.Fatal("entries vanished")
	}
	if gotA.IsCurrent {
		t.Error("expected A demoted")
	}
	if !gotB.IsCurrent {
		t.Error("expected B current")
	}
	if gotB.EndDate != nil {
		t.Error("expected B end_date cleared on promotion")
	}
}

func TestExperienceSetCurrentNotFound(t *testing.T) {
	db := testDB(t)
	s := NewExperienceStore(db)

	if err := s.SetCurrent(uuid.New()); err == nil {
		t.Error("expected error promoting nonexistent entry")
	}
}

func TestExperienceUnsetCurrentLeavesNone(t *testing.T) {
	db := testDB(t)
	s := NewExperienceStore(db)

	company := testCompany("exp-unset")
	t.Cleanup(func() { cleanExperience(t, db, company) })

	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	created, err := s.Create(&models.WorkExperience{
		CompanyName: company, CompanyURL: strPtr("https://u.example.com"),
		Position: "Engineer", Location: strPtr("Remote"),
		StartDate: start, IsCurrent: true, DisplayOrder: 1,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Unsetting is allowed to leave zero current entries; the end date
	// becomes whatever the caller supplies.
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	created.IsCurrent = false
	created.EndDate = &end
	updated, err := s.Update(created)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.IsCurrent {
		t.Error("expected entry no longer current")
	}
	if updated.EndDate == nil {
		t.Error("expected caller-supplied end_date kept")
	}

	count, _ := currentCount(t, s, map[string]bool{company: true})
	if count != 0 {
		t.Errorf("expected zero current entries, got %d", count)
	}
}

func TestExperienceUpdatePromotes(t *testing.T) {
	db := testDB(t)
	s := NewExperienceStore(db)

	companyA := testCompany("exp-upd-a")
	companyB := testCompany("exp-upd-b")
	t.Cleanup(func() { cleanExperience(t, db, companyA, companyB) })

	start := time.Date(2020, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2022, 9, 1, 0, 0, 0, 0, time.UTC)

	a, _ := s.Create(&models.WorkExperience{
		CompanyName: companyA, CompanyURL: strPtr("https://a.example.com"),
		Position: "Engineer", Location: strPtr("Remote"),
		StartDate: start, IsCurrent: true, DisplayOrder: 1,
	})
	b, _ := s.Create(&models.WorkExperience{
		CompanyName: companyB, CompanyURL: strPtr("https://b.example.com"),
		Position: "Engineer", Location: strPtr("Remote"),
		StartDate: start, EndDate: &end, DisplayOrder: 2,
	})

	// Promote B through a full edit rather than SetCurrent.
	b.IsCurrent = true
	updated, err := s.Update(b)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.IsCurrent {
		t.Error("expected B current after update")
	}
	if updated.EndDate != nil {
		t.Error("expected end_date cleared when promoted via update")
	}
	if got := s.FindByID(a.ID); got == nil || got.IsCurrent {
		t.Error("expected A demoted after B's update")
	}
}

func TestExperienceReorder(t *testing.T) {
	db := testDB(t)
	s := NewExperienceStore(db)

	companyA := testCompany("exp-ord-a")
	companyB := testCompany("exp-ord-b")
	t.Cleanup(func() { cleanExperience(t, db, companyA, companyB) })

	start := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	a, _ := s.Create(&models.WorkExperience{
		CompanyName: companyA, CompanyURL: strPtr("https://a.example.com"),
		Position: "Engineer", Location: strPtr("Remote"),
		StartDate: start, EndDate: &end, DisplayOrder: 1,
	})
	b, _ := s.Create(&models.WorkExperience{
		CompanyName: companyB, CompanyURL: strPtr("https://b.example.com"),
		Position: "Engineer", Location: strPtr("Remote"),
		StartDate: start, EndDate: &end, DisplayOrder: 2,
	})

	if err := s.Reorder(map[uuid.UUID]int{a.ID: 20, b.ID: 10}); err != nil {
		t.Fatalf("Reorder: %v", err)
	}

	var seen []string
	for _, e := range s.List() {
		if e.CompanyName == companyA || e.CompanyName == companyB {
			seen = append(seen, e.CompanyName)
		}
	}
	if len(seen) != 2 || seen[0] != companyB || seen[1] != companyA {
		t.Errorf("expected [%s %s] after reorder, got %v", companyB, companyA, seen)
	}
}

func TestExperienceDeleteTwice(t *testing.T) {
	db := testDB(t)
	s := NewExperienceStore(db)

	company := testCompany("exp-del")
	t.Cleanup(func() { cleanExperience(t, db, company) })

	start := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)

	created, err := s.Create(&models.WorkExperience{
		CompanyName: company, CompanyURL: strPtr("https://d.example.com"),
		Position: "Engineer", Location: strPtr("Remote"),
		StartDate: start, EndDate: &end, DisplayOrder: 1,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ok, err := s.Delete(created.ID)
	if err != nil || !ok {
		t.Fatalf("first Delete: ok=%v err=%v", ok, err)
	}
	ok, err = s.Delete(created.ID)
	if err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if ok {
		t.Error("second delete should report false")
	}
}

func TestExperiencePreviousExcludesCurrent(t *testing.T) {
	db := testDB(t)
	s := NewExperienceStore(db)

	companyA := testCompany("exp-prev-a")
	companyB := testCompany("exp-prev-b")
	t.Cleanup(func() { cleanExperience(t, db, companyA, companyB) })

	start := time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 4, 30, 0, 0, 0, 0, time.UTC)

	if _, err := s.Create(&models.WorkExperience{
		CompanyName: companyA, CompanyURL: strPtr("https://a.example.com"),
		Position: "Engineer", Location: strPtr("Remote"),
		StartDate: start, EndDate: &end, DisplayOrder: 1,
	}); err != nil {
		t.Fatalf("Create A: %v", err)
	}
	if _, err := s.Create(&models.WorkExperience{
		CompanyName: companyB, CompanyURL: strPtr("https://b.example.com"),
		Position: "Staff Engineer", Location: strPtr("Remote"),
		StartDate: end, IsCurrent: true, DisplayOrder: 2,
	}); err != nil {
		t.Fatalf("Create B: %v", err)
	}

	var sawA, sawB bool
	for _, e := range s.Previous() {
		switch e.CompanyName {
		case companyA:
			sawA = true
		case companyB:
			sawB = true
		}
	}
	if !sawA {
		t.Error("ended entry missing from Previous")
	}
	if sawB {
		t.Error("current entry listed in Previous")
	}
}

func TestExperienceCurrentUniqueIndex(t *testing.T) {
	db := testDB(t)
	s := NewExperienceStore(db)

	companyA := testCompany("exp-idx-a")
	companyB := testCompany("exp-idx-b")
	t.Cleanup(func() { cleanExperience(t, db, companyA, companyB) })

	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	if _, err := s.Create(&models.WorkExperience{
		CompanyName: companyA, Position: "Engineer",
		StartDate: start, IsCurrent: true, DisplayOrder: 1,
	}); err != nil {
		t.Fatalf("Create A: %v", err)
	}

	// A second current row must be rejected at the table level, so the
	// invariant survives writers that bypass the store's clear-then-set
	// transaction.
	_, err := db.Exec(`
		INSERT INTO work_experience (company_name, position, start_date, is_current, display_order)
		VALUES ($1, 'Engineer', $2, TRUE, 2)
	`, companyB, start)
	if err == nil {
		t.Fatal("expected unique violation inserting a second current row")
	}
}
