package question

import (
	"path/filepath"
	"testing"
)

func testQuestion(id int, theme string) Question {
	return Question{
		ID:       id,
		Category: CategoryTF,
		Thematic: theme,
		Prompt:   "prompt",
		Answer:   BoolAnswer(true),
	}
}

// TestStoreInsertRejectsDuplicateID verifies inserts fail on existing ids.
func TestStoreInsertRejectsDuplicateID(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "bank.json"), Bank{})
	if err := store.Insert(testQuestion(1, "A")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := store.Insert(testQuestion(1, "B")); err == nil {
		t.Fatal("expected duplicate id rejection")
	}
}

// TestStoreUpsertAndThemes verifies theme listing stays sorted and stable.
func TestStoreUpsertAndThemes(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "bank.json"), Bank{})
	for i, theme := range []string{"Plasticity", "Buckling", "Plasticity"} {
		if err := store.Upsert(testQuestion(i+1, theme)); err != nil {
			t.Fatalf("upsert %d: %v", i+1, err)
		}
	}
	themes := store.Themes()
	if len(themes) != 2 || themes[0] != "Buckling" || themes[1] != "Plasticity" {
		t.Fatalf("unexpected themes: %v", themes)
	}
	byTheme := store.ByTheme("Plasticity")
	if len(byTheme) != 2 || byTheme[0].ID != 1 || byTheme[1].ID != 3 {
		t.Fatalf("expected stable bank order, got %+v", byTheme)
	}

	updated := testQuestion(2, "Buckling")
	updated.Prompt = "updated"
	if err := store.Upsert(updated); err != nil {
		t.Fatalf("upsert update: %v", err)
	}
	q, ok := store.Get(2)
	if !ok || q.Prompt != "updated" {
		t.Fatalf("expected updated prompt, got %+v", q)
	}
}

// TestStoreDeleteReindexes verifies lookups survive a delete.
func TestStoreDeleteReindexes(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "bank.json"), Bank{})
	for id := 1; id <= 3; id++ {
		if err := store.Insert(testQuestion(id, "A")); err != nil {
			t.Fatalf("insert %d: %v", id, err)
		}
	}
	if err := store.Delete(2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := store.Get(2); ok {
		t.Fatal("expected id 2 to be gone")
	}
	q, ok := store.Get(3)
	if !ok || q.ID != 3 {
		t.Fatalf("expected id 3 to survive, got %+v ok=%v", q, ok)
	}
	if store.NextID() != 4 {
		t.Fatalf("expected next id 4, got %d", store.NextID())
	}
}

// TestStoreSaveRoundTrip verifies a saved bank reloads identically.
func TestStoreSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	store := NewStore(path, Bank{})
	qcm := Question{
		ID:          1,
		Category:    CategoryQCM,
		Thematic:    "Buckling",
		Prompt:      "Pick one",
		Choices:     []string{"a", "b"},
		Answer:      ChoiceAnswer("b"),
		Explication: "because",
	}
	if err := store.Insert(qcm); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := store.Insert(testQuestion(2, "Buckling")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := store.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	reloaded, err := OpenStore(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Len() != 2 {
		t.Fatalf("expected 2 questions, got %d", reloaded.Len())
	}
	got, ok := reloaded.Get(1)
	if !ok {
		t.Fatal("expected question 1")
	}
	if got.Answer.Choice != "b" || got.Explication != "because" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

// TestOpenStoreMissingFile verifies a missing bank starts empty.
func TestOpenStoreMissingFile(t *testing.T) {
	store, err := OpenStore(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d", store.Len())
	}
	if store.NextID() != 1 {
		t.Fatalf("expected first id 1, got %d", store.NextID())
	}
}
